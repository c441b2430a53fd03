package middleware

import (
	"context"
	"time"

	"github.com/felixgeelhaar/fortify/ratelimit"

	"github.com/keyrates/toolschema/protocol"
)

// RateLimitOption configures the rate limiter.
type RateLimitOption func(*rateLimitConfig)

type rateLimitConfig struct {
	keyFunc func(*protocol.Call) string
	logger  Logger
}

// WithRateLimitKeyFunc sets a function to extract a rate limit key from calls.
func WithRateLimitKeyFunc(fn func(*protocol.Call) string) RateLimitOption {
	return func(o *rateLimitConfig) {
		o.keyFunc = fn
	}
}

// WithRateLimitLogger sets the logger for rate limit events.
func WithRateLimitLogger(l Logger) RateLimitOption {
	return func(o *rateLimitConfig) {
		o.logger = l
	}
}

// RateLimit returns middleware that limits the call rate with a token bucket.
// rate is in calls per second; burst allows short bursts above it.
func RateLimit(rate int, burst int, opts ...RateLimitOption) Middleware {
	cfg := &rateLimitConfig{
		keyFunc: func(_ *protocol.Call) string { return "global" },
	}
	for _, opt := range opts {
		opt(cfg)
	}

	limiter := ratelimit.New(&ratelimit.Config{
		Rate:     rate,
		Burst:    burst,
		Interval: time.Second,
	})

	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, call *protocol.Call) (*protocol.Result, error) {
			key := cfg.keyFunc(call)

			if !limiter.Allow(ctx, key) {
				if cfg.logger != nil {
					cfg.logger.Warn("rate limit exceeded",
						F("tool", call.Name),
						F("key", key),
					)
				}
				return nil, protocol.NewRateLimited("rate limit exceeded")
			}

			return next(ctx, call)
		}
	}
}

// RateLimitByTool returns rate limiting middleware with a bucket per tool name.
func RateLimitByTool(rate int, burst int, opts ...RateLimitOption) Middleware {
	allOpts := append([]RateLimitOption{
		WithRateLimitKeyFunc(func(call *protocol.Call) string {
			return call.Name
		}),
	}, opts...)
	return RateLimit(rate, burst, allOpts...)
}

// RateLimitByVendor returns rate limiting middleware with a bucket per vendor.
func RateLimitByVendor(rate int, burst int, opts ...RateLimitOption) Middleware {
	allOpts := append([]RateLimitOption{
		WithRateLimitKeyFunc(func(call *protocol.Call) string {
			if call.Vendor == "" {
				return "local"
			}
			return string(call.Vendor)
		}),
	}, opts...)
	return RateLimit(rate, burst, allOpts...)
}
