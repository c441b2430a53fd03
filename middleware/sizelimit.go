package middleware

import (
	"context"
	"fmt"

	"github.com/keyrates/toolschema/protocol"
)

// SizeLimitOption configures the size limit middleware.
type SizeLimitOption func(*sizeLimitConfig)

type sizeLimitConfig struct {
	logger Logger
}

// WithSizeLimitLogger sets the logger for size limit events.
func WithSizeLimitLogger(l Logger) SizeLimitOption {
	return func(o *sizeLimitConfig) {
		o.logger = l
	}
}

// SizeLimit returns middleware that rejects calls whose encoded arguments
// exceed maxBytes.
func SizeLimit(maxBytes int64, opts ...SizeLimitOption) Middleware {
	cfg := &sizeLimitConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, call *protocol.Call) (*protocol.Result, error) {
			size := int64(len(call.Arguments))
			if size > maxBytes {
				if cfg.logger != nil {
					cfg.logger.Warn("call size limit exceeded",
						F("tool", call.Name),
						F("size", size),
						F("max", maxBytes),
					)
				}
				return nil, protocol.NewInvalidRequest(
					fmt.Sprintf("arguments size %d exceeds limit of %d bytes", size, maxBytes))
			}

			return next(ctx, call)
		}
	}
}

// Common size limit presets.
const (
	KB = 1024
	MB = 1024 * 1024
)
