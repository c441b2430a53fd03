package middleware

import (
	"context"
	"fmt"

	"github.com/keyrates/toolschema/protocol"
)

// Policy decides whether a call may reach its tool. A nil error permits the call.
type Policy func(ctx context.Context, call *protocol.Call) error

// PolicyOption configures the policy middleware.
type PolicyOption func(*policyConfig)

type policyConfig struct {
	logger Logger
}

// WithPolicyLogger sets the logger for rejected calls.
func WithPolicyLogger(l Logger) PolicyOption {
	return func(c *policyConfig) {
		c.logger = l
	}
}

// Authorize returns middleware that rejects calls refused by policy with a
// forbidden error.
func Authorize(policy Policy, opts ...PolicyOption) Middleware {
	cfg := &policyConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, call *protocol.Call) (*protocol.Result, error) {
			if err := policy(ctx, call); err != nil {
				if cfg.logger != nil {
					cfg.logger.Warn("tool call refused",
						F("tool", call.Name),
						F("reason", err.Error()),
					)
				}
				return nil, protocol.NewForbidden(err.Error())
			}
			return next(ctx, call)
		}
	}
}

// AllowTools returns middleware that only lets calls to the named tools through.
//
// A model may answer with a function name it was never offered; such calls
// are refused before any registry lookup.
func AllowTools(names []string, opts ...PolicyOption) Middleware {
	return Authorize(AllowList(names...), opts...)
}

// AllowList returns a policy permitting only the named tools.
func AllowList(names ...string) Policy {
	allowed := make(map[string]bool, len(names))
	for _, n := range names {
		allowed[n] = true
	}
	return func(_ context.Context, call *protocol.Call) error {
		if !allowed[call.Name] {
			return fmt.Errorf("tool %q is not allowed", call.Name)
		}
		return nil
	}
}

// AllowVendors returns a policy permitting calls produced by the given vendors.
// Local calls carry no vendor and are always permitted.
func AllowVendors(vendors ...protocol.Vendor) Policy {
	allowed := make(map[protocol.Vendor]bool, len(vendors))
	for _, v := range vendors {
		allowed[v] = true
	}
	return func(_ context.Context, call *protocol.Call) error {
		if call.Vendor != "" && !allowed[call.Vendor] {
			return fmt.Errorf("vendor %q is not allowed", call.Vendor)
		}
		return nil
	}
}

// ChainPolicies combines policies; the first refusal wins.
func ChainPolicies(policies ...Policy) Policy {
	return func(ctx context.Context, call *protocol.Call) error {
		for _, p := range policies {
			if err := p(ctx, call); err != nil {
				return err
			}
		}
		return nil
	}
}
