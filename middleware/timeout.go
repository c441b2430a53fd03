package middleware

import (
	"context"
	"time"

	"github.com/keyrates/toolschema/protocol"
)

// Timeout returns middleware that bounds each call by d. Handlers observe the
// deadline through their context.
func Timeout(d time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, call *protocol.Call) (*protocol.Result, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next(ctx, call)
		}
	}
}
