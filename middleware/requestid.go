package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/keyrates/toolschema/protocol"
)

type contextKey string

const requestIDKey contextKey = "requestID"

// RequestID returns middleware that injects a unique ID into the context of
// every call. A call that arrives with a vendor-assigned ID keeps it; an ID
// already present in the context is preserved.
func RequestID() Middleware {
	return RequestIDWithGenerator(uuid.NewString)
}

// RequestIDWithGenerator returns middleware that uses a custom ID generator.
func RequestIDWithGenerator(generator func() string) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, call *protocol.Call) (*protocol.Result, error) {
			if existing := RequestIDFromContext(ctx); existing != "" {
				return next(ctx, call)
			}

			id := call.ID
			if id == "" {
				id = generator()
				c := *call
				c.ID = id
				call = &c
			}
			return next(ContextWithRequestID(ctx, id), call)
		}
	}
}

// RequestIDFromContext returns the request ID from the context, or empty string if not set.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// ContextWithRequestID returns a new context with the request ID set.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}
