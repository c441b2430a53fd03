package middleware

import (
	"context"
	"fmt"

	"github.com/keyrates/toolschema/protocol"
)

// PanicHandler is called when a panic is recovered.
type PanicHandler func(ctx context.Context, call *protocol.Call, panicVal any) (*protocol.Result, error)

// Recover returns middleware that converts handler panics into internal errors.
func Recover() Middleware {
	return RecoverWithHandler(defaultPanicHandler)
}

// RecoverWithHandler returns middleware that catches panics and calls the provided handler.
func RecoverWithHandler(handler PanicHandler) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, call *protocol.Call) (res *protocol.Result, err error) {
			defer func() {
				if r := recover(); r != nil {
					res, err = handler(ctx, call, r)
				}
			}()
			return next(ctx, call)
		}
	}
}

func defaultPanicHandler(_ context.Context, call *protocol.Call, panicVal any) (*protocol.Result, error) {
	return nil, protocol.NewInternalError(fmt.Sprintf("tool %s panicked: %v", call.Name, panicVal))
}
