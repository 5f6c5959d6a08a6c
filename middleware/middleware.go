package middleware

import (
	"context"

	"github.com/ReactiumCore/ReactiumFramework-sub005/hook"
)

// Handler is the terminal function that executes the callback logic.
type Handler func(ctx context.Context) error

// Middleware wraps a Handler with cross-cutting logic. It receives the
// current context, the hook Context being dispatched, and the next
// handler to call. Middleware MUST call next to continue the chain
// (unless short-circuiting on error).
type Middleware func(ctx context.Context, hc *hook.Context, next Handler) error

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the
// list is the outermost wrapper.
//
// Example: Chain(logging, recover, timeout) executes as:
//
//	logging → recover → timeout → callback
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, hc *hook.Context, next Handler) error {
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context) error {
				return mw(ctx, hc, prev)
			}
		}
		return h(ctx)
	}
}

// Wrap adapts a hook callback so the given middleware run around it.
// The wrapped callback is what gets registered with the engine.
func Wrap(cb hook.Callback, mws ...Middleware) hook.Callback {
	chain := Chain(mws...)
	return func(ctx context.Context, hc *hook.Context) error {
		return chain(ctx, hc, func(ctx context.Context) error {
			return cb(ctx, hc)
		})
	}
}
