package middleware

import (
	"context"
	"time"

	"github.com/ReactiumCore/ReactiumFramework-sub005/hook"
)

// Timeout returns middleware that enforces a per-callback deadline.
// A context.WithTimeout wraps the handler call; when the deadline is
// exceeded the context is cancelled and a callback that honors it should
// return context.DeadlineExceeded. A non-positive d is a pass-through.
func Timeout(d time.Duration) Middleware {
	return func(ctx context.Context, _ *hook.Context, next Handler) error {
		if d <= 0 {
			return next(ctx)
		}
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return next(ctx)
	}
}
