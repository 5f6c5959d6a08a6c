package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/ReactiumCore/ReactiumFramework-sub005/hook"
)

// Recover returns middleware that recovers from panics in the callback.
// Panics are converted to errors and logged with a stack trace. The
// resulting error still aborts the dispatch sequence fail-fast.
func Recover(logger *slog.Logger) Middleware {
	return func(ctx context.Context, hc *hook.Context, next Handler) (retErr error) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				logger.Error("hook callback panicked",
					slog.String("hook", hc.Hook),
					slog.Any("panic", r),
					slog.String("stack", stack),
				)
				retErr = fmt.Errorf("panic in hook %s: %v", hc.Hook, r)
			}
		}()
		return next(ctx)
	}
}
