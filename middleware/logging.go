package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/ReactiumCore/ReactiumFramework-sub005/hook"
)

// Logging returns middleware that logs callback start and completion.
func Logging(logger *slog.Logger) Middleware {
	return func(ctx context.Context, hc *hook.Context, next Handler) error {
		logger.Debug("hook callback started",
			slog.String("hook", hc.Hook),
		)

		start := time.Now()
		err := next(ctx)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("hook callback failed",
				slog.String("hook", hc.Hook),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Debug("hook callback completed",
				slog.String("hook", hc.Hook),
				slog.Duration("elapsed", elapsed),
			)
		}

		return err
	}
}
