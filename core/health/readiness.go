package health

import (
	"context"
	"log/slog"

	"github.com/biblio2ie/biblio/core/handler"
	"github.com/biblio2ie/biblio/core/logger"
	"github.com/biblio2ie/biblio/core/response"
)

// Readiness answers "READY" when every check passes and 503 otherwise.
// The session backend is optional for serving pages, so callers usually pass
// its check here rather than failing liveness.
func Readiness[C handler.Context](log *slog.Logger, checks ...func(context.Context) error) handler.HandlerFunc[C] {
	if log == nil {
		log = logger.Discard()
	}
	return func(ctx C) handler.Response {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed",
					logger.Component("health"),
					logger.Error(err),
				)
				return response.Error(response.ErrServiceUnavailable.WithError(err))
			}
		}
		return response.NoStore(response.String("READY"))
	}
}
