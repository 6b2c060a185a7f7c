package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/lrucache/core/handler"
	"github.com/dmitrymomot/lrucache/core/logger"
	"github.com/dmitrymomot/lrucache/core/response"
)

// Readiness verifies all service dependencies are functioning.
// Returns "READY" if all checks pass, 503 Service Unavailable if any fail.
//
// Example:
//
//	r.Get("/health/ready", health.Readiness(log, store.Ping))
func Readiness(log *slog.Logger, fn ...func(context.Context) error) handler.HandlerFunc {
	return func(r *http.Request) handler.Response {
		ctx := r.Context()
		for _, f := range fn {
			if err := f(ctx); err != nil {
				log.ErrorContext(ctx, "Readiness check failed", logger.Error(err))
				return response.Error(response.ErrServiceUnavailable)
			}
		}

		return response.String("READY")
	}
}
