// router/router.go
package router

import (
	"github.com/dalemusser/amountwords/config"
	"github.com/dalemusser/amountwords/logging"
	"github.com/dalemusser/amountwords/metrics"
	"github.com/dalemusser/amountwords/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// New creates a chi.Router with the standard middleware stack:
// request ID, real IP, panic recovery, CORS (when enabled), body size limit,
// HTTP metrics, access logging and JSON NotFound / MethodNotAllowed handlers.
// Routes are mounted by the caller.
func New(cfg *config.Config, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(logging.Recoverer(logger))

	// CORS runs before the body limit so preflight requests are answered.
	r.Use(middleware.CORSFromConfig(cfg))
	r.Use(middleware.LimitBodySize(cfg.MaxRequestBodyBytes))

	r.Use(metrics.HTTPMetrics)
	r.Use(logging.RequestLogger(logger))

	r.NotFound(middleware.NotFoundHandler(logger))
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler(logger))

	return r
}
