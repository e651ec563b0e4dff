// internal/api/routes.go
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/amountwords/config"
	"github.com/dalemusser/amountwords/metrics"
	"github.com/dalemusser/amountwords/pantry/health"
	"github.com/dalemusser/amountwords/pantry/version"
	"github.com/dalemusser/amountwords/router"
	"github.com/dalemusser/amountwords/words"
	"go.uber.org/zap"
)

// NewHandler builds the complete HTTP handler: the standard router stack,
// /v1 routes, /health, /version and /metrics.
func NewHandler(cfg *config.Config, engine *words.Engine, logger *zap.Logger) (http.Handler, error) {
	if cfg == nil {
		return nil, errors.New("api: nil config")
	}
	r := router.New(cfg, logger)

	r.Mount("/v1", New(engine, cfg, logger).Routes())

	health.Mount(r, map[string]health.Check{
		"registry": func(context.Context) error {
			if engine.Registry().Len() == 0 {
				return errors.New("no currencies registered")
			}
			return nil
		},
	}, logger)
	version.Mount(r)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r, nil
}
