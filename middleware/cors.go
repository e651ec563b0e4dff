// middleware/cors.go
package middleware

import (
	"net/http"

	"github.com/dalemusser/amountwords/config"
	"github.com/go-chi/cors"
)

// CORSFromConfig returns a CORS middleware built from cfg.CORS, or an
// identity middleware when CORS is disabled or cfg is nil, so it is safe to
// call unconditionally:
//
//	r.Use(middleware.CORSFromConfig(cfg))
func CORSFromConfig(cfg *config.Config) func(next http.Handler) http.Handler {
	if cfg == nil || !cfg.CORS.EnableCORS {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.CORSAllowedOrigins,
		AllowedMethods:   cfg.CORS.CORSAllowedMethods,
		AllowedHeaders:   cfg.CORS.CORSAllowedHeaders,
		ExposedHeaders:   cfg.CORS.CORSExposedHeaders,
		AllowCredentials: cfg.CORS.CORSAllowCredentials,
		MaxAge:           cfg.CORS.CORSMaxAge,
	})
}
