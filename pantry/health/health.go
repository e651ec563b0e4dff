// health/health.go
package health

import (
	"context"
	"net/http"
	"sort"

	"github.com/dalemusser/amountwords/httputil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Check is a single probe. It returns nil when healthy.
type Check func(ctx context.Context) error

// Response is the JSON body of the health endpoint.
type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Run executes checks in name order. A nil check counts as ok.
func Run(ctx context.Context, checks map[string]Check, logger *zap.Logger) (Response, bool) {
	if len(checks) == 0 {
		return Response{Status: "ok"}, true
	}

	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := Response{Status: "ok", Checks: make(map[string]string, len(checks))}
	healthy := true
	for _, name := range names {
		check := checks[name]
		if check == nil {
			resp.Checks[name] = "ok"
			continue
		}
		if err := check(ctx); err != nil {
			healthy = false
			resp.Checks[name] = "error: " + err.Error()
			if logger != nil {
				logger.Warn("health check failed", zap.String("check", name), zap.Error(err))
			}
			continue
		}
		resp.Checks[name] = "ok"
	}
	if !healthy {
		resp.Status = "error"
	}
	return resp, healthy
}

// Handler runs checks per request; 200 when all pass, 503 otherwise.
func Handler(checks map[string]Check, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp, ok := Run(r.Context(), checks, logger)
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		httputil.WriteJSONWithLogger(w, status, resp, logger)
	})
}

// Mount attaches GET /health to r.
func Mount(r chi.Router, checks map[string]Check, logger *zap.Logger) {
	r.Method(http.MethodGet, "/health", Handler(checks, logger))
}
