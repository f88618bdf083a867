package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"redart/internal/platform/metrics"
	dErrors "redart/pkg/domain-errors"
	"redart/pkg/platform/httputil"
	"redart/pkg/platform/middleware/request"
	"redart/pkg/platform/middleware/requesttime"
)

// Registrar is a module handler that mounts its own routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck probes one backing dependency.
type HealthCheck func(ctx context.Context) error

// NewRouter wires the ledger endpoints behind the shared middleware stack and
// adds /health and /metrics.
func NewRouter(logger *slog.Logger, m *metrics.Metrics, checks map[string]HealthCheck, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(logger))
	r.Use(request.Logger(logger, m))
	r.Use(requesttime.Middleware)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, map[string]string{
			"error":             "method_not_allowed",
			"error_description": "method not allowed",
		})
	})

	r.Get("/health", healthHandler(checks))
	r.Handle("/metrics", promhttp.Handler())

	for _, h := range handlers {
		h.Register(r)
	}
	return r
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				status = http.StatusServiceUnavailable
				results[name] = err.Error()
				continue
			}
			results[name] = "ok"
		}
		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		httputil.WriteJSON(w, status, map[string]any{
			"status": overall,
			"checks": results,
		})
	}
}
