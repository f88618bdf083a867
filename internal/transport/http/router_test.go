package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redart/pkg/platform/middleware/request"
	"redart/pkg/requestcontext"
)

type echoRoutes struct{}

func (echoRoutes) Register(r chi.Router) {
	r.Get("/echo", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Context().Value(requestcontext.ContextKeyRequestTime).(time.Time); !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(requestcontext.RequestID(r.Context())))
	})
	r.Get("/boom", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
}

func newTestRouter(checks map[string]HealthCheck) http.Handler {
	return NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), nil, checks, echoRoutes{})
}

func serve(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestRouterMiddleware(t *testing.T) {
	router := newTestRouter(nil)

	rec := serve(router, http.MethodGet, "/echo")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
	assert.Equal(t, rec.Body.String(), rec.Header().Get(request.HeaderRequestID))

	rec = serve(router, http.MethodGet, "/boom")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = serve(router, http.MethodGet, "/nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")

	rec = serve(router, http.MethodPost, "/echo")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealth(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	rec := serve(newTestRouter(map[string]HealthCheck{"postgres": healthy}), http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(newTestRouter(map[string]HealthCheck{"postgres": healthy, "redis": down}), http.MethodGet, "/health")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "ok", body.Checks["postgres"])
	assert.Equal(t, "connection refused", body.Checks["redis"])
}

func TestMetricsEndpoint(t *testing.T) {
	rec := serve(newTestRouter(nil), http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}
