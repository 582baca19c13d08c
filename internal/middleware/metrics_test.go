package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/web3-frozen/spro-fees/internal/metrics"
)

func TestMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics())
	r.Get("/api/adapters/{name}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/adapters/{name}", "418")
	before := testutil.ToFloat64(counter)

	req := httptest.NewRequest(http.MethodGet, "/api/adapters/foo", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("requests_total delta = %v, want 1", got)
	}
}

func TestMetricsWithoutRouter(t *testing.T) {
	h := Metrics()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unknown", "200")
	before := testutil.ToFloat64(counter)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("requests_total delta = %v, want 1", got)
	}
}
