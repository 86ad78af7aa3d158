package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestStatusBucket(t *testing.T) {
	assert.Equal(t, "1xx", statusBucket(101))
	assert.Equal(t, "2xx", statusBucket(201))
	assert.Equal(t, "3xx", statusBucket(304))
	assert.Equal(t, "4xx", statusBucket(409))
	assert.Equal(t, "5xx", statusBucket(503))
}

func TestPrometheus_Counters(t *testing.T) {
	m := NewPrometheus(prometheus.NewRegistry())

	m.IncCompletions(OutcomeCreated)
	m.IncCompletions(OutcomeConflict)
	m.IncCompletions(OutcomeConflict)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncCacheMisses()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.completions.WithLabelValues(OutcomeCreated)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.completions.WithLabelValues(OutcomeConflict)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheHits))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheMisses))
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := NewPrometheus(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(Middleware(m))
	r.Get("/habits/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/habits/123", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/habits/{id}", "4xx")))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := NewPrometheus(prometheus.NewRegistry())
	m.IncCompletions(OutcomeCreated)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "habits_completions_total"))
}

func TestNoop(t *testing.T) {
	var rec Recorder = Noop{}
	rec.IncRequestsTotal("/", 200)
	rec.ObserveRequestDuration("/", time.Millisecond)
	rec.IncCompletions(OutcomeCreated)
	rec.IncCacheHits()
	rec.IncCacheMisses()
}
