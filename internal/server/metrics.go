package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ───────────────────────────────────────────────────────────────────────────
// SECTION: PROMETHEUS METRICS
// ───────────────────────────────────────────────────────────────────────────

var (
	// Collectors are registered once globally so tests can build several
	// Server instances without tripping duplicate-registration panics.
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fibpad_http_requests_total",
			Help: "Total number of HTTP requests handled, by path and status code",
		},
		[]string{"path", "code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fibpad_http_request_duration_seconds",
			Help:    "HTTP request latency distribution, by path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	httpActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fibpad_http_active_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	httpRateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fibpad_http_rate_limited_total",
			Help: "Total number of requests refused by the rate limiter",
		},
	)
)

// Metrics bundles the server's Prometheus collectors with the scrape handler.
type Metrics struct {
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	active      prometheus.Gauge
	rateLimited prometheus.Counter
	handler     http.Handler
}

// NewMetrics returns the server metrics bound to the global collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		requests:    httpRequestsTotal,
		duration:    httpRequestDuration,
		active:      httpActiveRequests,
		rateLimited: httpRateLimitedTotal,
		handler:     promhttp.Handler(),
	}
}

// RecordRequest counts one completed request.
func (m *Metrics) RecordRequest(path string, statusCode int, elapsed time.Duration) {
	m.requests.WithLabelValues(path, strconv.Itoa(statusCode)).Inc()
	m.duration.WithLabelValues(path).Observe(elapsed.Seconds())
}

// RecordRateLimited counts one refusal issued by the rate limiter.
func (m *Metrics) RecordRateLimited() {
	m.rateLimited.Inc()
}

// Handler returns the Prometheus scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	return m.handler
}

// statusRecorder captures the status code written by a handler so the
// metrics middleware can label the request counter with it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware records request counts, latency, and the in-flight gauge
// for every request passing through it.
func (s *Server) metricsMiddleware(path string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.metrics.active.Inc()
		defer s.metrics.active.Dec()

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(recorder, r)

		s.metrics.RecordRequest(path, recorder.status, time.Since(start))
	}
}
