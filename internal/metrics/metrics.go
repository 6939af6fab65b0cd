// Package metrics exposes Prometheus instrumentation for the alignment
// engine and the ops HTTP listener.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Scan outcome labels.
const (
	OutcomeFound      = "found"
	OutcomeNotFound   = "not_found"
	OutcomeInfeasible = "infeasible"
	OutcomeCancelled  = "cancelled"
)

var (
	scansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fujicalendar_scans_total",
			Help: "Total number of per-phase alignment scans by outcome.",
		},
		[]string{"kind", "phase", "outcome"},
	)

	scanDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fujicalendar_scan_duration_seconds",
			Help:    "Wall time of one per-phase alignment scan.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind", "phase"},
	)

	providerErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fujicalendar_provider_errors_total",
			Help: "Total number of per-instant celestial provider failures.",
		},
	)

	eventsFoundTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fujicalendar_events_found_total",
			Help: "Total number of alignment events emitted, by accuracy tier.",
		},
		[]string{"kind", "accuracy"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fujicalendar_http_requests_total",
			Help: "Total number of HTTP requests on the ops listener.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fujicalendar_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)
)

func init() {
	prometheus.MustRegister(scansTotal)
	prometheus.MustRegister(scanDurationSeconds)
	prometheus.MustRegister(providerErrorsTotal)
	prometheus.MustRegister(eventsFoundTotal)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpDurationSeconds)
}

// RecordScan counts one completed per-phase scan.
func RecordScan(kind, phase, outcome string) {
	scansTotal.WithLabelValues(kind, phase, outcome).Inc()
}

// ObserveScanDuration records the wall time of one per-phase scan.
func ObserveScanDuration(kind, phase string, seconds float64) {
	scanDurationSeconds.WithLabelValues(kind, phase).Observe(seconds)
}

// RecordProviderError counts one skipped instant.
func RecordProviderError() {
	providerErrorsTotal.Inc()
}

// RecordEvent counts one emitted alignment event.
func RecordEvent(kind, accuracy string) {
	eventsFoundTotal.WithLabelValues(kind, accuracy).Inc()
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// knownRoutes are the ops listener paths kept as distinct label values.
var knownRoutes = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
	"/metrics": true,
}

// normalizeRoute collapses unknown paths to one label value so bots cannot
// blow up the label cardinality.
func normalizeRoute(path string) string {
	if knownRoutes[path] {
		return path
	}
	return "other"
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and duration for each request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		route := normalizeRoute(r.URL.Path)
		code := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(route, r.Method, code).Inc()
		httpDurationSeconds.WithLabelValues(route, r.Method).Observe(duration)
	})
}
