package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records request and AI edit statistics.
type Metrics interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncAIEdits(outcome string)
	ObserveAIStreamDuration(duration time.Duration)
}

// AI edit outcomes
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
	OutcomeAborted  = "aborted"
)

type promMetrics struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	aiEdits          *prometheus.CounterVec
	aiStreamDuration prometheus.Histogram
}

// NewMetrics registers the collectors on reg. A nil reg disables metrics.
func NewMetrics(reg prometheus.Registerer) Metrics {
	if reg == nil {
		return noopMetrics{}
	}
	factory := promauto.With(reg)

	return &promMetrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tipbox_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tipbox_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "tipbox_preview_cache_hits_total",
			Help: "Total number of preview cache hits",
		}),

		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "tipbox_preview_cache_misses_total",
			Help: "Total number of preview cache misses",
		}),

		aiEdits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tipbox_ai_edits_total",
			Help: "AI CSS edit requests by outcome",
		}, []string{"outcome"}),

		aiStreamDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "tipbox_ai_stream_duration_seconds",
			Help:    "Time from AI request to the end of its stream",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		}),
	}
}

func (m *promMetrics) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *promMetrics) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *promMetrics) IncCacheHits()   { m.cacheHits.Inc() }
func (m *promMetrics) IncCacheMisses() { m.cacheMisses.Inc() }

func (m *promMetrics) IncAIEdits(outcome string) {
	m.aiEdits.WithLabelValues(outcome).Inc()
}

func (m *promMetrics) ObserveAIStreamDuration(duration time.Duration) {
	m.aiStreamDuration.Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

// noopMetrics is used when metrics are disabled.
type noopMetrics struct{}

func (noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (noopMetrics) IncCacheHits()                                    {}
func (noopMetrics) IncCacheMisses()                                  {}
func (noopMetrics) IncAIEdits(_ string)                              {}
func (noopMetrics) ObserveAIStreamDuration(_ time.Duration)          {}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the flusher underneath.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// routeLabel is the matched mux pattern, so templated paths share a label.
// The mux fills r.Pattern while routing.
func routeLabel(r *http.Request) string {
	if r.Pattern != "" {
		return r.Pattern
	}
	return "unmatched"
}
