package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RelayMetrics records per-endpoint metadata for relayed backend calls.
type RelayMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewRelayMetrics registers the relay metrics on the provided registerer.
func NewRelayMetrics(reg prometheus.Registerer) *RelayMetrics {
	if reg == nil {
		return &RelayMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "relay_request_duration_seconds",
		Help:    "Duration of relayed backend requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_requests_total",
		Help: "Relayed backend requests by endpoint and status code.",
	}, []string{"endpoint", "code"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_failures_total",
		Help: "Relayed requests that never reached the backend.",
	}, []string{"endpoint"})
	reg.MustRegister(duration, requests, failures)
	return &RelayMetrics{
		duration: duration,
		requests: requests,
		failures: failures,
	}
}

// ObserveDuration records the duration for the named endpoint.
func (r *RelayMetrics) ObserveDuration(endpoint string, duration time.Duration) {
	if r == nil || r.duration == nil {
		return
	}
	r.duration.WithLabelValues(normalizeLabel(endpoint)).Observe(duration.Seconds())
}

// IncRequest counts one relayed request with the backend's status code.
func (r *RelayMetrics) IncRequest(endpoint string, code int) {
	if r == nil || r.requests == nil {
		return
	}
	r.requests.WithLabelValues(normalizeLabel(endpoint), strconv.Itoa(code)).Inc()
}

// IncFailure counts one relay attempt that failed before receiving a
// backend response.
func (r *RelayMetrics) IncFailure(endpoint string) {
	if r == nil || r.failures == nil {
		return
	}
	r.failures.WithLabelValues(normalizeLabel(endpoint)).Inc()
}

func normalizeLabel(endpoint string) string {
	if endpoint == "" {
		return "unknown"
	}
	return endpoint
}
