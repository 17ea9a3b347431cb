package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus owns a registry and the outbound request collectors
type Prometheus struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates a registry with the square_client_* collectors registered
func New() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "square",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Requests sent to the Square API by version, method and status code (0 for transport failures).",
		}, []string{"version", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "square",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Latency of requests sent to the Square API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"version", "method"}),
	}

	p.registry.MustRegister(p.requests, p.duration)
	return p
}

// Registry returns the underlying registry
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// ObserveRequest records one completed or failed request.
// status is 0 when no response was received.
func (p *Prometheus) ObserveRequest(version, method string, status int, elapsed time.Duration) {
	if p == nil {
		return
	}
	p.requests.WithLabelValues(version, method, strconv.Itoa(status)).Inc()
	p.duration.WithLabelValues(version, method).Observe(elapsed.Seconds())
}
