package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics creates the node API metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chainboard",
			Name:      "requests_total",
			Help:      "The total number of node API requests",
		}, []string{"endpoint", "outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "chainboard",
			Name:      "request_duration_seconds",
			Help:      "Node API request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
	metrics.register(reg)
	return metrics
}

func (m *Metrics) register(reg prometheus.Registerer) {
	reg.MustRegister(m.requests, m.requestDuration)
}

// ObserveRequest implements api.Recorder.
func (m *Metrics) ObserveRequest(endpoint, outcome string, duration time.Duration) {
	m.requests.WithLabelValues(endpoint, outcome).Inc()
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}
