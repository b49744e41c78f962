package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains the Prometheus metrics recorded by the source adapters.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Requests counts adapter operations, labeled by source, operation and
	// outcome ("success" or "failure").
	Requests *prometheus.CounterVec

	// Duration observes operation duration in seconds, labeled by source
	// and operation.
	Duration *prometheus.HistogramVec

	// Results counts records returned, labeled by source.
	Results *prometheus.CounterVec
}

// NewMetrics registers the adapter metrics under namespace on reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total adapter operations by source, operation and outcome.",
		}, []string{"source", "operation", "outcome"}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Adapter operation duration in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"source", "operation"}),
		Results: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_total",
			Help:      "Total records returned by source.",
		}, []string{"source"}),
	}
}

// RecordOperation records one finished adapter operation.
func (m *Metrics) RecordOperation(source, operation string, success bool, results int, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
		m.Results.WithLabelValues(source).Add(float64(results))
	}
	m.Requests.WithLabelValues(source, operation, outcome).Inc()
	m.Duration.WithLabelValues(source, operation).Observe(elapsed.Seconds())
}
