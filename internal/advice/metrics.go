package advice

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "carbon_advice"

// Metrics holds the advice pipeline's Prometheus collectors. A nil *Metrics
// records nothing.
type Metrics struct {
	outcomes *prometheus.CounterVec
	attempts *prometheus.CounterVec
	latency  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg when reg is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "pipeline_outcomes_total",
			Help:      "Advice requests by resolved pipeline state.",
		}, []string{"state"}),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "model_attempts_total",
			Help:      "Model generation attempts by model and result.",
		}, []string{"model", "result"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Time to produce an advice payload.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.outcomes, m.attempts, m.latency)
	}
	return m
}

func (m *Metrics) observeOutcome(state State, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(string(state)).Inc()
	m.latency.Observe(elapsed.Seconds())
}

func (m *Metrics) observeAttempt(model, result string) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(model, result).Inc()
}
