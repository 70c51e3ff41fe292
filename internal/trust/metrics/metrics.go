package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for trust scoring.
type Metrics struct {
	// Fact gathering latencies by source
	FactLatency *prometheus.HistogramVec

	// Persisted scores; buckets follow the half-point factor weights
	Scores prometheus.Histogram

	// Score writes by whether the value moved
	Updates *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		FactLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trustgate_trust_fact_duration_seconds",
			Help:    "Duration of trust fact lookups by source",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"source"}), // source: "profile", "documents"

		Scores: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "trustgate_trust_score",
			Help:    "Distribution of persisted trust scores",
			Buckets: []float64{0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5},
		}),

		Updates: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "trustgate_trust_score_updates_total",
			Help: "Trust score recomputations persisted, by whether the score changed",
		}, []string{"changed"}),
	}
}

func (m *Metrics) ObserveFactLatency(source string, d time.Duration) {
	if m != nil {
		m.FactLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

// RecordUpdate records one persisted recomputation.
func (m *Metrics) RecordUpdate(score float64, changed bool) {
	if m == nil {
		return
	}
	m.Scores.Observe(score)
	label := "false"
	if changed {
		label = "true"
	}
	m.Updates.WithLabelValues(label).Inc()
}
