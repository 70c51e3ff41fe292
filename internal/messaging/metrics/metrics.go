package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for messaging and moderation.
type Metrics struct {
	MessagesCreated     *prometheus.CounterVec
	SpamScores          prometheus.Histogram
	ModerationDecisions *prometheus.CounterVec
	ModerationConflicts prometheus.Counter
	MessagesRead        prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		MessagesCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "trustgate_messages_created_total",
			Help: "Messages accepted, by initial status",
		}, []string{"status"}), // status: approved, pending

		SpamScores: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "trustgate_message_spam_score",
			Help:    "Spam score of accepted messages",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),

		ModerationDecisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "trustgate_moderation_decisions_total",
			Help: "Moderation decisions by outcome",
		}, []string{"outcome"}), // outcome: approved, modified, rejected

		ModerationConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "trustgate_moderation_conflicts_total",
			Help: "Moderation attempts on messages that were already decided",
		}),

		MessagesRead: promauto.NewCounter(prometheus.CounterOpts{
			Name: "trustgate_messages_read_total",
			Help: "Messages marked as read",
		}),
	}
}

func (m *Metrics) RecordCreated(status string, spamScore int) {
	if m != nil {
		m.MessagesCreated.WithLabelValues(status).Inc()
		m.SpamScores.Observe(float64(spamScore))
	}
}

func (m *Metrics) IncrementDecision(outcome string) {
	if m != nil {
		m.ModerationDecisions.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncrementConflict() {
	if m != nil {
		m.ModerationConflicts.Inc()
	}
}

func (m *Metrics) AddRead(n int) {
	if m != nil && n > 0 {
		m.MessagesRead.Add(float64(n))
	}
}
