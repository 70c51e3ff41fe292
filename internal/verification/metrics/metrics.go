package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for document verification.
type Metrics struct {
	DocumentsSubmitted *prometheus.CounterVec
	Decisions          *prometheus.CounterVec
	DecisionConflicts  prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		DocumentsSubmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "trustgate_documents_submitted_total",
			Help: "Documents registered for validation by type",
		}, []string{"type"}),

		Decisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "trustgate_document_decisions_total",
			Help: "Document validation decisions by type and outcome",
		}, []string{"type", "outcome"}), // outcome: approved, rejected

		DecisionConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "trustgate_document_decision_conflicts_total",
			Help: "Validation attempts on documents that were already decided",
		}),
	}
}

func (m *Metrics) IncrementSubmitted(docType string) {
	if m != nil {
		m.DocumentsSubmitted.WithLabelValues(docType).Inc()
	}
}

func (m *Metrics) IncrementDecision(docType, outcome string) {
	if m != nil {
		m.Decisions.WithLabelValues(docType, outcome).Inc()
	}
}

func (m *Metrics) IncrementConflict() {
	if m != nil {
		m.DecisionConflicts.Inc()
	}
}
