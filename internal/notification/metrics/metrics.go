package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks notification delivery attempts per publisher.
type Metrics struct {
	Published       *prometheus.CounterVec
	PublishDuration *prometheus.HistogramVec
}

func New() *Metrics {
	return &Metrics{
		Published: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "trustgate_notifications_published_total",
			Help: "Notification delivery attempts by publisher, event type and outcome",
		}, []string{"publisher", "event_type", "outcome"}),
		PublishDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trustgate_notification_publish_duration_seconds",
			Help:    "Duration of a single notification publish attempt",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"publisher"}),
	}
}

// ObservePublish records one attempt. Safe on a nil receiver.
func (m *Metrics) ObservePublish(publisher, eventType string, ok bool, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	m.Published.WithLabelValues(publisher, eventType, outcome).Inc()
	m.PublishDuration.WithLabelValues(publisher).Observe(d.Seconds())
}
