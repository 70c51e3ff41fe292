package notification

import (
	"context"
	"log/slog"
	"time"

	"trustgate/internal/notification/metrics"
)

// Publisher delivers an event to one channel (broker, stream, log).
type Publisher interface {
	Name() string
	Publish(ctx context.Context, event Event) error
}

// Dispatcher fans events out to every configured publisher. It never returns
// an error: a completed state transition must not be rolled back because a
// notification could not be delivered.
type Dispatcher struct {
	publishers []Publisher
	logger     *slog.Logger
	metrics    *metrics.Metrics
	timeout    time.Duration
}

type Option func(*Dispatcher)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithTimeout bounds a single publish attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

const defaultPublishTimeout = 2 * time.Second

func NewDispatcher(publishers []Publisher, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		publishers: publishers,
		logger:     slog.Default(),
		timeout:    defaultPublishTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch makes one delivery attempt per event and publisher.
// A nil Dispatcher is a valid no-op.
func (d *Dispatcher) Dispatch(ctx context.Context, events ...Event) {
	if d == nil {
		return
	}
	// The triggering request may already be finishing; delivery must not
	// inherit its cancellation.
	base := context.WithoutCancel(ctx)
	for _, event := range events {
		for _, p := range d.publishers {
			d.publish(base, p, event)
		}
	}
}

func (d *Dispatcher) publish(ctx context.Context, p Publisher, event Event) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	err := p.Publish(ctx, event)
	d.metrics.ObservePublish(p.Name(), string(event.Type), err == nil, time.Since(start))
	if err != nil {
		d.logger.WarnContext(ctx, "notification delivery failed",
			"publisher", p.Name(),
			"event_id", event.ID,
			"event_type", event.Type,
			"audience", event.Audience,
			"error", err,
		)
	}
}
