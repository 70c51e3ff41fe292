package notification

import (
	"context"
	"log/slog"
)

// LogPublisher writes events to the structured log. It is the default channel
// when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Name() string { return "log" }

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	attrs := []any{
		"event_id", event.ID,
		"event_type", event.Type,
		"audience", event.Audience,
		"title", event.Title,
	}
	if event.RecipientID != nil {
		attrs = append(attrs, "recipient_id", event.RecipientID)
	}
	p.logger.InfoContext(ctx, "notification", attrs...)
	return nil
}
