// Package redis appends notification events to a Redis stream.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"trustgate/internal/notification"
)

const defaultMaxLen = 100_000

type Publisher struct {
	client redis.Cmdable
	stream string
	maxLen int64
}

func New(client redis.Cmdable, stream string) *Publisher {
	return &Publisher{client: client, stream: stream, maxLen: defaultMaxLen}
}

func (p *Publisher) Name() string { return "redis" }

// Publish XADDs the event, trimming the stream approximately to maxLen.
func (p *Publisher) Publish(ctx context.Context, event notification.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]any{
			"id":          event.ID,
			"type":        string(event.Type),
			"routing_key": event.RoutingKey(),
			"payload":     payload,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd notification: %w", err)
	}
	return nil
}
