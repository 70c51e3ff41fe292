// Package kafka publishes notification events to a Kafka topic. The external
// notification service consumes the topic and owns delivery (email, push).
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"trustgate/internal/notification"
)

// Producer is the subset of *kgo.Client the publisher needs.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

type Publisher struct {
	client Producer
	topic  string
}

func New(client Producer, topic string) *Publisher {
	return &Publisher{client: client, topic: topic}
}

func (p *Publisher) Name() string { return "kafka" }

// Publish writes one record keyed by recipient so a user's notifications stay
// ordered within a partition.
func (p *Publisher) Publish(ctx context.Context, event notification.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.PartitionKey()),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "routing_key", Value: []byte(event.RoutingKey())},
		},
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce notification: %w", err)
	}
	return nil
}
