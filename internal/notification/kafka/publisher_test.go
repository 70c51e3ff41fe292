package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"trustgate/internal/notification"
	id "trustgate/pkg/domain"
)

type fakeProducer struct {
	records []*kgo.Record
	err     error
}

func (f *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		f.records = append(f.records, r)
		results = append(results, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return results
}

func TestPublisher_Publish(t *testing.T) {
	t.Run("keys records by recipient", func(t *testing.T) {
		producer := &fakeProducer{}
		p := New(producer, "trustgate.notifications")
		recipient := id.UserID(uuid.New())
		event := notification.ToUser(recipient, notification.EventNewMessage, "New message", "You have a new message", map[string]any{"message_id": "m1"}, time.Now())

		require.NoError(t, p.Publish(context.Background(), event))
		require.Len(t, producer.records, 1)

		record := producer.records[0]
		assert.Equal(t, "trustgate.notifications", record.Topic)
		assert.Equal(t, recipient.String(), string(record.Key))

		var decoded notification.Event
		require.NoError(t, json.Unmarshal(record.Value, &decoded))
		assert.Equal(t, notification.EventNewMessage, decoded.Type)
		require.NotNil(t, decoded.RecipientID)
		assert.Equal(t, recipient, *decoded.RecipientID)
	})

	t.Run("surfaces produce errors", func(t *testing.T) {
		producer := &fakeProducer{err: errors.New("not leader")}
		p := New(producer, "t")
		err := p.Publish(context.Background(), notification.ToAdmins(notification.EventDocumentSubmitted, "t", "m", nil, time.Now()))
		assert.ErrorContains(t, err, "not leader")
	})
}
