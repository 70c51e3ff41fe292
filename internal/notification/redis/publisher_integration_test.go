//go:build integration

package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"trustgate/internal/notification"
	notificationredis "trustgate/internal/notification/redis"
	id "trustgate/pkg/domain"
	"trustgate/pkg/testutil/containers"
)

const stream = "trustgate.notifications.test"

type RedisPublisherSuite struct {
	suite.Suite
	redis     *containers.RedisContainer
	publisher *notificationredis.Publisher
}

func TestRedisPublisherSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisPublisherSuite))
}

func (s *RedisPublisherSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.publisher = notificationredis.New(s.redis.Client, stream)
}

func (s *RedisPublisherSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisPublisherSuite) TestPublishAppendsToStream() {
	ctx := context.Background()
	recipient := id.UserID(uuid.New())
	event := notification.ToUser(recipient, notification.EventMessageRejected, "Message not delivered",
		"Your message was not delivered", map[string]any{"reason": "contact details"}, time.Now().UTC())

	s.Require().NoError(s.publisher.Publish(ctx, event))

	entries, err := s.redis.Client.XRange(ctx, stream, "-", "+").Result()
	s.Require().NoError(err)
	s.Require().Len(entries, 1)

	values := entries[0].Values
	s.Equal(event.ID, values["id"])
	s.Equal("user.message_rejected", values["routing_key"])

	var decoded notification.Event
	s.Require().NoError(json.Unmarshal([]byte(values["payload"].(string)), &decoded))
	s.Equal(notification.EventMessageRejected, decoded.Type)
	s.Require().NotNil(decoded.RecipientID)
	s.Equal(recipient, *decoded.RecipientID)
}

func (s *RedisPublisherSuite) TestEventsKeepOrder() {
	ctx := context.Background()
	for _, t := range []notification.EventType{notification.EventDocumentSubmitted, notification.EventMessagePendingModeration} {
		s.Require().NoError(s.publisher.Publish(ctx, notification.ToAdmins(t, "title", "msg", nil, time.Now().UTC())))
	}

	entries, err := s.redis.Client.XRange(ctx, stream, "-", "+").Result()
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(string(notification.EventDocumentSubmitted), entries[0].Values["type"])
	s.Equal(string(notification.EventMessagePendingModeration), entries[1].Values["type"])
}
