// Package notification is the outbound boundary for user and admin
// notifications. Engines build Events as part of a transition; the caller
// dispatches them after the transition commits. Delivery is at-most-once
// from this service's point of view and failures never reach the caller.
package notification

import (
	"time"

	"github.com/google/uuid"

	id "trustgate/pkg/domain"
)

// Audience selects who receives an event.
type Audience string

const (
	AudienceUser   Audience = "user"
	AudienceAdmins Audience = "admins"
)

// EventType names the business event that triggered the notification.
type EventType string

const (
	EventDocumentSubmitted        EventType = "document_submitted"
	EventDocumentApproved         EventType = "document_approved"
	EventDocumentRejected         EventType = "document_rejected"
	EventMessagePendingModeration EventType = "message_pending_moderation"
	EventNewMessage               EventType = "new_message"
	EventMessageRejected          EventType = "message_rejected"
)

// Event is one notify(recipient, eventType, title, message, data) call.
type Event struct {
	ID          string         `json:"id"`
	Type        EventType      `json:"type"`
	Audience    Audience       `json:"audience"`
	RecipientID *id.UserID     `json:"recipient_id,omitempty"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	Data        map[string]any `json:"data,omitempty"`
	OccurredAt  time.Time      `json:"occurred_at"`
}

// ToUser builds an event addressed to a single user.
func ToUser(recipient id.UserID, eventType EventType, title, message string, data map[string]any, now time.Time) Event {
	r := recipient
	return Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		Audience:    AudienceUser,
		RecipientID: &r,
		Title:       title,
		Message:     message,
		Data:        data,
		OccurredAt:  now,
	}
}

// ToAdmins builds an event for the moderation/admin audience.
func ToAdmins(eventType EventType, title, message string, data map[string]any, now time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Audience:   AudienceAdmins,
		Title:      title,
		Message:    message,
		Data:       data,
		OccurredAt: now,
	}
}

// RoutingKey is the topic/stream key used by broker publishers,
// e.g. "user.document_approved" or "admins.message_pending_moderation".
func (e Event) RoutingKey() string {
	return string(e.Audience) + "." + string(e.Type)
}

// PartitionKey keeps a user's notifications ordered on partitioned brokers.
func (e Event) PartitionKey() string {
	if e.Audience == AudienceUser && e.RecipientID != nil {
		return e.RecipientID.String()
	}
	return string(e.Audience)
}
