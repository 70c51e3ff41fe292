package audit

import (
	"context"
	"time"

	id "trustgate/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose so stores can
// apply different retention.
type EventCategory string

const (
	// CategoryCompliance covers decisions with legal or dispute significance:
	// document validations and moderation outcomes.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers routine activity useful for debugging.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain services after a transition commits. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	// UserID is the user the event is about (document owner, message sender).
	UserID id.UserID
	// ActorID is who performed the action when different from UserID
	// (validator, moderator).
	ActorID   string
	Subject   string // entity identifier, e.g. document or message ID
	Action    string
	Decision  string
	Reason    string
	RequestID string
}

type AuditEvent string

const (
	EventDocumentSubmitted AuditEvent = "document_submitted"
	EventDocumentApproved  AuditEvent = "document_approved"
	EventDocumentRejected  AuditEvent = "document_rejected"
	EventTrustScoreUpdated AuditEvent = "trust_score_updated"
	EventMessageCreated    AuditEvent = "message_created"
	EventMessageApproved   AuditEvent = "message_approved"
	EventMessageModified   AuditEvent = "message_modified"
	EventMessageRejected   AuditEvent = "message_rejected"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventDocumentApproved: CategoryCompliance,
	EventDocumentRejected: CategoryCompliance,
	EventMessageApproved:  CategoryCompliance,
	EventMessageModified:  CategoryCompliance,
	EventMessageRejected:  CategoryCompliance,

	EventDocumentSubmitted: CategoryOperations,
	EventTrustScoreUpdated: CategoryOperations,
	EventMessageCreated:    CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByUser(ctx context.Context, userID id.UserID) ([]Event, error)
}
