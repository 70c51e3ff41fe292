package models

import (
	"strings"
	"time"

	id "trustgate/pkg/domain"
	dErrors "trustgate/pkg/domain-errors"
)

// Message is a user-to-user message and its moderation state.
//
// Invariants:
//   - Messages about a property start pending and need moderation; direct
//     messages start approved
//   - Only pending messages are moderated, exactly once
//   - Status == modified iff OriginalContent holds the pre-edit text and it
//     differs from Content
//   - ModeratedBy/ModeratedAt are set iff a moderator decided the message
type Message struct {
	ID               id.MessageID   `json:"id"`
	SenderID         id.UserID      `json:"sender_id"`
	RecipientID      id.UserID      `json:"recipient_id"`
	Content          string         `json:"content"`
	PropertyID       *id.PropertyID `json:"property_id,omitempty"`
	Status           MessageStatus  `json:"status"`
	NeedsModeration  bool           `json:"needs_moderation"`
	OriginalContent  *string        `json:"original_content,omitempty"`
	ModerationReason string         `json:"moderation_reason,omitempty"`
	ModeratedBy      *id.UserID     `json:"moderated_by,omitempty"`
	ModeratedAt      *time.Time     `json:"moderated_at,omitempty"`
	ReadAt           *time.Time     `json:"read_at,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// NewMessage builds a message in its initial state. content must already be
// sanitized.
func NewMessage(msgID id.MessageID, sender, recipient id.UserID, content string, property *id.PropertyID, now time.Time) (*Message, error) {
	if sender.IsNil() || recipient.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "sender and recipient are required")
	}
	if sender == recipient {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "sender and recipient must differ")
	}
	m := &Message{
		ID:          msgID,
		SenderID:    sender,
		RecipientID: recipient,
		Content:     content,
		Status:      MessageStatusApproved,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if property != nil {
		p := *property
		m.PropertyID = &p
		m.Status = MessageStatusPending
		m.NeedsModeration = true
	}
	return m, nil
}

func (m *Message) IsPending() bool {
	return m.Status == MessageStatusPending
}

func (m *Message) IsDelivered() bool {
	return m.Status.IsDelivered()
}

func (m *Message) IsRead() bool {
	return m.ReadAt != nil
}

// CanModerate checks that no moderator has decided the message yet.
func (m *Message) CanModerate() error {
	if !m.Status.CanTransitionTo(MessageStatusApproved) {
		return dErrors.New(dErrors.CodeInvalidState, "message has already been moderated")
	}
	return nil
}

// ApplyApproval delivers the message. An edit that changes the text keeps the
// original and marks the message modified; an identical edit is a plain
// approval. Call CanModerate first.
func (m *Message) ApplyApproval(moderator id.UserID, edited *string, now time.Time) {
	if edited != nil && *edited != m.Content {
		original := m.Content
		m.OriginalContent = &original
		m.Content = *edited
		m.Status = MessageStatusModified
	} else {
		m.Status = MessageStatusApproved
	}
	m.stamp(moderator, now)
}

// ApplyRejection blocks the message. Call CanModerate first.
func (m *Message) ApplyRejection(moderator id.UserID, reason string, now time.Time) {
	m.Status = MessageStatusRejected
	m.ModerationReason = strings.TrimSpace(reason)
	m.stamp(moderator, now)
}

// MarkRead sets ReadAt once. It returns false when the message was already
// read.
func (m *Message) MarkRead(now time.Time) bool {
	if m.ReadAt != nil {
		return false
	}
	at := now
	m.ReadAt = &at
	m.UpdatedAt = now
	return true
}

func (m *Message) stamp(moderator id.UserID, now time.Time) {
	by := moderator
	at := now
	m.ModeratedBy = &by
	m.ModeratedAt = &at
	m.UpdatedAt = now
}
