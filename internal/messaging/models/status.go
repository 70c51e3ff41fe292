package models

// MessageStatus is the closed set of moderation states.
type MessageStatus string

const (
	MessageStatusPending  MessageStatus = "pending"
	MessageStatusApproved MessageStatus = "approved"
	MessageStatusModified MessageStatus = "modified"
	MessageStatusRejected MessageStatus = "rejected"
)

// CanTransitionTo encodes the moderation state machine: only pending moves,
// and only once.
func (s MessageStatus) CanTransitionTo(next MessageStatus) bool {
	if s != MessageStatusPending {
		return false
	}
	switch next {
	case MessageStatusApproved, MessageStatusModified, MessageStatusRejected:
		return true
	}
	return false
}

// IsDelivered reports whether the recipient can see the message.
func (s MessageStatus) IsDelivered() bool {
	return s == MessageStatusApproved || s == MessageStatusModified
}

func (s MessageStatus) IsValid() bool {
	switch s {
	case MessageStatusPending, MessageStatusApproved, MessageStatusModified, MessageStatusRejected:
		return true
	}
	return false
}

func (s MessageStatus) String() string {
	return string(s)
}
