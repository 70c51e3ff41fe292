package service

import (
	"context"
	"time"

	"trustgate/internal/messaging/models"
	"trustgate/internal/notification"
	id "trustgate/pkg/domain"
	audit "trustgate/pkg/platform/audit"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

// MessageStore is the persistence port for messages.
type MessageStore interface {
	Create(ctx context.Context, msg *models.Message) error
	FindByID(ctx context.Context, msgID id.MessageID) (*models.Message, error)
	ListPending(ctx context.Context, limit int) ([]*models.Message, error)
	ListInbox(ctx context.Context, recipient id.UserID, limit int) ([]*models.Message, error)
	// Execute atomically validates and mutates one message; nothing is
	// written if validate fails or the message stopped being pending.
	Execute(ctx context.Context, msgID id.MessageID, validate func(*models.Message) error, mutate func(*models.Message)) (*models.Message, error)
	MarkRead(ctx context.Context, ids []id.MessageID, recipient id.UserID, now time.Time) (int, error)
}

// SenderVerifier answers whether a user may send messages at all.
type SenderVerifier interface {
	IsEmailVerified(ctx context.Context, userID id.UserID) (bool, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Notifier interface {
	Dispatch(ctx context.Context, events ...notification.Event)
}
