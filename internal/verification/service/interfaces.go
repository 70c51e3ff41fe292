package service

import (
	"context"

	"trustgate/internal/notification"
	"trustgate/internal/verification/models"
	id "trustgate/pkg/domain"
	audit "trustgate/pkg/platform/audit"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

// DocumentStore is the persistence port for documents.
type DocumentStore interface {
	Create(ctx context.Context, doc *models.Document) error
	FindByID(ctx context.Context, docID id.DocumentID) (*models.Document, error)
	ListByOwner(ctx context.Context, owner id.UserID) ([]*models.Document, error)
	ListPending(ctx context.Context, limit int) ([]*models.Document, error)
	CountByTypeAndStatus(ctx context.Context) ([]models.StatusCount, error)
	// Execute atomically validates and mutates one document. validate and
	// mutate run under the same lock; nothing is written if validate fails.
	Execute(ctx context.Context, docID id.DocumentID, validate func(*models.Document) error, mutate func(*models.Document)) (*models.Document, error)
}

// TrustScorer recomputes and persists a user's trust score.
type TrustScorer interface {
	UpdateUserTrustScore(ctx context.Context, userID id.UserID) (float64, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// TxRunner runs fn in a transaction carried on the context passed to fn.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Notifier interface {
	Dispatch(ctx context.Context, events ...notification.Event)
}
