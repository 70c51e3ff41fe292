package service

import (
	"context"
	"time"

	"trustgate/internal/trust"
	id "trustgate/pkg/domain"
	audit "trustgate/pkg/platform/audit"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

// ProfileStore is the persistence port for verification profiles.
// FindByUserID returns sentinel.ErrNotFound for users without a profile.
type ProfileStore interface {
	FindByUserID(ctx context.Context, userID id.UserID) (*trust.VerificationProfile, error)
	Save(ctx context.Context, profile *trust.VerificationProfile) error
	UpdateTrustScore(ctx context.Context, userID id.UserID, score float64, now time.Time) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
