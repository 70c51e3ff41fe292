package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"trustgate/internal/trust"
	id "trustgate/pkg/domain"
	"trustgate/pkg/platform/sentinel"
	txcontext "trustgate/pkg/platform/tx"
)

// PostgresStore persists profiles in the verification_profiles table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) FindByUserID(ctx context.Context, userID id.UserID) (*trust.VerificationProfile, error) {
	var (
		p          trust.VerificationProfile
		uid        uuid.UUID
		verifiedAt sql.NullTime
	)
	err := s.execer(ctx).QueryRowContext(ctx, `
		SELECT user_id, email_verified, email_verified_at, phone_verified, first_name, last_name,
		       phone, avatar_url, terms_accepted, trust_score, updated_at
		FROM verification_profiles
		WHERE user_id = $1
	`, uuid.UUID(userID)).Scan(&uid, &p.EmailVerified, &verifiedAt, &p.PhoneVerified, &p.FirstName,
		&p.LastName, &p.Phone, &p.AvatarURL, &p.TermsAccepted, &p.TrustScore, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find verification profile: %w", err)
	}
	p.UserID = id.UserID(uid)
	if verifiedAt.Valid {
		t := verifiedAt.Time
		p.EmailVerifiedAt = &t
	}
	return &p, nil
}

func (s *PostgresStore) Save(ctx context.Context, p *trust.VerificationProfile) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO verification_profiles (user_id, email_verified, email_verified_at, phone_verified,
			first_name, last_name, phone, avatar_url, terms_accepted, trust_score, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			email_verified = EXCLUDED.email_verified,
			email_verified_at = EXCLUDED.email_verified_at,
			phone_verified = EXCLUDED.phone_verified,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			phone = EXCLUDED.phone,
			avatar_url = EXCLUDED.avatar_url,
			terms_accepted = EXCLUDED.terms_accepted,
			trust_score = EXCLUDED.trust_score,
			updated_at = EXCLUDED.updated_at
	`,
		uuid.UUID(p.UserID),
		p.EmailVerified,
		p.EmailVerifiedAt,
		p.PhoneVerified,
		p.FirstName,
		p.LastName,
		p.Phone,
		p.AvatarURL,
		p.TermsAccepted,
		p.TrustScore,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save verification profile: %w", err)
	}
	return nil
}

// UpdateTrustScore is a blind write: the score is a full recomputation, so
// the last committed value wins.
func (s *PostgresStore) UpdateTrustScore(ctx context.Context, userID id.UserID, score float64, now time.Time) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO verification_profiles (user_id, trust_score, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET trust_score = EXCLUDED.trust_score, updated_at = EXCLUDED.updated_at
	`, uuid.UUID(userID), score, now)
	if err != nil {
		return fmt.Errorf("update trust score: %w", err)
	}
	return nil
}
