// Package profile persists the verification profile a trust score is read
// from and written back to.
package profile

import (
	"context"
	"sync"
	"time"

	"trustgate/internal/trust"
	id "trustgate/pkg/domain"
	"trustgate/pkg/platform/sentinel"
)

// InMemoryStore keeps profiles keyed by user.
type InMemoryStore struct {
	mu       sync.RWMutex
	profiles map[id.UserID]*trust.VerificationProfile
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{profiles: make(map[id.UserID]*trust.VerificationProfile)}
}

func (s *InMemoryStore) FindByUserID(_ context.Context, userID id.UserID) (*trust.VerificationProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(p), nil
}

// Save inserts or replaces the whole profile.
func (s *InMemoryStore) Save(_ context.Context, p *trust.VerificationProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.UserID] = clone(p)
	return nil
}

// UpdateTrustScore overwrites the score only. A user without a profile gets
// an empty one carrying the score.
func (s *InMemoryStore) UpdateTrustScore(_ context.Context, userID id.UserID, score float64, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		p = trust.EmptyProfile(userID)
		s.profiles[userID] = p
	}
	p.TrustScore = score
	p.UpdatedAt = now
	return nil
}

func clone(p *trust.VerificationProfile) *trust.VerificationProfile {
	cp := *p
	if p.EmailVerifiedAt != nil {
		t := *p.EmailVerifiedAt
		cp.EmailVerifiedAt = &t
	}
	return &cp
}
