// Package message persists messages and their moderation state.
package message

import (
	"context"
	"sort"
	"sync"
	"time"

	"trustgate/internal/messaging/models"
	id "trustgate/pkg/domain"
	"trustgate/pkg/platform/sentinel"
)

// InMemoryStore keeps messages in a map guarded by one RWMutex. Execute and
// MarkRead hold the write lock for the whole read-check-write.
type InMemoryStore struct {
	mu       sync.RWMutex
	messages map[id.MessageID]*models.Message
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{messages: make(map[id.MessageID]*models.Message)}
}

func (s *InMemoryStore) Create(_ context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.messages[msg.ID]; exists {
		return sentinel.ErrConflict
	}
	s.messages[msg.ID] = clone(msg)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, msgID id.MessageID) (*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.messages[msgID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(m), nil
}

// ListPending returns up to limit messages awaiting moderation, oldest first.
func (s *InMemoryStore) ListPending(_ context.Context, limit int) ([]*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Message
	for _, m := range s.messages {
		if m.IsPending() {
			out = append(out, clone(m))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return before(out[i], out[j]) })
	return truncate(out, limit), nil
}

// ListInbox returns delivered messages addressed to recipient, newest first.
func (s *InMemoryStore) ListInbox(_ context.Context, recipient id.UserID, limit int) ([]*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Message
	for _, m := range s.messages {
		if m.RecipientID == recipient && m.IsDelivered() {
			out = append(out, clone(m))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return before(out[j], out[i]) })
	return truncate(out, limit), nil
}

// Execute runs validate then mutate on a working copy under the write lock.
func (s *InMemoryStore) Execute(_ context.Context, msgID id.MessageID, validate func(*models.Message) error, mutate func(*models.Message)) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.messages[msgID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	working := clone(current)
	if err := validate(working); err != nil {
		return nil, err
	}
	mutate(working)
	s.messages[msgID] = working
	return clone(working), nil
}

// MarkRead stamps ReadAt on every listed message that is delivered, unread and
// addressed to recipient. It returns how many changed.
func (s *InMemoryStore) MarkRead(_ context.Context, ids []id.MessageID, recipient id.UserID, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, msgID := range ids {
		m, ok := s.messages[msgID]
		if !ok || m.RecipientID != recipient || !m.IsDelivered() {
			continue
		}
		if m.MarkRead(now) {
			n++
		}
	}
	return n, nil
}

func before(a, b *models.Message) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID.String() < b.ID.String()
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

func truncate(msgs []*models.Message, limit int) []*models.Message {
	if limit > 0 && len(msgs) > limit {
		return msgs[:limit]
	}
	return msgs
}

func clone(m *models.Message) *models.Message {
	c := *m
	if m.PropertyID != nil {
		p := *m.PropertyID
		c.PropertyID = &p
	}
	if m.OriginalContent != nil {
		o := *m.OriginalContent
		c.OriginalContent = &o
	}
	if m.ModeratedBy != nil {
		by := *m.ModeratedBy
		c.ModeratedBy = &by
	}
	if m.ModeratedAt != nil {
		at := *m.ModeratedAt
		c.ModeratedAt = &at
	}
	if m.ReadAt != nil {
		at := *m.ReadAt
		c.ReadAt = &at
	}
	return &c
}
