// Package document persists verification document metadata.
package document

import (
	"context"
	"sort"
	"sync"

	"trustgate/internal/verification/models"
	id "trustgate/pkg/domain"
	"trustgate/pkg/platform/sentinel"
)

// InMemoryStore keeps documents in a map guarded by one RWMutex. Execute holds
// the write lock across validate and mutate, which is what makes a decision
// happen at most once.
type InMemoryStore struct {
	mu   sync.RWMutex
	docs map[id.DocumentID]*models.Document
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{docs: make(map[id.DocumentID]*models.Document)}
}

func (s *InMemoryStore) Create(_ context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[doc.ID]; exists {
		return sentinel.ErrConflict
	}
	s.docs[doc.ID] = clone(doc)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, docID id.DocumentID) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[docID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(doc), nil
}

// ListByOwner returns the owner's documents, oldest first.
func (s *InMemoryStore) ListByOwner(_ context.Context, owner id.UserID) ([]*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Document
	for _, d := range s.docs {
		if d.OwnerID == owner {
			out = append(out, clone(d))
		}
	}
	sortByCreated(out)
	return out, nil
}

// ListPending returns up to limit pending documents, oldest first.
func (s *InMemoryStore) ListPending(_ context.Context, limit int) ([]*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Document
	for _, d := range s.docs {
		if d.IsPending() {
			out = append(out, clone(d))
		}
	}
	sortByCreated(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *InMemoryStore) CountByTypeAndStatus(_ context.Context) ([]models.StatusCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	type key struct {
		t  models.DocumentType
		st models.DocumentStatus
	}
	counts := make(map[key]int)
	for _, d := range s.docs {
		counts[key{d.Type, d.Status}]++
	}
	out := make([]models.StatusCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, models.StatusCount{Type: k.t, Status: k.st, Count: n})
	}
	return out, nil
}

// Execute runs validate then mutate on a working copy under the write lock.
// The stored document is replaced only when validate succeeds.
func (s *InMemoryStore) Execute(_ context.Context, docID id.DocumentID, validate func(*models.Document) error, mutate func(*models.Document)) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.docs[docID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	working := clone(current)
	if err := validate(working); err != nil {
		return nil, err
	}
	mutate(working)
	s.docs[docID] = working
	return clone(working), nil
}

func clone(d *models.Document) *models.Document {
	c := *d
	if d.ValidatedBy != nil {
		by := *d.ValidatedBy
		c.ValidatedBy = &by
	}
	if d.ValidatedAt != nil {
		at := *d.ValidatedAt
		c.ValidatedAt = &at
	}
	return &c
}

func sortByCreated(docs []*models.Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].ID.String() < docs[j].ID.String()
		}
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})
}
