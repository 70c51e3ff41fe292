package message

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"trustgate/internal/messaging/models"
	id "trustgate/pkg/domain"
	"trustgate/pkg/platform/sentinel"
)

type MessageStoreSuite struct {
	suite.Suite
	store     *InMemoryStore
	ctx       context.Context
	now       time.Time
	sender    id.UserID
	recipient id.UserID
}

func TestMessageStoreSuite(t *testing.T) {
	suite.Run(t, new(MessageStoreSuite))
}

func (s *MessageStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
	s.now = time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	s.sender = id.UserID(uuid.New())
	s.recipient = id.UserID(uuid.New())
}

func (s *MessageStoreSuite) create(withProperty bool, offset time.Duration) *models.Message {
	var property *id.PropertyID
	if withProperty {
		p := id.PropertyID(uuid.New())
		property = &p
	}
	msg, err := models.NewMessage(id.NewMessageID(), s.sender, s.recipient, "Is it still available?", property, s.now.Add(offset))
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(s.ctx, msg))
	return msg
}

func (s *MessageStoreSuite) TestCreateAndFind() {
	msg := s.create(true, 0)

	found, err := s.store.FindByID(s.ctx, msg.ID)
	s.Require().NoError(err)
	s.Equal(models.MessageStatusPending, found.Status)
	s.Equal(*msg.PropertyID, *found.PropertyID)

	s.ErrorIs(s.store.Create(s.ctx, msg), sentinel.ErrConflict)

	_, err = s.store.FindByID(s.ctx, id.NewMessageID())
	s.ErrorIs(err, sentinel.ErrNotFound)

	*found.PropertyID = id.PropertyID(uuid.New())
	again, err := s.store.FindByID(s.ctx, msg.ID)
	s.Require().NoError(err)
	s.Equal(*msg.PropertyID, *again.PropertyID)
}

func (s *MessageStoreSuite) TestListings() {
	second := s.create(true, time.Minute)
	first := s.create(true, 0)
	direct := s.create(false, 2*time.Minute)
	older := s.create(false, -time.Hour)

	pending, err := s.store.ListPending(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(pending, 2)
	s.Equal(first.ID, pending[0].ID)
	s.Equal(second.ID, pending[1].ID)

	limited, err := s.store.ListPending(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(limited, 1)

	inbox, err := s.store.ListInbox(s.ctx, s.recipient, 0)
	s.Require().NoError(err)
	s.Require().Len(inbox, 2, "pending messages are not delivered")
	s.Equal(direct.ID, inbox[0].ID)
	s.Equal(older.ID, inbox[1].ID)

	empty, err := s.store.ListInbox(s.ctx, s.sender, 0)
	s.Require().NoError(err)
	s.Empty(empty)
}

func (s *MessageStoreSuite) TestExecute() {
	msg := s.create(true, 0)
	moderator := id.UserID(uuid.New())

	s.Run("failed validation writes nothing", func() {
		_, err := s.store.Execute(s.ctx, msg.ID,
			func(*models.Message) error { return errors.New("no") },
			func(m *models.Message) { m.Status = models.MessageStatusRejected },
		)
		s.Require().Error(err)
		found, _ := s.store.FindByID(s.ctx, msg.ID)
		s.True(found.IsPending())
	})

	s.Run("applies mutation", func() {
		updated, err := s.store.Execute(s.ctx, msg.ID,
			func(m *models.Message) error { return m.CanModerate() },
			func(m *models.Message) { m.ApplyApproval(moderator, nil, s.now) },
		)
		s.Require().NoError(err)
		s.Equal(models.MessageStatusApproved, updated.Status)
	})

	s.Run("unknown id", func() {
		_, err := s.store.Execute(s.ctx, id.NewMessageID(),
			func(*models.Message) error { return nil }, func(*models.Message) {})
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *MessageStoreSuite) TestConcurrentModerationDecidesOnce() {
	msg := s.create(true, 0)
	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.store.Execute(s.ctx, msg.ID,
				func(m *models.Message) error { return m.CanModerate() },
				func(m *models.Message) {
					if i%2 == 0 {
						m.ApplyApproval(id.UserID(uuid.New()), nil, s.now)
					} else {
						m.ApplyRejection(id.UserID(uuid.New()), "spam", s.now)
					}
				},
			)
			if err == nil {
				wins.Add(1)
			}
		}(i)
	}
	wg.Wait()
	s.Equal(int32(1), wins.Load())
}

func (s *MessageStoreSuite) TestMarkRead() {
	direct := s.create(false, 0)
	pending := s.create(true, 0)

	n, err := s.store.MarkRead(s.ctx, []id.MessageID{direct.ID, pending.ID, id.NewMessageID()}, s.recipient, s.now)
	s.Require().NoError(err)
	s.Equal(1, n)

	n, err = s.store.MarkRead(s.ctx, []id.MessageID{direct.ID}, s.recipient, s.now.Add(time.Hour))
	s.Require().NoError(err)
	s.Zero(n, "already read")

	found, _ := s.store.FindByID(s.ctx, direct.ID)
	s.Equal(s.now, *found.ReadAt)

	other := s.create(false, 0)
	n, err = s.store.MarkRead(s.ctx, []id.MessageID{other.ID}, s.sender, s.now)
	s.Require().NoError(err)
	s.Zero(n, "only the recipient can mark read")
}
