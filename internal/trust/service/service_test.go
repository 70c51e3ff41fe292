package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"trustgate/internal/trust"
	"trustgate/internal/trust/adapters"
	"trustgate/internal/trust/service/mocks"
	"trustgate/internal/trust/store/profile"
	"trustgate/internal/verification/models"
	verificationservice "trustgate/internal/verification/service"
	"trustgate/internal/verification/store/document"
	id "trustgate/pkg/domain"
	dErrors "trustgate/pkg/domain-errors"
	audit "trustgate/pkg/platform/audit"
	auditmemory "trustgate/pkg/platform/audit/store/memory"
	"trustgate/pkg/requestcontext"
)

type TrustServiceSuite struct {
	suite.Suite
	ctx       context.Context
	now       time.Time
	logger    *slog.Logger
	profiles  *profile.InMemoryStore
	documents *document.InMemoryStore
	auditLog  *auditmemory.InMemoryStore
	service   *Service
	user      id.UserID
	admin     id.UserID
}

func TestTrustServiceSuite(t *testing.T) {
	suite.Run(t, new(TrustServiceSuite))
}

func (s *TrustServiceSuite) SetupTest() {
	s.now = time.Date(2026, 4, 2, 15, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.profiles = profile.NewInMemoryStore()
	s.documents = document.NewInMemoryStore()
	s.auditLog = auditmemory.NewInMemoryStore()
	s.service = New(s.profiles, adapters.NewVerificationAdapter(s.documents),
		WithLogger(s.logger),
		WithAuditPublisher(audit.NewPublisher(s.auditLog)),
	)
	s.user = id.UserID(uuid.New())
	s.admin = id.UserID(uuid.New())
}

func (s *TrustServiceSuite) saveCompleteProfile() {
	s.Require().NoError(s.profiles.Save(s.ctx, &trust.VerificationProfile{
		UserID:        s.user,
		EmailVerified: true,
		PhoneVerified: true,
		FirstName:     "Camille",
		LastName:      "Martin",
		Phone:         "+33600000000",
		AvatarURL:     "avatars/camille.jpg",
		TermsAccepted: true,
	}))
}

func (s *TrustServiceSuite) approvedDoc(docType models.DocumentType, subType string) {
	doc, err := models.NewDocument(id.NewDocumentID(), s.user, docType, subType, s.now)
	s.Require().NoError(err)
	doc.ApplyApproval(s.admin, s.now)
	s.Require().NoError(s.documents.Create(s.ctx, doc))
}

func (s *TrustServiceSuite) TestCalculateTrustScore() {
	s.Run("unknown user scores zero", func() {
		score, err := s.service.CalculateTrustScore(s.ctx, id.UserID(uuid.New()))
		s.Require().NoError(err)
		s.Zero(score)
	})

	s.Run("complete profile without documents", func() {
		s.saveCompleteProfile()
		score, err := s.service.CalculateTrustScore(s.ctx, s.user)
		s.Require().NoError(err)
		s.Equal(2.5, score)

		stored, err := s.profiles.FindByUserID(s.ctx, s.user)
		s.Require().NoError(err)
		s.Zero(stored.TrustScore, "calculation must not persist")
	})

	s.Run("nil user is rejected", func() {
		_, err := s.service.CalculateTrustScore(s.ctx, id.UserID{})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *TrustServiceSuite) TestUpdateUserTrustScore() {
	s.saveCompleteProfile()

	score, err := s.service.UpdateUserTrustScore(s.ctx, s.user)
	s.Require().NoError(err)
	s.Equal(2.5, score)

	stored, err := s.profiles.FindByUserID(s.ctx, s.user)
	s.Require().NoError(err)
	s.Equal(2.5, stored.TrustScore)
	s.Equal(s.now, stored.UpdatedAt)

	s.approvedDoc(models.DocumentTypeIdentity, models.SubTypeIDCard)
	score, err = s.service.UpdateUserTrustScore(s.ctx, s.user)
	s.Require().NoError(err)
	s.Equal(2.5, score, "id card without selfie leaves identity incomplete")

	s.approvedDoc(models.DocumentTypeSelfie, models.SubTypeSelfie)
	score, err = s.service.UpdateUserTrustScore(s.ctx, s.user)
	s.Require().NoError(err)
	s.Equal(4.0, score)

	entries, err := s.auditLog.ListByUser(s.ctx, s.user)
	s.Require().NoError(err)
	var decisions []string
	for _, e := range entries {
		s.Equal(string(audit.EventTrustScoreUpdated), e.Action)
		decisions = append(decisions, e.Decision)
	}
	s.ElementsMatch([]string{"2.5", "4.0"}, decisions, "unchanged recomputes are not audited")
}

func (s *TrustServiceSuite) TestConcurrentUpdatesConverge() {
	s.saveCompleteProfile()
	s.approvedDoc(models.DocumentTypeFinancial, "tax_notice")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.UpdateUserTrustScore(s.ctx, s.user)
			s.NoError(err)
		}()
	}
	wg.Wait()

	stored, err := s.profiles.FindByUserID(s.ctx, s.user)
	s.Require().NoError(err)
	s.Equal(3.5, stored.TrustScore)
}

func (s *TrustServiceSuite) TestStoreFailures() {
	ctrl := gomock.NewController(s.T())
	store := mocks.NewMockProfileStore(ctrl)
	svc := New(store, adapters.NewVerificationAdapter(s.documents), WithLogger(s.logger))

	s.Run("profile lookup failure is internal", func() {
		store.EXPECT().FindByUserID(gomock.Any(), s.user).Return(nil, errors.New("connection reset"))
		_, err := svc.UpdateUserTrustScore(s.ctx, s.user)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("persist failure is internal", func() {
		store.EXPECT().FindByUserID(gomock.Any(), s.user).Return(&trust.VerificationProfile{UserID: s.user, EmailVerified: true}, nil)
		store.EXPECT().UpdateTrustScore(gomock.Any(), s.user, 0.5, s.now).Return(errors.New("read only"))
		_, err := svc.UpdateUserTrustScore(s.ctx, s.user)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *TrustServiceSuite) TestAuditFailureDoesNotFailUpdate() {
	ctrl := gomock.NewController(s.T())
	publisher := mocks.NewMockAuditPublisher(ctrl)
	svc := New(s.profiles, adapters.NewVerificationAdapter(s.documents),
		WithLogger(s.logger), WithAuditPublisher(publisher))
	s.saveCompleteProfile()

	publisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("audit down"))
	score, err := svc.UpdateUserTrustScore(s.ctx, s.user)
	s.Require().NoError(err)
	s.Equal(2.5, score)
}

func (s *TrustServiceSuite) TestGetTrustScoreDetails() {
	s.Require().NoError(s.profiles.Save(s.ctx, &trust.VerificationProfile{UserID: s.user, EmailVerified: true}))

	details, err := s.service.GetTrustScoreDetails(s.ctx, s.user)
	s.Require().NoError(err)
	s.Equal(0.5, details.CurrentScore)
	s.Equal(10, details.Percentage)
	s.Require().Len(details.NextSteps, 3)
	s.Equal(trust.FactorPersonalInfo, details.NextSteps[0].Factor)
	s.Equal(trust.FactorTerms, details.NextSteps[1].Factor)
	s.Equal(trust.FactorAvatar, details.NextSteps[2].Factor)
	s.Equal(trust.LevelVeryLow, details.Level.Level)
}

func (s *TrustServiceSuite) TestGetTrustLevel() {
	level, err := s.service.GetTrustLevel(2.5)
	s.Require().NoError(err)
	s.Equal(trust.LevelMedium, level.Level)

	for _, bad := range []float64{-0.1, 5.1} {
		_, err := s.service.GetTrustLevel(bad)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput), "score %v", bad)
	}
}

func (s *TrustServiceSuite) TestIsEmailVerified() {
	ok, err := s.service.IsEmailVerified(s.ctx, s.user)
	s.Require().NoError(err)
	s.False(ok)

	s.saveCompleteProfile()
	ok, err = s.service.IsEmailVerified(s.ctx, s.user)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *TrustServiceSuite) TestUpdateProfile() {
	yes := true
	avatar := "avatars/x.png"
	p, err := s.service.UpdateProfile(s.ctx, s.user, trust.ProfileUpdate{EmailVerified: &yes, AvatarURL: &avatar})
	s.Require().NoError(err)
	s.Equal(1.0, p.TrustScore)
	s.Require().NotNil(p.EmailVerifiedAt)
	s.Equal(s.now, *p.EmailVerifiedAt)

	stored, err := s.profiles.FindByUserID(s.ctx, s.user)
	s.Require().NoError(err)
	s.Equal(1.0, stored.TrustScore)
	s.True(stored.EmailVerified)
}

// The document validator and the trust calculator wired together the way the
// server does it.
func (s *TrustServiceSuite) TestDocumentApprovalRescoresOwner() {
	s.saveCompleteProfile()
	validator := verificationservice.New(s.documents,
		verificationservice.WithLogger(s.logger),
		verificationservice.WithTrustScorer(s.service),
	)

	idCard, err := validator.SubmitDocument(s.ctx, s.user, models.SubmitDocumentRequest{Type: "identity", SubType: "id_card"})
	s.Require().NoError(err)
	selfie, err := validator.SubmitDocument(s.ctx, s.user, models.SubmitDocumentRequest{Type: "selfie", SubType: "selfie"})
	s.Require().NoError(err)

	result, err := validator.Validate(s.ctx, idCard.ID, s.admin, true, "")
	s.Require().NoError(err)
	s.Require().NotNil(result.TrustScore)
	s.Equal(2.5, *result.TrustScore)

	result, err = validator.Validate(s.ctx, selfie.ID, s.admin, true, "")
	s.Require().NoError(err)
	s.Require().NotNil(result.TrustScore)
	s.Equal(4.0, *result.TrustScore)

	stored, err := s.profiles.FindByUserID(s.ctx, s.user)
	s.Require().NoError(err)
	s.Equal(4.0, stored.TrustScore)
}
