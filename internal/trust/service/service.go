// Package service loads verification facts, scores them and persists the
// result.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"trustgate/internal/trust"
	trustmetrics "trustgate/internal/trust/metrics"
	"trustgate/internal/trust/ports"
	id "trustgate/pkg/domain"
	dErrors "trustgate/pkg/domain-errors"
	audit "trustgate/pkg/platform/audit"
	"trustgate/pkg/platform/sentinel"
	"trustgate/pkg/requestcontext"
)

const factTimeout = 3 * time.Second

var tracer = otel.Tracer("trustgate/trust")

type Service struct {
	profiles       ProfileStore
	requirements   ports.RequirementsPort
	auditPublisher AuditPublisher
	metrics        *trustmetrics.Metrics
	logger         *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *trustmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func New(profiles ProfileStore, requirements ports.RequirementsPort, opts ...Option) *Service {
	s := &Service{profiles: profiles, requirements: requirements, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// facts is everything a score is computed from.
type facts struct {
	profile   *trust.VerificationProfile
	documents trust.DocumentFacts
}

// gatherFacts loads the profile and the document facts in parallel. A user
// with no stored profile scores as an empty profile.
func (s *Service) gatherFacts(ctx context.Context, userID id.UserID) (*facts, error) {
	ctx, cancel := context.WithTimeout(ctx, factTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	out := &facts{}

	g.Go(func() error {
		start := time.Now()
		p, err := s.profiles.FindByUserID(ctx, userID)
		s.metrics.ObserveFactLatency("profile", time.Since(start))
		if errors.Is(err, sentinel.ErrNotFound) {
			out.profile = trust.EmptyProfile(userID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("load verification profile: %w", err)
		}
		out.profile = p
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		docs, err := s.requirements.DocumentFacts(ctx, userID)
		s.metrics.ObserveFactLatency("documents", time.Since(start))
		if err != nil {
			return fmt.Errorf("load document facts: %w", err)
		}
		out.documents = docs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// CalculateTrustScore computes the user's current score without persisting it.
func (s *Service) CalculateTrustScore(ctx context.Context, userID id.UserID) (float64, error) {
	ctx, span := tracer.Start(ctx, "trust.CalculateTrustScore")
	defer span.End()

	if userID.IsNil() {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "user_id is required")
	}
	f, err := s.gatherFacts(ctx, userID)
	if err != nil {
		return 0, recordErr(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load trust facts"))
	}
	return trust.Calculate(f.profile, f.documents), nil
}

// UpdateUserTrustScore recomputes the score from scratch and stores it.
// Concurrent calls are safe: each writes a full recomputation and the last
// committed write wins.
func (s *Service) UpdateUserTrustScore(ctx context.Context, userID id.UserID) (float64, error) {
	ctx, span := tracer.Start(ctx, "trust.UpdateUserTrustScore",
		trace.WithAttributes(attribute.String("user_id", userID.String())))
	defer span.End()

	if userID.IsNil() {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "user_id is required")
	}
	f, err := s.gatherFacts(ctx, userID)
	if err != nil {
		return 0, recordErr(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load trust facts"))
	}

	score := trust.Calculate(f.profile, f.documents)
	if err := s.profiles.UpdateTrustScore(ctx, userID, score, requestcontext.Now(ctx)); err != nil {
		return 0, recordErr(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist trust score"))
	}
	s.recordScoreChange(ctx, userID, f.profile.TrustScore, score)
	span.SetAttributes(attribute.Float64("trust_score", score))
	return score, nil
}

// GetTrustScoreDetails returns the per-factor breakdown and next steps.
func (s *Service) GetTrustScoreDetails(ctx context.Context, userID id.UserID) (*trust.ScoreDetails, error) {
	ctx, span := tracer.Start(ctx, "trust.GetTrustScoreDetails")
	defer span.End()

	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "user_id is required")
	}
	f, err := s.gatherFacts(ctx, userID)
	if err != nil {
		return nil, recordErr(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load trust facts"))
	}
	return trust.Details(f.profile, f.documents), nil
}

// GetTrustLevel buckets a score. Scores outside [0, 5] are rejected.
func (s *Service) GetTrustLevel(score float64) (trust.Level, error) {
	if score < 0 || score > trust.MaxScore {
		return trust.Level{}, dErrors.NewField(dErrors.CodeInvalidInput, "score", "score must be between 0 and 5")
	}
	return trust.LevelFor(score), nil
}

// IsEmailVerified reports the email flag. Users without a profile are
// unverified.
func (s *Service) IsEmailVerified(ctx context.Context, userID id.UserID) (bool, error) {
	p, err := s.profiles.FindByUserID(ctx, userID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verification profile")
	}
	return p.EmailVerified, nil
}

// UpdateProfile records verification flags reported by onboarding and
// rescores the user in the same step.
func (s *Service) UpdateProfile(ctx context.Context, userID id.UserID, update trust.ProfileUpdate) (*trust.VerificationProfile, error) {
	ctx, span := tracer.Start(ctx, "trust.UpdateProfile")
	defer span.End()

	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "user_id is required")
	}
	f, err := s.gatherFacts(ctx, userID)
	if err != nil {
		return nil, recordErr(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load trust facts"))
	}

	p := f.profile
	previous := p.TrustScore
	update.Apply(p, requestcontext.Now(ctx))
	p.TrustScore = trust.Calculate(p, f.documents)
	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, recordErr(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save verification profile"))
	}
	s.recordScoreChange(ctx, userID, previous, p.TrustScore)
	return p, nil
}

func (s *Service) recordScoreChange(ctx context.Context, userID id.UserID, previous, score float64) {
	changed := previous != score
	s.metrics.RecordUpdate(score, changed)
	if !changed {
		return
	}
	s.logger.InfoContext(ctx, "trust score updated",
		"user_id", userID.String(),
		"previous", previous,
		"score", score,
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.auditPublisher == nil {
		return
	}
	var actor string
	if by := requestcontext.UserID(ctx); !by.IsNil() {
		actor = by.String()
	}
	err := s.auditPublisher.Emit(ctx, audit.Event{
		UserID:   userID,
		ActorID:  actor,
		Subject:  userID.String(),
		Action:   string(audit.EventTrustScoreUpdated),
		Decision: fmt.Sprintf("%.1f", score),
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", audit.EventTrustScoreUpdated,
			"user_id", userID.String(),
			"error", err,
		)
	}
}

func recordErr(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	return err
}
