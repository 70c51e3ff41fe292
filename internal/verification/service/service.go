// Package service implements the document validator: registering uploaded
// documents, the decide-once approve/reject transition and the requirement
// checks that feed the trust score.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"trustgate/internal/notification"
	verificationmetrics "trustgate/internal/verification/metrics"
	"trustgate/internal/verification/models"
	id "trustgate/pkg/domain"
	dErrors "trustgate/pkg/domain-errors"
	audit "trustgate/pkg/platform/audit"
	"trustgate/pkg/platform/sentinel"
	"trustgate/pkg/requestcontext"
)

const (
	defaultPendingLimit = 50
	maxPendingLimit     = 200
)

var tracer = otel.Tracer("trustgate/verification")

// Service orchestrates the document verification lifecycle.
type Service struct {
	documents      DocumentStore
	trustScorer    TrustScorer
	notifier       Notifier
	auditPublisher AuditPublisher
	tx             TxRunner
	metrics        *verificationmetrics.Metrics
	logger         *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *verificationmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithTrustScorer enables trust score recomputation after each decision.
func WithTrustScorer(scorer TrustScorer) Option {
	return func(s *Service) {
		s.trustScorer = scorer
	}
}

// WithTxRunner makes the decision and its audit record one unit of work. An
// audit write failure then fails the decision instead of being logged.
func WithTxRunner(tx TxRunner) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

func New(documents DocumentStore, opts ...Option) *Service {
	s := &Service{documents: documents, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidationResult is what a successful decision produced. TrustScore is nil
// when the recomputation failed; the decision itself still stands.
type ValidationResult struct {
	Document   *models.Document     `json:"document"`
	TrustScore *float64             `json:"trust_score,omitempty"`
	Events     []notification.Event `json:"-"`
}

// SubmitDocument registers metadata for an uploaded file in the pending state
// and tells the admins there is something to review.
func (s *Service) SubmitDocument(ctx context.Context, owner id.UserID, req models.SubmitDocumentRequest) (*models.Document, error) {
	ctx, span := tracer.Start(ctx, "verification.SubmitDocument")
	defer span.End()

	if owner.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	req.Normalize()
	docType, err := models.ParseDocumentType(req.Type)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	doc, err := models.NewDocument(id.NewDocumentID(), owner, docType, req.SubType, now)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		return nil, recordErr(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register document"))
	}

	s.metrics.IncrementSubmitted(doc.Type.String())
	s.emitAudit(ctx, audit.Event{
		UserID:  owner,
		ActorID: owner.String(),
		Subject: doc.ID.String(),
		Action:  string(audit.EventDocumentSubmitted),
	})
	s.dispatch(ctx, notification.ToAdmins(
		notification.EventDocumentSubmitted,
		"New document to validate",
		fmt.Sprintf("A %s document is waiting for validation.", doc.Type),
		map[string]any{
			"document_id":   doc.ID.String(),
			"document_type": doc.Type.String(),
			"sub_type":      doc.SubType,
			"owner_id":      owner.String(),
		},
		now,
	))
	return doc, nil
}

// Validate decides a pending document exactly once.
//
// The store's Execute method holds the lock (mutex or FOR UPDATE) during both
// validation and mutation, so concurrent validators cannot both succeed. The
// trust score recompute and notifications run after the decision commits and
// never undo it.
func (s *Service) Validate(ctx context.Context, docID id.DocumentID, validatorID id.UserID, approve bool, reason string) (*ValidationResult, error) {
	ctx, span := tracer.Start(ctx, "verification.Validate", trace.WithAttributes(
		attribute.String("document_id", docID.String()),
		attribute.Bool("approve", approve),
	))
	defer span.End()

	reason = strings.TrimSpace(reason)
	if docID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "document_id is required")
	}
	if validatorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	now := requestcontext.Now(ctx)
	var doc *models.Document
	err := s.inTx(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.documents.Execute(ctx, docID,
			func(d *models.Document) error {
				// a decided document is a conflict whatever the request says
				if err := d.CanValidate(); err != nil {
					return err
				}
				if !approve && reason == "" {
					return dErrors.NewField(dErrors.CodeValidation, "reason", "rejection reason is required")
				}
				return nil
			},
			func(d *models.Document) {
				if approve {
					d.ApplyApproval(validatorID, now)
				} else {
					d.ApplyRejection(validatorID, reason, now)
				}
			},
		)
		if err != nil || s.tx == nil || s.auditPublisher == nil {
			return err
		}
		return s.auditPublisher.Emit(ctx, decisionAudit(doc, validatorID))
	})
	if err != nil {
		err = s.wrapDocumentErr(err)
		if dErrors.HasCode(err, dErrors.CodeInvalidState) {
			s.metrics.IncrementConflict()
		}
		return nil, recordErr(span, err)
	}

	s.metrics.IncrementDecision(doc.Type.String(), doc.Status.String())
	s.logger.InfoContext(ctx, "document validated",
		"document_id", doc.ID.String(),
		"owner_id", doc.OwnerID.String(),
		"status", doc.Status.String(),
		"validator_id", validatorID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)

	result := &ValidationResult{Document: doc}
	if s.trustScorer != nil {
		score, err := s.trustScorer.UpdateUserTrustScore(ctx, doc.OwnerID)
		if err != nil {
			s.logger.ErrorContext(ctx, "trust score recompute failed after validation",
				"document_id", doc.ID.String(),
				"owner_id", doc.OwnerID.String(),
				"error", err,
			)
		} else {
			result.TrustScore = &score
		}
	}

	if s.tx == nil {
		s.emitAudit(ctx, decisionAudit(doc, validatorID))
	}
	result.Events = []notification.Event{decisionEvent(doc, result.TrustScore, now)}
	s.dispatch(ctx, result.Events...)
	return result, nil
}

// CheckRequiredDocuments reports which document requirements the user meets.
func (s *Service) CheckRequiredDocuments(ctx context.Context, userID id.UserID) (*models.RequiredDocuments, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "user_id is required")
	}
	docs, err := s.documents.ListByOwner(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load documents")
	}
	return models.EvaluateRequirements(docs), nil
}

func (s *Service) GetValidationStats(ctx context.Context) (*models.ValidationStats, error) {
	counts, err := s.documents.CountByTypeAndStatus(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count documents")
	}
	return models.BuildValidationStats(counts), nil
}

// ListPending returns the validation queue, oldest first.
func (s *Service) ListPending(ctx context.Context, limit int) ([]*models.Document, error) {
	if limit <= 0 {
		limit = defaultPendingLimit
	}
	if limit > maxPendingLimit {
		limit = maxPendingLimit
	}
	docs, err := s.documents.ListPending(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list pending documents")
	}
	return docs, nil
}

func (s *Service) ListByOwner(ctx context.Context, owner id.UserID) ([]*models.Document, error) {
	docs, err := s.documents.ListByOwner(ctx, owner)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load documents")
	}
	return docs, nil
}

func (s *Service) wrapDocumentErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "document not found")
	case errors.Is(err, sentinel.ErrInvalidState):
		return dErrors.New(dErrors.CodeInvalidState, "document has already been validated")
	case dErrors.HasCode(err, dErrors.CodeInvalidState), dErrors.HasCode(err, dErrors.CodeValidation):
		return err
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to validate document")
	}
}

func (s *Service) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx.RunInTx(ctx, fn)
}

func (s *Service) dispatch(ctx context.Context, events ...notification.Event) {
	if s.notifier != nil {
		s.notifier.Dispatch(ctx, events...)
	}
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"subject", event.Subject,
			"error", err,
		)
	}
}

func decisionAudit(doc *models.Document, validator id.UserID) audit.Event {
	action := audit.EventDocumentApproved
	if doc.Status == models.DocumentStatusRejected {
		action = audit.EventDocumentRejected
	}
	return audit.Event{
		UserID:   doc.OwnerID,
		ActorID:  validator.String(),
		Subject:  doc.ID.String(),
		Action:   string(action),
		Decision: doc.Status.String(),
		Reason:   doc.RejectionReason,
	}
}

func decisionEvent(doc *models.Document, score *float64, now time.Time) notification.Event {
	data := map[string]any{
		"document_id":   doc.ID.String(),
		"document_type": doc.Type.String(),
		"sub_type":      doc.SubType,
	}
	if score != nil {
		data["trust_score"] = *score
	}
	if doc.Status == models.DocumentStatusRejected {
		data["reason"] = doc.RejectionReason
		return notification.ToUser(doc.OwnerID, notification.EventDocumentRejected,
			"Document rejected",
			fmt.Sprintf("Your %s document was rejected: %s", doc.Type, doc.RejectionReason),
			data, now)
	}
	return notification.ToUser(doc.OwnerID, notification.EventDocumentApproved,
		"Document approved",
		fmt.Sprintf("Your %s document has been approved.", doc.Type),
		data, now)
}

func recordErr(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	return err
}
