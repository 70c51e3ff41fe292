// Package service implements the message moderation workflow: screening new
// messages, holding property enquiries for review and delivering the rest.
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

	messagingmetrics "trustgate/internal/messaging/metrics"
	"trustgate/internal/messaging/models"
	"trustgate/internal/messaging/risk"
	"trustgate/internal/notification"
	id "trustgate/pkg/domain"
	dErrors "trustgate/pkg/domain-errors"
	audit "trustgate/pkg/platform/audit"
	"trustgate/pkg/platform/sentinel"
	"trustgate/pkg/requestcontext"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
	previewRunes     = 120
)

var tracer = otel.Tracer("trustgate/messaging")

type Service struct {
	messages       MessageStore
	verifier       SenderVerifier
	analyzer       *risk.Analyzer
	notifier       Notifier
	auditPublisher AuditPublisher
	metrics        *messagingmetrics.Metrics
	logger         *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *messagingmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithAnalyzer replaces the default risk analyzer.
func WithAnalyzer(a *risk.Analyzer) Option {
	return func(s *Service) {
		s.analyzer = a
	}
}

func New(messages MessageStore, verifier SenderVerifier, opts ...Option) *Service {
	s := &Service{
		messages: messages,
		verifier: verifier,
		analyzer: risk.New(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequest is a message send as seen by the service. PropertyID is set
// when the message is an enquiry about a listing.
type CreateRequest struct {
	SenderID    id.UserID
	RecipientID id.UserID
	Content     string
	PropertyID  *id.PropertyID
}

// CreateResult carries the stored message, the assessment it was screened
// with and the events dispatched for it.
type CreateResult struct {
	Message    *models.Message      `json:"message"`
	Assessment *risk.Assessment     `json:"assessment"`
	Events     []notification.Event `json:"-"`
}

// ModerationResult is what a moderator decision produced.
type ModerationResult struct {
	Message *models.Message      `json:"message"`
	Events  []notification.Event `json:"-"`
}

// PendingMessage is a queued message with a freshly computed assessment.
type PendingMessage struct {
	Message    *models.Message  `json:"message"`
	Assessment *risk.Assessment `json:"assessment"`
}

// Create screens and stores a message. Enquiries about a property always go
// to moderation; direct messages are delivered at once whatever their risk
// signals. Length errors block the send.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	ctx, span := tracer.Start(ctx, "messaging.Create", trace.WithAttributes(
		attribute.Bool("property", req.PropertyID != nil),
	))
	defer span.End()

	if req.SenderID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if req.RecipientID.IsNil() {
		return nil, dErrors.NewField(dErrors.CodeInvalidInput, "recipient_id", "recipient_id is required")
	}
	if req.SenderID == req.RecipientID {
		return nil, dErrors.NewField(dErrors.CodeInvalidInput, "recipient_id", "you cannot send a message to yourself")
	}

	verified, err := s.verifier.IsEmailVerified(ctx, req.SenderID)
	if err != nil {
		return nil, recordErr(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check sender verification"))
	}
	if !verified {
		return nil, dErrors.New(dErrors.CodeForbidden, "verify your email address before sending messages")
	}

	assessment := s.analyzer.Analyze(req.Content)
	if !assessment.IsValid {
		return nil, dErrors.NewField(dErrors.CodeValidation, "content", strings.Join(assessment.Errors, "; "))
	}

	now := requestcontext.Now(ctx)
	msg, err := models.NewMessage(id.NewMessageID(), req.SenderID, req.RecipientID, risk.Sanitize(req.Content), req.PropertyID, now)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, err.Error())
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, recordErr(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store message"))
	}

	s.metrics.RecordCreated(msg.Status.String(), assessment.SpamScore)
	s.logger.InfoContext(ctx, "message created",
		"message_id", msg.ID.String(),
		"status", msg.Status.String(),
		"spam_score", assessment.SpamScore,
		"flags", assessment.Flags,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.emitAudit(ctx, audit.Event{
		UserID:   msg.SenderID,
		ActorID:  msg.SenderID.String(),
		Subject:  msg.ID.String(),
		Action:   string(audit.EventMessageCreated),
		Decision: msg.Status.String(),
	})

	var event notification.Event
	if msg.IsPending() {
		event = pendingModerationEvent(msg, assessment, now)
	} else {
		event = newMessageEvent(msg, now)
	}
	result := &CreateResult{Message: msg, Assessment: assessment, Events: []notification.Event{event}}
	s.dispatch(ctx, result.Events...)
	return result, nil
}

// Approve delivers a pending message, optionally with moderator edits. Edited
// content is sanitized and must still pass the length checks.
func (s *Service) Approve(ctx context.Context, msgID id.MessageID, moderatorID id.UserID, editedContent *string) (*ModerationResult, error) {
	ctx, span := tracer.Start(ctx, "messaging.Approve", trace.WithAttributes(
		attribute.String("message_id", msgID.String()),
		attribute.Bool("edited", editedContent != nil),
	))
	defer span.End()

	if err := checkModerationIDs(msgID, moderatorID); err != nil {
		return nil, err
	}
	var edited *string
	if editedContent != nil {
		if a := s.analyzer.Analyze(*editedContent); !a.IsValid {
			return nil, dErrors.NewField(dErrors.CodeValidation, "edited_content", strings.Join(a.Errors, "; "))
		}
		clean := risk.Sanitize(*editedContent)
		edited = &clean
	}

	now := requestcontext.Now(ctx)
	msg, err := s.messages.Execute(ctx, msgID,
		func(m *models.Message) error { return m.CanModerate() },
		func(m *models.Message) { m.ApplyApproval(moderatorID, edited, now) },
	)
	if err != nil {
		return nil, recordErr(span, s.wrapModerationErr(err))
	}

	s.metrics.IncrementDecision(msg.Status.String())
	action := audit.EventMessageApproved
	if msg.Status == models.MessageStatusModified {
		action = audit.EventMessageModified
	}
	s.logModeration(ctx, msg, moderatorID)
	s.emitAudit(ctx, audit.Event{
		UserID:   msg.SenderID,
		ActorID:  moderatorID.String(),
		Subject:  msg.ID.String(),
		Action:   string(action),
		Decision: msg.Status.String(),
	})

	result := &ModerationResult{Message: msg, Events: []notification.Event{newMessageEvent(msg, now)}}
	s.dispatch(ctx, result.Events...)
	return result, nil
}

// Reject blocks a pending message and tells the sender why. The recipient
// never hears about it.
func (s *Service) Reject(ctx context.Context, msgID id.MessageID, moderatorID id.UserID, reason string) (*ModerationResult, error) {
	ctx, span := tracer.Start(ctx, "messaging.Reject", trace.WithAttributes(
		attribute.String("message_id", msgID.String()),
	))
	defer span.End()

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, dErrors.NewField(dErrors.CodeValidation, "reason", "rejection reason is required")
	}
	if err := checkModerationIDs(msgID, moderatorID); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	msg, err := s.messages.Execute(ctx, msgID,
		func(m *models.Message) error { return m.CanModerate() },
		func(m *models.Message) { m.ApplyRejection(moderatorID, reason, now) },
	)
	if err != nil {
		return nil, recordErr(span, s.wrapModerationErr(err))
	}

	s.metrics.IncrementDecision(msg.Status.String())
	s.logModeration(ctx, msg, moderatorID)
	s.emitAudit(ctx, audit.Event{
		UserID:   msg.SenderID,
		ActorID:  moderatorID.String(),
		Subject:  msg.ID.String(),
		Action:   string(audit.EventMessageRejected),
		Decision: msg.Status.String(),
		Reason:   msg.ModerationReason,
	})

	event := notification.ToUser(msg.SenderID, notification.EventMessageRejected,
		"Message not delivered",
		"Your message was not delivered: "+msg.ModerationReason,
		map[string]any{
			"message_id":   msg.ID.String(),
			"recipient_id": msg.RecipientID.String(),
			"reason":       msg.ModerationReason,
		}, now)
	result := &ModerationResult{Message: msg, Events: []notification.Event{event}}
	s.dispatch(ctx, result.Events...)
	return result, nil
}

// MarkAsRead marks one message read for its recipient. Calling it again is a
// no-op. Messages the recipient cannot see yet are reported as not found.
func (s *Service) MarkAsRead(ctx context.Context, msgID id.MessageID, actor id.UserID) (*models.Message, error) {
	if actor.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	msg, err := s.messages.FindByID(ctx, msgID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "message not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load message")
	}
	if msg.RecipientID != actor {
		return nil, dErrors.New(dErrors.CodeForbidden, "only the recipient can mark a message as read")
	}
	if !msg.IsDelivered() {
		return nil, dErrors.New(dErrors.CodeNotFound, "message not found")
	}
	if msg.IsRead() {
		return msg, nil
	}

	now := requestcontext.Now(ctx)
	n, err := s.messages.MarkRead(ctx, []id.MessageID{msgID}, actor, now)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark message as read")
	}
	s.metrics.AddRead(n)
	if n == 1 {
		msg.MarkRead(now)
		return msg, nil
	}
	// someone else marked it between our read and write
	return s.messages.FindByID(ctx, msgID)
}

// MarkMultipleAsRead marks every listed message that is delivered, unread and
// addressed to actor. Other ids are skipped silently; the count says how many
// changed.
func (s *Service) MarkMultipleAsRead(ctx context.Context, ids []id.MessageID, actor id.UserID) (int, error) {
	if actor.IsNil() {
		return 0, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if len(ids) == 0 {
		return 0, nil
	}
	if len(ids) > models.MaxBulkRead {
		return 0, dErrors.NewField(dErrors.CodeValidation, "message_ids", "too many message ids")
	}
	n, err := s.messages.MarkRead(ctx, ids, actor, requestcontext.Now(ctx))
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark messages as read")
	}
	s.metrics.AddRead(n)
	return n, nil
}

// ValidateContent previews the risk assessment without storing anything.
func (s *Service) ValidateContent(content string) *risk.Assessment {
	return s.analyzer.Analyze(content)
}

func (s *Service) SuggestCorrections(content string) []risk.Correction {
	return s.analyzer.SuggestCorrections(content)
}

// ListPendingModeration returns the moderation queue, oldest first, each
// message with its current assessment.
func (s *Service) ListPendingModeration(ctx context.Context, limit int) ([]PendingMessage, error) {
	msgs, err := s.messages.ListPending(ctx, clampLimit(limit))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list pending messages")
	}
	out := make([]PendingMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, PendingMessage{Message: m, Assessment: s.analyzer.Analyze(m.Content)})
	}
	return out, nil
}

// ListInbox returns delivered messages addressed to the user, newest first.
func (s *Service) ListInbox(ctx context.Context, recipient id.UserID, limit int) ([]*models.Message, error) {
	if recipient.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	msgs, err := s.messages.ListInbox(ctx, recipient, clampLimit(limit))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list messages")
	}
	return msgs, nil
}

func (s *Service) wrapModerationErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "message not found")
	case errors.Is(err, sentinel.ErrInvalidState), dErrors.HasCode(err, dErrors.CodeInvalidState):
		s.metrics.IncrementConflict()
		return dErrors.New(dErrors.CodeInvalidState, "message has already been moderated")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to moderate message")
	}
}

func (s *Service) logModeration(ctx context.Context, msg *models.Message, moderatorID id.UserID) {
	s.logger.InfoContext(ctx, "message moderated",
		"message_id", msg.ID.String(),
		"status", msg.Status.String(),
		"moderator_id", moderatorID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
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

func checkModerationIDs(msgID id.MessageID, moderatorID id.UserID) error {
	if msgID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "message_id is required")
	}
	if moderatorID.IsNil() {
		return dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return min(limit, maxListLimit)
}

func pendingModerationEvent(msg *models.Message, a *risk.Assessment, now time.Time) notification.Event {
	data := map[string]any{
		"message_id":          msg.ID.String(),
		"sender_id":           msg.SenderID.String(),
		"recipient_id":        msg.RecipientID.String(),
		"spam_score":          a.SpamScore,
		"flags":               a.Flags,
		"requires_moderation": a.RequiresModeration,
	}
	if msg.PropertyID != nil {
		data["property_id"] = msg.PropertyID.String()
	}
	return notification.ToAdmins(notification.EventMessagePendingModeration,
		"Message awaiting moderation",
		fmt.Sprintf("A property enquiry is waiting for review (spam score %d).", a.SpamScore),
		data, now)
}

func newMessageEvent(msg *models.Message, now time.Time) notification.Event {
	data := map[string]any{
		"message_id": msg.ID.String(),
		"sender_id":  msg.SenderID.String(),
		"preview":    preview(msg.Content),
	}
	if msg.PropertyID != nil {
		data["property_id"] = msg.PropertyID.String()
	}
	return notification.ToUser(msg.RecipientID, notification.EventNewMessage,
		"New message", "You have received a new message.", data, now)
}

func preview(content string) string {
	r := []rune(content)
	if len(r) <= previewRunes {
		return content
	}
	return string(r[:previewRunes]) + "…"
}

func recordErr(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	return err
}
