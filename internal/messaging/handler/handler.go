package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"trustgate/internal/messaging/models"
	"trustgate/internal/messaging/risk"
	"trustgate/internal/messaging/service"
	id "trustgate/pkg/domain"
	dErrors "trustgate/pkg/domain-errors"
	"trustgate/pkg/platform/httputil"
	"trustgate/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

// Service defines the messaging operations the HTTP layer needs.
type Service interface {
	Create(ctx context.Context, req service.CreateRequest) (*service.CreateResult, error)
	Approve(ctx context.Context, msgID id.MessageID, moderatorID id.UserID, editedContent *string) (*service.ModerationResult, error)
	Reject(ctx context.Context, msgID id.MessageID, moderatorID id.UserID, reason string) (*service.ModerationResult, error)
	MarkAsRead(ctx context.Context, msgID id.MessageID, actor id.UserID) (*models.Message, error)
	MarkMultipleAsRead(ctx context.Context, ids []id.MessageID, actor id.UserID) (int, error)
	ValidateContent(content string) *risk.Assessment
	SuggestCorrections(content string) []risk.Correction
	ListPendingModeration(ctx context.Context, limit int) ([]service.PendingMessage, error)
	ListInbox(ctx context.Context, recipient id.UserID, limit int) ([]*models.Message, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/messages", h.handleCreate)
	r.Get("/messages", h.handleInbox)
	r.Post("/messages/check", h.handleCheck)
	r.Post("/messages/read", h.handleMarkManyRead)
	r.Post("/messages/{id}/read", h.handleMarkRead)
}

// RegisterAdmin mounts the moderation queue; r is expected to sit under /admin.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/messages/pending", h.handleListPending)
	r.Post("/messages/{id}/approve", h.handleApprove)
	r.Post("/messages/{id}/reject", h.handleReject)
}

type checkResponse struct {
	Assessment  *risk.Assessment  `json:"assessment"`
	Corrections []risk.Correction `json:"corrections"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.CreateMessageRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	recipient, property, err := req.Parse()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	result, err := h.service.Create(ctx, service.CreateRequest{
		SenderID:    requestcontext.UserID(ctx),
		RecipientID: recipient,
		Content:     req.Content,
		PropertyID:  property,
	})
	if err != nil {
		h.writeError(ctx, w, "create message failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) handleInbox(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit, err := parseLimit(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	msgs, err := h.service.ListInbox(ctx, requestcontext.UserID(ctx), limit)
	if err != nil {
		h.writeError(ctx, w, "list inbox failed", err)
		return
	}
	if msgs == nil {
		msgs = []*models.Message{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req models.CheckContentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	corrections := h.service.SuggestCorrections(req.Content)
	if corrections == nil {
		corrections = []risk.Correction{}
	}
	httputil.WriteJSON(w, http.StatusOK, checkResponse{
		Assessment:  h.service.ValidateContent(req.Content),
		Corrections: corrections,
	})
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	msgID, err := id.ParseMessageID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	msg, err := h.service.MarkAsRead(ctx, msgID, requestcontext.UserID(ctx))
	if err != nil {
		h.writeError(ctx, w, "mark message read failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, msg)
}

func (h *Handler) handleMarkManyRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.MarkReadRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	ids, err := req.Parse()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	n, err := h.service.MarkMultipleAsRead(ctx, ids, requestcontext.UserID(ctx))
	if err != nil {
		h.writeError(ctx, w, "mark messages read failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]int{"updated": n})
}

func (h *Handler) handleListPending(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit, err := parseLimit(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	pending, err := h.service.ListPendingModeration(ctx, limit)
	if err != nil {
		h.writeError(ctx, w, "list pending messages failed", err)
		return
	}
	if pending == nil {
		pending = []service.PendingMessage{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"messages": pending})
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	msgID, err := id.ParseMessageID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req models.ApproveMessageRequest
	if r.ContentLength != 0 {
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.WriteError(w, err)
			return
		}
	}
	result, err := h.service.Approve(ctx, msgID, requestcontext.UserID(ctx), req.EditedContent)
	if err != nil {
		h.writeError(ctx, w, "approve message failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	msgID, err := id.ParseMessageID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req models.RejectMessageRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}
	result, err := h.service.Reject(ctx, msgID, requestcontext.UserID(ctx), req.Reason)
	if err != nil {
		h.writeError(ctx, w, "reject message failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteError(w, err)
}

func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, dErrors.NewField(dErrors.CodeInvalidInput, "limit", "limit must be a non-negative integer")
	}
	return n, nil
}
