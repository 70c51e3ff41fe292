package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"trustgate/internal/verification/models"
	"trustgate/internal/verification/service"
	id "trustgate/pkg/domain"
	dErrors "trustgate/pkg/domain-errors"
	"trustgate/pkg/platform/httputil"
	"trustgate/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

// Service defines the verification operations the HTTP layer needs.
type Service interface {
	SubmitDocument(ctx context.Context, owner id.UserID, req models.SubmitDocumentRequest) (*models.Document, error)
	ListByOwner(ctx context.Context, owner id.UserID) ([]*models.Document, error)
	CheckRequiredDocuments(ctx context.Context, userID id.UserID) (*models.RequiredDocuments, error)
	ListPending(ctx context.Context, limit int) ([]*models.Document, error)
	GetValidationStats(ctx context.Context) (*models.ValidationStats, error)
	Validate(ctx context.Context, docID id.DocumentID, validatorID id.UserID, approve bool, reason string) (*service.ValidationResult, error)
}

// Handler serves the document endpoints. Authentication and the admin role
// check are applied by the router before these handlers run.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register mounts the user-facing routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/documents", h.handleSubmit)
	r.Get("/documents", h.handleListMine)
	r.Get("/documents/requirements", h.handleRequirements)
}

// RegisterAdmin mounts the validator routes; r is expected to sit under /admin.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/documents/pending", h.handleListPending)
	r.Get("/documents/stats", h.handleStats)
	r.Post("/documents/{id}/validate", h.handleValidate)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.SubmitDocumentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	doc, err := h.service.SubmitDocument(ctx, requestcontext.UserID(ctx), req)
	if err != nil {
		h.writeError(ctx, w, "submit document failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, doc)
}

func (h *Handler) handleListMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	docs, err := h.service.ListByOwner(ctx, requestcontext.UserID(ctx))
	if err != nil {
		h.writeError(ctx, w, "list documents failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"documents": nonNil(docs)})
}

func (h *Handler) handleRequirements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := h.service.CheckRequiredDocuments(ctx, requestcontext.UserID(ctx))
	if err != nil {
		h.writeError(ctx, w, "check required documents failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, req)
}

func (h *Handler) handleListPending(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httputil.WriteError(w, dErrors.NewField(dErrors.CodeInvalidInput, "limit", "limit must be a non-negative integer"))
			return
		}
		limit = n
	}
	docs, err := h.service.ListPending(ctx, limit)
	if err != nil {
		h.writeError(ctx, w, "list pending documents failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"documents": nonNil(docs)})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats, err := h.service.GetValidationStats(ctx)
	if err != nil {
		h.writeError(ctx, w, "validation stats failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	docID, err := id.ParseDocumentID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req models.ValidateDocumentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Validate(ctx, docID, requestcontext.UserID(ctx), *req.Approve, req.Reason)
	if err != nil {
		h.writeError(ctx, w, "validate document failed", err)
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

func nonNil(docs []*models.Document) []*models.Document {
	if docs == nil {
		return []*models.Document{}
	}
	return docs
}
