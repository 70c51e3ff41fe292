package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"trustgate/internal/trust"
	id "trustgate/pkg/domain"
	dErrors "trustgate/pkg/domain-errors"
	"trustgate/pkg/platform/httputil"
	"trustgate/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

// Service defines the trust operations the HTTP layer needs.
type Service interface {
	CalculateTrustScore(ctx context.Context, userID id.UserID) (float64, error)
	UpdateUserTrustScore(ctx context.Context, userID id.UserID) (float64, error)
	GetTrustScoreDetails(ctx context.Context, userID id.UserID) (*trust.ScoreDetails, error)
	GetTrustLevel(score float64) (trust.Level, error)
	UpdateProfile(ctx context.Context, userID id.UserID, update trust.ProfileUpdate) (*trust.VerificationProfile, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

type scoreResponse struct {
	UserID     id.UserID   `json:"user_id"`
	TrustScore float64     `json:"trust_score"`
	MaxScore   float64     `json:"max_score"`
	Level      trust.Level `json:"level"`
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/trust/me", h.handleMyScore)
	r.Get("/trust/me/details", h.handleMyDetails)
	r.Get("/trust/level", h.handleLevel)
}

// RegisterAdmin mounts the onboarding sync routes under /admin.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Put("/trust/profiles/{user_id}", h.handleUpdateProfile)
	r.Post("/trust/profiles/{user_id}/recompute", h.handleRecompute)
}

func (h *Handler) handleMyScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := requestcontext.UserID(ctx)
	score, err := h.service.CalculateTrustScore(ctx, userID)
	if err != nil {
		h.writeError(ctx, w, "calculate trust score failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, scoreResponse{
		UserID:     userID,
		TrustScore: score,
		MaxScore:   trust.MaxScore,
		Level:      trust.LevelFor(score),
	})
}

func (h *Handler) handleMyDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	details, err := h.service.GetTrustScoreDetails(ctx, requestcontext.UserID(ctx))
	if err != nil {
		h.writeError(ctx, w, "trust score details failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, details)
}

func (h *Handler) handleLevel(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("score")
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.NewField(dErrors.CodeInvalidInput, "score", "score must be a number"))
		return
	}
	level, err := h.service.GetTrustLevel(score)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, level)
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := id.ParseUserID(chi.URLParam(r, "user_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var update trust.ProfileUpdate
	if err := httputil.DecodeJSON(r, &update); err != nil {
		httputil.WriteError(w, err)
		return
	}
	profile, err := h.service.UpdateProfile(ctx, userID, update)
	if err != nil {
		h.writeError(ctx, w, "update verification profile failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) handleRecompute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := id.ParseUserID(chi.URLParam(r, "user_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	score, err := h.service.UpdateUserTrustScore(ctx, userID)
	if err != nil {
		h.writeError(ctx, w, "recompute trust score failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, scoreResponse{
		UserID:     userID,
		TrustScore: score,
		MaxScore:   trust.MaxScore,
		Level:      trust.LevelFor(score),
	})
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
