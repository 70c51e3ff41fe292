package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"trustgate/internal/verification/handler/mocks"
	"trustgate/internal/verification/models"
	"trustgate/internal/verification/service"
	id "trustgate/pkg/domain"
	dErrors "trustgate/pkg/domain-errors"
	"trustgate/pkg/requestcontext"
)

type HandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  chi.Router
	userID  id.UserID
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.userID = id.UserID(uuid.New())

	h := New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithUserID(r.Context(), s.userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	h.Register(r)
	r.Route("/admin", h.RegisterAdmin)
	s.router = r
}

func (s *HandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func decode(rr *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	_ = json.Unmarshal(rr.Body.Bytes(), &body)
	return body
}

func (s *HandlerSuite) TestSubmit() {
	s.Run("created", func() {
		s.service.EXPECT().
			SubmitDocument(gomock.Any(), s.userID, models.SubmitDocumentRequest{Type: "identity", SubType: "id_card"}).
			Return(&models.Document{ID: id.NewDocumentID(), Status: models.DocumentStatusPending}, nil)

		rr := s.do(http.MethodPost, "/documents", `{"type":"identity","sub_type":"id_card"}`)
		s.Equal(http.StatusCreated, rr.Code)
		s.Equal("pending", decode(rr)["status"])
	})

	s.Run("unknown fields are rejected", func() {
		rr := s.do(http.MethodPost, "/documents", `{"type":"identity","file":"x"}`)
		s.Equal(http.StatusBadRequest, rr.Code)
	})
}

func (s *HandlerSuite) TestValidate() {
	docID := id.NewDocumentID()
	path := "/admin/documents/" + docID.String() + "/validate"

	s.Run("approve", func() {
		score := 2.5
		s.service.EXPECT().Validate(gomock.Any(), docID, s.userID, true, "").
			Return(&service.ValidationResult{
				Document:   &models.Document{ID: docID, Status: models.DocumentStatusApproved},
				TrustScore: &score,
			}, nil)

		rr := s.do(http.MethodPost, path, `{"approve":true}`)
		s.Equal(http.StatusOK, rr.Code)
		s.Equal(2.5, decode(rr)["trust_score"])
	})

	s.Run("reject without reason is a field error", func() {
		s.service.EXPECT().Validate(gomock.Any(), docID, s.userID, false, "").
			Return(nil, dErrors.NewField(dErrors.CodeValidation, "reason", "rejection reason is required"))

		rr := s.do(http.MethodPost, path, `{"approve":false,"reason":"  "}`)
		s.Equal(http.StatusBadRequest, rr.Code)
		body := decode(rr)
		s.Equal("validation_error", body["error"])
		s.Equal("reason", body["field"])
	})

	s.Run("missing approve flag", func() {
		rr := s.do(http.MethodPost, path, `{"reason":"x"}`)
		s.Equal(http.StatusBadRequest, rr.Code)
		s.Equal("approve", decode(rr)["field"])
	})

	s.Run("malformed id", func() {
		rr := s.do(http.MethodPost, "/admin/documents/not-a-uuid/validate", `{"approve":true}`)
		s.Equal(http.StatusBadRequest, rr.Code)
	})

	s.Run("already decided maps to conflict", func() {
		s.service.EXPECT().Validate(gomock.Any(), docID, s.userID, false, "blurry").
			Return(nil, dErrors.New(dErrors.CodeInvalidState, "document has already been validated"))

		rr := s.do(http.MethodPost, path, `{"approve":false,"reason":"blurry"}`)
		s.Equal(http.StatusConflict, rr.Code)
		s.Equal("invalid_state_transition", decode(rr)["error"])
	})

	s.Run("internal errors hide their description", func() {
		s.service.EXPECT().Validate(gomock.Any(), docID, s.userID, true, "").
			Return(nil, dErrors.Wrap(errors.New("pq: connection refused"), dErrors.CodeInternal, "failed to validate document"))

		rr := s.do(http.MethodPost, path, `{"approve":true}`)
		s.Equal(http.StatusInternalServerError, rr.Code)
		s.NotContains(rr.Body.String(), "pq:")
	})
}

func (s *HandlerSuite) TestReads() {
	s.Run("requirements", func() {
		s.service.EXPECT().CheckRequiredDocuments(gomock.Any(), s.userID).
			Return(&models.RequiredDocuments{IdentityComplete: true, Details: models.RequirementDetails{IDCard: true, Selfie: true}}, nil)

		rr := s.do(http.MethodGet, "/documents/requirements", "")
		s.Equal(http.StatusOK, rr.Code)
		s.Equal(true, decode(rr)["identity_complete"])
	})

	s.Run("pending with limit", func() {
		s.service.EXPECT().ListPending(gomock.Any(), 5).Return(nil, nil)
		rr := s.do(http.MethodGet, "/admin/documents/pending?limit=5", "")
		s.Equal(http.StatusOK, rr.Code)
		s.Equal([]any{}, decode(rr)["documents"])
	})

	s.Run("pending with bad limit", func() {
		rr := s.do(http.MethodGet, "/admin/documents/pending?limit=-1", "")
		s.Equal(http.StatusBadRequest, rr.Code)
	})

	s.Run("stats", func() {
		s.service.EXPECT().GetValidationStats(gomock.Any()).Return(models.BuildValidationStats(nil), nil)
		rr := s.do(http.MethodGet, "/admin/documents/stats", "")
		s.Equal(http.StatusOK, rr.Code)
		s.Equal(float64(0), decode(rr)["total"])
	})
}
