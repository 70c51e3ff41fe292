package auth

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	id "trustgate/pkg/domain"
	"trustgate/pkg/requestcontext"
)

type stubValidator struct {
	claims *JWTClaims
	err    error
}

func (s stubValidator) ValidateToken(string) (*JWTClaims, error) { return s.claims, s.err }

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	user := uuid.New()

	var gotUser id.UserID
	var gotRole id.Role
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = requestcontext.UserID(r.Context())
		gotRole = requestcontext.Role(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		header     string
		validator  stubValidator
		wantStatus int
		wantRole   id.Role
	}{
		{"missing header", "", stubValidator{}, http.StatusUnauthorized, ""},
		{"invalid token", "Bearer x", stubValidator{err: errors.New("bad")}, http.StatusUnauthorized, ""},
		{"bad subject", "Bearer x", stubValidator{claims: &JWTClaims{UserID: "nope"}}, http.StatusUnauthorized, ""},
		{"unknown role", "Bearer x", stubValidator{claims: &JWTClaims{UserID: user.String(), Role: "root"}}, http.StatusUnauthorized, ""},
		{"default role", "Bearer x", stubValidator{claims: &JWTClaims{UserID: user.String()}}, http.StatusNoContent, id.RoleUser},
		{"admin role", "Bearer x", stubValidator{claims: &JWTClaims{UserID: user.String(), Role: "admin"}}, http.StatusNoContent, id.RoleAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUser, gotRole = id.UserID{}, ""
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			RequireAuth(tt.validator, logger)(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusNoContent {
				assert.Equal(t, id.UserID(user), gotUser)
				assert.Equal(t, tt.wantRole, gotRole)
			}
		})
	}
}
