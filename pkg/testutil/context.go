package testutil

import (
	"net/http"

	id "trustgate/pkg/domain"
	"trustgate/pkg/requestcontext"
)

// AuthenticateAs is a stand-in for the auth middleware in handler tests: every
// request runs as userID with the given role.
func AuthenticateAs(userID id.UserID, role id.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, WithUser(r, userID, role))
		})
	}
}

// WithUser puts the caller identity on a single request.
func WithUser(req *http.Request, userID id.UserID, role id.Role) *http.Request {
	ctx := requestcontext.WithUserID(req.Context(), userID)
	ctx = requestcontext.WithRole(ctx, role)
	return req.WithContext(ctx)
}
