// Package requesttime pins a single "now" per HTTP request so every timestamp
// written while serving it (validated_at, read_at, audit entries) agrees.
package requesttime

import (
	"net/http"
	"time"

	"trustgate/pkg/requestcontext"
)

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
