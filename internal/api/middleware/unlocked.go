package middleware

import (
	"net/http"

	"github.com/skytracker/skytracker/internal/api/models"
)

// LockState reports whether an accepted API key is active.
type LockState interface {
	Unlocked() bool
}

// RequireUnlocked rejects requests with a 403 problem until an API key has
// been accepted.
func RequireUnlocked(state LockState) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !state.Unlocked() {
				models.NewForbidden(GetRequestID(r.Context()), "submit an API key at /v1/credential first").
					WithInstance(r.URL.Path).
					Write(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
