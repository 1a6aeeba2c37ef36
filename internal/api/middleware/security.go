package middleware

import (
	"mime"
	"net/http"

	"github.com/skytracker/skytracker/internal/api/models"
)

// SecurityHeaders adds browser hardening headers to every response.
// Responses are never cached.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cache-Control", "no-store")

		next.ServeHTTP(w, r)
	})
}

// RequireJSON rejects request bodies that are not declared as
// application/json. Requests without a Content-Type are let through.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contentType := r.Header.Get("Content-Type"); contentType != "" {
			mediaType, _, err := mime.ParseMediaType(contentType)
			if err != nil || mediaType != "application/json" {
				models.NewProblem(models.ProblemTypeValidation, "Unsupported media type",
					http.StatusUnsupportedMediaType, GetRequestID(r.Context())).
					WithDetail("Content-Type must be application/json").
					WithInstance(r.URL.Path).
					Write(w)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
