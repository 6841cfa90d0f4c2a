package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkazala/work20/internal/auth"
)

// NewSlogLogger returns a middleware that logs each request as one
// structured line: method, path, status, duration, the chi request ID and,
// for authenticated admins, their UID.
//
// Wire it after chimiddleware.RequestID. The UID is only seen when
// Authenticate runs before it.
func NewSlogLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", chimiddleware.GetReqID(r.Context()),
			}
			if u := auth.UserFrom(r.Context()); u != nil {
				attrs = append(attrs, "user_id", u.UID)
			}
			log.InfoContext(r.Context(), "request", attrs...)
		})
	}
}
