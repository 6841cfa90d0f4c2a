package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkazala/work20/internal/auth"
)

// TokenCookie is the cookie an admin front-end sets with the ID token for
// server-rendered pages.
const TokenCookie = "work20_token"

// crossOrigin recognises browser requests sent from another site. Only the
// cookie is ambient, so only cookie credentials are checked against it.
var crossOrigin = http.NewCrossOriginProtection()

// Authenticate resolves the request's token, from an "Authorization: Bearer"
// header or the TokenCookie, to a user stored in the request context.
// A missing or invalid token leaves the request anonymous, and so does a
// cookie on a cross-site POST, PUT or DELETE.
func Authenticate(v auth.Verifier, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			u, err := v.Verify(r.Context(), token)
			if err != nil {
				log.DebugContext(r.Context(), "token rejected", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), u)))
		})
	}
}

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if c, err := r.Cookie(TokenCookie); err == nil && crossOrigin.Check(r) == nil {
		return c.Value
	}
	return ""
}

// RequireUser rejects anonymous requests with 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.UserFrom(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, "unauthorized", "sign in as an administrator")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeError writes the API's {"error":{"code","message"}} body.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
