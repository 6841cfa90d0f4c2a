// Package middleware provides the HTTP middleware of the Work 2.0 server:
// request logging, CORS for the JSON API, body limits, admin
// authentication and admin rate limiting.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler returns a middleware that applies CORS headers for the
// JSON API based on allowedOrigins. Each entry must be a full origin
// (scheme + host, no trailing slash). Credentials are allowed so a browser
// front-end can send the admin token cookie.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	return c.Handler
}
