package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkazala/work20/internal/domain"
)

// ErrorResponse is the body of every JSON API error.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// requestError answers a request rejected before reaching the service
// layer (malformed body or parameter).
func requestError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, "bad_request", message)
}

// serviceError maps a service error to its status. notFound is the message
// for a missing resource because the handler knows what was looked up.
func (s *Server) serviceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", notFound)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", unwrapMessage(err))
	default:
		s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// unwrapMessage extracts the human-readable part of a wrapped sentinel.
// e.g. "service.StartUpService.Create: validation error: url must be an absolute URL"
// becomes "url must be an absolute URL".
func unwrapMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{domain.ErrValidation, domain.ErrUnauthorized} {
		prefix := sentinel.Error() + ": "
		if i := strings.LastIndex(msg, prefix); i >= 0 {
			return msg[i+len(prefix):]
		}
	}
	return msg
}

// statusFor is the HTML counterpart of serviceError.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
