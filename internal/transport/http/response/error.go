package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/logger"
)

type ErrorBody struct {
	Error ErrorPayload `json:"error"`
}

type ErrorPayload struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Meta      map[string]string `json:"meta,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// WriteError converts a domain error into a consistent JSON HTTP error response.
// Non-domain errors are treated as internal errors (500) without leaking details.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	WriteErrorStatus(w, r, 0, err)
}

// WriteErrorStatus is WriteError with the status forced to status.
// A zero status falls back to the mapping by error kind.
func WriteErrorStatus(w http.ResponseWriter, r *http.Request, status int, err error) {
	code := "internal_error"
	message := "internal error"
	kindStatus := http.StatusInternalServerError
	var meta map[string]string

	var de *domain.Error
	if errors.As(err, &de) {
		kindStatus = statusFromKind(de.Kind)
		code = de.Code
		message = de.Message
		meta = de.Meta
	}
	if status == 0 {
		status = kindStatus
	}

	if status >= http.StatusInternalServerError {
		logger.WithCtx(r.Context()).Error().Err(err).Int("status", status).Str("code", code).Msg("request failed")
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(ErrorBody{
		Error: ErrorPayload{
			Code:      code,
			Message:   message,
			Meta:      meta,
			RequestID: RequestIDFromContext(r),
		},
	})
}

// statusFromKind maps domain error kinds to HTTP status codes.
func statusFromKind(kind domain.ErrKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindAuth:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindInfrastructure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// StatusFor exposes the kind mapping to handlers that pick their own status.
func StatusFor(err error) int {
	if de, ok := domain.As(err); ok {
		return statusFromKind(de.Kind)
	}
	return http.StatusInternalServerError
}
