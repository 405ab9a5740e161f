package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/HEADES94/MovieProjektFinal/internal/engine"
	"github.com/HEADES94/MovieProjektFinal/internal/logging"
)

// Response is the envelope of every JSON reply.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

type Error struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeNoQuestions      = "NO_QUESTIONS"
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn().Err(err).Msg("encode response")
	}
}

func ok(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func created(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, Response{Success: true, Data: data})
}

func fail(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	writeJSON(w, status, Response{Error: &Error{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: logging.RequestIDFromContext(r.Context()),
	}})
}

// writeError maps engine errors to status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *engine.ValidationError
	switch {
	case errors.As(err, &ve):
		fail(w, r, http.StatusBadRequest, ErrCodeValidationFailed, ve.Error(), map[string]string{ve.Field: ve.Message})
	case errors.Is(err, engine.ErrNotFound):
		fail(w, r, http.StatusNotFound, ErrCodeNotFound, err.Error(), nil)
	case errors.Is(err, engine.ErrNoQuestions):
		fail(w, r, http.StatusUnprocessableEntity, ErrCodeNoQuestions, err.Error(), nil)
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		fail(w, r, http.StatusInternalServerError, ErrCodeInternalError, "internal error", nil)
	}
}
