package twofactor

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/twofactor/pkg/logger"
	"github.com/dmitrymomot/twofactor/svc/twofactor"
)

type response struct {
	Data  any          `json:"data,omitempty"`
	Error *errorDetail `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (m *Module) writeError(w http.ResponseWriter, r *http.Request, err error, retryAfter time.Duration) {
	status, code := http.StatusInternalServerError, "internal_error"
	msg := "internal server error"

	switch {
	case errors.Is(err, twofactor.ErrTooManyAttempts):
		status, code, msg = http.StatusTooManyRequests, "too_many_attempts", err.Error()
		w.Header().Set("Retry-After", strconv.Itoa(max(1, int(math.Ceil(retryAfter.Seconds())))))
	case errors.Is(err, twofactor.ErrUserNotFound):
		status, code, msg = http.StatusNotFound, "user_not_found", err.Error()
	case errors.Is(err, twofactor.ErrInvalidState):
		status, code, msg = http.StatusConflict, "invalid_state", err.Error()
	case errors.Is(err, twofactor.ErrVersionConflict):
		status, code, msg = http.StatusConflict, "conflict", "the account changed, try again"
	case errors.Is(err, twofactor.ErrSession):
		status, code, msg = http.StatusServiceUnavailable, "session_error", "the code was accepted but the session could not be updated, sign in again"
		m.logger.WarnContext(r.Context(), "second factor accepted without session marker",
			slog.String("path", r.URL.Path),
			logger.Error(err),
		)
	default:
		m.logger.ErrorContext(r.Context(), "two-factor request failed",
			slog.String("path", r.URL.Path),
			logger.Error(err),
		)
	}

	writeJSON(w, status, response{Error: &errorDetail{Code: code, Message: msg}})
}
