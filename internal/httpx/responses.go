package httpx

import (
	"encoding/json"
	"net/http"

	"bannedbooks/internal/apperr"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func JSONSuccess(w http.ResponseWriter, v any) {
	JSON(w, http.StatusOK, v)
}

func JSONError(w http.ResponseWriter, status int, message string, details map[string]any) {
	JSON(w, status, ErrorResponse{Message: message, Details: details})
}

// Error is the single place a failed request is turned into a response. The status is
// the error's code (500 when it has none); 5xx errors are reported to Sentry and their
// cause is never sent to the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.Code(err)

	message := "Internal server error"
	var details map[string]any
	if e, ok := apperr.As(err); ok {
		message = e.Message
		details = e.Details
	}

	logger := LoggerFrom(r).With(
		zap.Int("status", status),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
		captureException(r, err)
	} else {
		logger.Warn("request rejected", zap.String("reason", message), zap.Any("details", details))
	}

	JSONError(w, status, message, details)
}

func captureException(r *http.Request, err error) {
	hub := sentry.GetHubFromContext(r.Context())
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("request_id", RequestIDFrom(r))
		scope.SetRequest(r)
		hub.CaptureException(err)
	})
}
