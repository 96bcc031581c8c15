package advance

// respond.go provides helper functions for sending HTTP responses from the
// advance API handlers. Error responses use the {"detail": "..."} wire shape.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/paystream-demos/advance-app/internal/logger"
)

// ErrorDetail is the error response body.
type ErrorDetail struct {
	Detail string `json:"detail"`
}

// MapErrorToStatus maps an error to the HTTP status code and client-facing
// detail string. Unexpected error types map to a sanitized 500; the full
// error is logged by RespondWithError.
func MapErrorToStatus(err error) (int, string) {
	var advErr *AdvanceError
	if !errors.As(err, &advErr) {
		return http.StatusInternalServerError, "Internal server error"
	}

	switch advErr.Code() {
	case ErrCodeInvalidRequest, ErrCodeInvalidFrequency:
		return http.StatusBadRequest, advErr.Error()
	case ErrCodeNotFound:
		return http.StatusNotFound, advErr.Error()
	case ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests, advErr.Error()
	case ErrCodeRequestTooLarge:
		return http.StatusRequestEntityTooLarge, advErr.Error()
	default:
		// storage and internal errors: never leak details to the client
		return http.StatusInternalServerError, "Internal server error"
	}
}

// RespondWithError sends the error as a {"detail": ...} JSON payload with the
// mapped status code, and logs the full error server-side.
func RespondWithError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode, detail := MapErrorToStatus(err)

	reqLogger := logger.ContextRequestLogger(r.Context())
	reqLogger.Warn("Request failed",
		slog.String("error", err.Error()),
		slog.Int("status_code", statusCode),
	)

	RespondWithJSONPayload(w, statusCode, ErrorDetail{Detail: detail})
}

// RespondWithJSONPayload sends a JSON response with the given status code
func RespondWithJSONPayload(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			// headers are already written, just log
			slog.Error("Failed to encode JSON response",
				slog.String("error", err.Error()),
			)
		}
	}
}
