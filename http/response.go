package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sagarc03/filegate"
)

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errCode,
		Message: message,
	}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// HandleError writes the response for the two terminal error kinds. The
// message never contains err's text, which may include filesystem paths.
func HandleError(w http.ResponseWriter, err error) {
	if errors.Is(err, filegate.ErrUnauthorized) {
		WriteError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired signature")
		return
	}

	// Default internal error
	WriteError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
}

// RejectionStatus maps a fallthrough reason to the status a standalone server
// may report when detailed fallbacks are enabled.
func RejectionStatus(err error) int {
	switch {
	case errors.Is(err, filegate.ErrMalformedPath):
		return http.StatusBadRequest
	case errors.Is(err, filegate.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, filegate.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	default:
		return http.StatusNotFound
	}
}
