package server

import (
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
)

// ErrorResponse represents a structured error response returned by the API.
// Details carries field-level validation issues when there are any.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// RespondJSON sends a JSON response with the given status code.
// Encoding errors are logged but do not fail the response.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// RespondError sends a structured error response with the given status code.
func RespondError(w http.ResponseWriter, status int, message string, details interface{}) {
	RespondJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}
