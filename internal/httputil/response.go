package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/redmonkez12/profile-directory/internal/apperror"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// RespondJSON sends a JSON response with the given status code.
// Encoding errors are logged since the header is already written.
func RespondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondErrorWithCode sends a JSON error response with a machine-readable error code.
func RespondErrorWithCode(w http.ResponseWriter, message string, code string, statusCode int) {
	RespondJSON(w, ErrorResponse{Error: message, Code: code}, statusCode)
}

// RespondAppError maps err to its status and public message.
// Internal details of unexpected errors are never written to the client.
func RespondAppError(w http.ResponseWriter, err error) {
	kind := apperror.KindOf(err)
	RespondErrorWithCode(w, apperror.PublicMessage(err), CodeForKind(kind), kind.HTTPStatus())
}
