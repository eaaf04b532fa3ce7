// Package response provides shared JSON response helpers for HTTP handlers.
//
// Every failure body carries a "message" field so callers only branch on the
// HTTP status; 500 bodies additionally carry an opaque "error" category with
// no internal detail (stack traces and connection strings stay in the logs).
package response

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON body returned on every failure path.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// JSON writes a JSON-encoded payload with the given HTTP status code.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// BadRequest writes a 400 response with a human-readable message.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, ErrorBody{Message: message})
}

// ServerError writes a 500 response. detail is an opaque error category
// shown to the client; the underlying error belongs in the logs.
func ServerError(w http.ResponseWriter, message, detail string) {
	JSON(w, http.StatusInternalServerError, ErrorBody{Message: message, Error: detail})
}
