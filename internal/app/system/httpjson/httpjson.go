// Package httpjson writes the JSON response envelopes used across the
// API. Handlers never leak internal error detail to callers; internal
// failures are logged by the caller and surface as a generic message.
package httpjson

import (
	"encoding/json"
	"net/http"
)

// Envelope is the common response shape: a human-readable message plus
// optional payload fields.
type Envelope map[string]any

// Write encodes v as JSON with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes {"message": msg} with the given status code.
func Message(w http.ResponseWriter, status int, msg string) {
	Write(w, status, Envelope{"message": msg})
}

// BadRequest writes a 400 validation error.
func BadRequest(w http.ResponseWriter, msg string) {
	Message(w, http.StatusBadRequest, msg)
}

// Unauthorized writes a 401 authentication error.
func Unauthorized(w http.ResponseWriter, msg string) {
	Message(w, http.StatusUnauthorized, msg)
}

// Forbidden writes a 403 authorization error.
func Forbidden(w http.ResponseWriter, msg string) {
	Message(w, http.StatusForbidden, msg)
}

// NotFound writes a 404 not-found error.
func NotFound(w http.ResponseWriter, msg string) {
	Message(w, http.StatusNotFound, msg)
}

// Conflict writes a 409 concurrent-modification error.
func Conflict(w http.ResponseWriter, msg string) {
	Message(w, http.StatusConflict, msg)
}

// TooManyRequests writes a 429 rate-limit error.
func TooManyRequests(w http.ResponseWriter, msg string) {
	Message(w, http.StatusTooManyRequests, msg)
}

// Internal writes the generic 500 response. The underlying error must be
// logged by the caller, never echoed to the client.
func Internal(w http.ResponseWriter) {
	Message(w, http.StatusInternalServerError, "Internal server error")
}

// Decode reads a JSON request body into dst. It returns false after
// writing a 400 response when the body is missing or malformed.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil {
		BadRequest(w, "Request body is required")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		BadRequest(w, "Invalid request body")
		return false
	}
	return true
}
