package httpapi

import (
	"encoding/json"
	"net/http"
)

// Error codes shared by the router error handlers and the panic recovery.
// Tests in internal/routinggates pin these as the API error contract.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInternal         = "INTERNAL_SERVER_ERROR"
)

// ErrorEnvelope standardizes JSON error responses for API namespaces. UI
// routes render HTML error pages instead; the split comes from pkg/routing.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// NotFound writes the machine-readable 404 envelope.
func NotFound(w http.ResponseWriter, meta map[string]string) error {
	return WriteError(w, http.StatusNotFound, CodeNotFound, "not found", meta)
}

// MethodNotAllowed writes the machine-readable 405 envelope.
func MethodNotAllowed(w http.ResponseWriter, meta map[string]string) error {
	return WriteError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed", meta)
}

// Internal writes the machine-readable 500 envelope. The panic recovery in
// pkg/middleware uses it when the handler died before writing a status.
func Internal(w http.ResponseWriter, meta map[string]string) error {
	return WriteError(w, http.StatusInternalServerError, CodeInternal, "internal server error", meta)
}
