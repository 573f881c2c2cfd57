package http

import (
	"encoding/json"
	"net/http"
)

// MessageResponse is the body of analytics and auth errors.
type MessageResponse struct {
	Message string `json:"message"`
}

// NotifyResponse is the body of POST /notify. Exactly one of Message and
// Error is set.
type NotifyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The header has already been sent, so an encode error cannot be reported.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage writes a {message} body.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, MessageResponse{Message: message})
}
