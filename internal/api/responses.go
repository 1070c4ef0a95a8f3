package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"askai/client/internal/controller"
	app_errors "askai/client/internal/errors"
)

// This file contains the response DTOs of the web client and helpers for
// writing JSON and Server-Sent Events consistently.

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse defines a generic success response.
type StatusResponse struct {
	Status string `json:"status"`
}

// AuthResponse is returned by login and signup. Redirect is set when the
// browser should navigate.
type AuthResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty" example:"/dashboard"`
}

// NavigationResponse tells the browser where to go next. An empty Redirect
// means stay.
type NavigationResponse struct {
	Redirect string `json:"redirect,omitempty" example:"/login"`
}

// DashboardResponse carries either the dashboard state or a redirect.
type DashboardResponse struct {
	Redirect  string               `json:"redirect,omitempty"`
	Dashboard *controller.Snapshot `json:"dashboard,omitempty"`
}

// SuggestionsResponse lists the landing quick-start labels.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions" example:"Attach,Search,Study,Create image"`
}

// QueryRequest is the body of the landing and dashboard query boxes. Empty
// queries are accepted and ignored.
type QueryRequest struct {
	Query string `json:"query" validate:"max=8000" example:"What is the capital of France?"`
}

// respondWithError maps business-layer errors to HTTP status codes and writes
// a standard JSON error body.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested resource was not found."
	case errors.Is(err, app_errors.ErrValidation):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, app_errors.ErrConflict):
		statusCode = http.StatusConflict
		message = "A conflict occurred with the current state of the resource."
	case errors.Is(err, app_errors.ErrPermission):
		statusCode = http.StatusForbidden
		message = "You do not have permission to perform this action."
	case errors.Is(err, app_errors.ErrUnauthenticated):
		statusCode = http.StatusUnauthorized
		message = "Authentication required."
	case errors.Is(err, app_errors.ErrUnreachable):
		statusCode = http.StatusBadGateway
		message = controller.MessageUnreachable
	default:
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal server error occurred."
	}

	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)
	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondWithJSON marshals payload and writes it with the given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

// sendStreamError sends a structured error message over an SSE stream.
func sendStreamError(w http.ResponseWriter, message string) {
	slog.Warn("Sending stream error to client", "message", message)
	if err := writeStreamEvent(w, "error", ErrorResponse{Error: message}); err != nil {
		slog.Warn("Failed to write stream error, client might have disconnected", "error", err)
	}
}

// writeStreamEvent marshals data and writes it as one named SSE event. A write
// failure means the client has gone away.
func writeStreamEvent(w http.ResponseWriter, event string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		slog.Error("Failed to marshal stream data to JSON", "error", err)
		return nil
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return fmt.Errorf("failed to write data to stream: %w", err)
	}

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}
