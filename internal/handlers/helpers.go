package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/chronicle/internal/interfaces"
)

type contextKey string

const clientIDKey contextKey = "client_id"

// WithClientID stores the authenticated client ID on the request context
func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, clientIDKey, clientID)
}

// ClientIDFromContext returns the authenticated client ID set by the auth
// middleware
func ClientIDFromContext(ctx context.Context) (string, bool) {
	clientID, ok := ctx.Value(clientIDKey).(string)
	return clientID, ok && clientID != ""
}

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes a standard error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// RequireClient extracts the authenticated client ID from the request
// context. Writes a 401 and returns false when the auth middleware did not
// run or failed to set it.
func RequireClient(w http.ResponseWriter, r *http.Request) (string, bool) {
	clientID, ok := ClientIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "API key required")
		return "", false
	}
	return clientID, true
}

// WriteServiceError maps a service-layer error onto the HTTP boundary.
// Validation errors surface with their reason; anything outside the taxonomy
// is a storage failure and surfaces as a generic 500 so storage internals
// never leak to the caller.
func WriteServiceError(w http.ResponseWriter, logger arbor.ILogger, err error, fallback string) {
	switch {
	case errors.Is(err, interfaces.ErrInvalidPayload),
		errors.Is(err, interfaces.ErrBatchTooLarge),
		errors.Is(err, interfaces.ErrInvalidQuery):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, interfaces.ErrLogNotFound):
		WriteError(w, http.StatusNotFound, "Log not found")
	case errors.Is(err, interfaces.ErrUnauthenticated):
		WriteError(w, http.StatusUnauthorized, "Invalid API key")
	default:
		logger.Error().Err(err).Msg(fallback)
		WriteError(w, http.StatusInternalServerError, fallback)
	}
}
