package handler

import (
	"context"
	"encoding/json"
	"net/http"

	apperrors "ocr-notes-server/pkg/errors"
)

type contextKey string

const requestIDContextKey contextKey = "request_id"

// RequestIDFromContext extracts the request ID set by the RequestID middleware
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeAppError writes a structured error response for err
func writeAppError(w http.ResponseWriter, err *apperrors.AppError) {
	body := map[string]string{
		"error": err.Message,
		"type":  string(err.Type),
	}
	if err.Details != "" {
		body["details"] = err.Details
	}
	writeJSON(w, err.StatusCode, body)
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}
