package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"chat-accounts/errors"
)

// errorResponse mirrors the body shape clients already parse: message is
// either a string or, for validation failures, a list of strings.
type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    any    `json:"message"`
	Error      string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeErrorBody(w http.ResponseWriter, status int, message any) {
	writeJSON(w, status, errorResponse{
		StatusCode: status,
		Message:    message,
		Error:      http.StatusText(status),
	})
}

// writeError maps a service error onto its status and client message.
// Only server-side failures are logged.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeErrorBody(w, status, errors.Message(err))
}

func unauthorized(w http.ResponseWriter, _ *http.Request) {
	writeErrorBody(w, http.StatusUnauthorized, "Unauthorized")
}

// orEmpty keeps list endpoints answering [] instead of null.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
