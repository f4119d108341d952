package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/ldsnotes/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ldsnotes/internal/logger"
	"github.com/MrSnakeDoc/ldsnotes/internal/notes"
	"github.com/MrSnakeDoc/ldsnotes/internal/store"
)

// SessionHeader carries the id returned by POST /api/session.
const SessionHeader = "X-Session-Id"

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, d deps.Deps, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		d.Logger.Debug("failed to write response", logger.Error(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, d deps.Deps, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		d.Logger.Warn("request failed",
			logger.String("path", r.URL.Path),
			logger.Int("status", status),
			logger.Error(err))
	}
	writeJSON(w, d, status, errorResponse{Error: err.Error()})
}

func badRequest(w http.ResponseWriter, d deps.Deps, msg string) {
	writeJSON(w, d, http.StatusBadRequest, errorResponse{Error: msg})
}

// statusFor maps pipeline errors to HTTP statuses. Anything unclassified,
// including unknown annotation types and content fetch failures, is an
// upstream failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, notes.ErrInvalidType), errors.Is(err, notes.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, notes.ErrUnauthorized), errors.Is(err, store.ErrSessionNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, notes.ErrFolderNotFound), errors.Is(err, notes.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}

// serviceFor picks the notes token for r: the stored session when the
// header is present, the configured default otherwise.
func serviceFor(r *http.Request, d deps.Deps) (*notes.Service, error) {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		return d.Notes.WithToken(d.DefaultToken), nil
	}
	token, err := d.Sessions.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	return d.Notes.WithToken(token), nil
}
