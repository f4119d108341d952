package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/ldsnotes/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ldsnotes/internal/logger"
)

const maxSessionBody = 16 << 10

type sessionRequest struct {
	Token string `json:"token"`
}

type sessionResponse struct {
	SessionID  string `json:"session_id"`
	TTLSeconds int    `json:"ttl_seconds,omitempty"`
}

// CreateSession stores the notes token from the body and returns a new
// session id to send back in the X-Session-Id header.
func CreateSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sessionRequest
		dec := json.NewDecoder(io.LimitReader(r.Body, maxSessionBody))
		if err := dec.Decode(&req); err != nil {
			badRequest(w, d, "body must be a JSON object with a token")
			return
		}
		req.Token = strings.TrimSpace(req.Token)
		if req.Token == "" {
			badRequest(w, d, "token is required")
			return
		}

		id := uuid.NewString()
		if err := d.Sessions.Save(r.Context(), id, req.Token, d.SessionTTL); err != nil {
			d.Logger.Error("failed to save session", logger.Error(err))
			writeJSON(w, d, http.StatusServiceUnavailable, errorResponse{Error: "session store unavailable"})
			return
		}

		d.Logger.Info("session created", logger.String("remote_ip", r.RemoteAddr))
		writeJSON(w, d, http.StatusCreated, sessionResponse{
			SessionID:  id,
			TTLSeconds: int(d.SessionTTL.Seconds()),
		})
	}
}

// DeleteSession drops the session named by the X-Session-Id header.
func DeleteSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(SessionHeader)
		if id == "" {
			badRequest(w, d, SessionHeader+" header is required")
			return
		}
		if err := d.Sessions.Delete(r.Context(), id); err != nil {
			d.Logger.Error("failed to delete session", logger.Error(err))
			writeJSON(w, d, http.StatusServiceUnavailable, errorResponse{Error: "session store unavailable"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
