package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/ldsnotes/internal/httpserver/deps"
)

const readyTimeout = 2 * time.Second

type componentStatus struct {
	OK       bool   `json:"ok"`
	Mode     string `json:"mode,omitempty"`
	Sessions *int   `json:"sessions,omitempty"`
	Error    string `json:"error,omitempty"`
}

type readyzResponse struct {
	Ready      bool                       `json:"ready"`
	Components map[string]componentStatus `json:"components"`
}

// sessionCounter is implemented by stores that can report their size.
type sessionCounter interface {
	Count(ctx context.Context) (int, error)
}

func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions := checkSessions(r.Context(), d)
		resp := readyzResponse{
			Ready:      sessions.OK,
			Components: map[string]componentStatus{"session_store": sessions},
		}

		status := http.StatusOK
		if !resp.Ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, d, status, resp)
	}
}

func checkSessions(parent context.Context, d deps.Deps) componentStatus {
	if d.Sessions == nil {
		return componentStatus{OK: false, Mode: d.StoreMode, Error: "store not initialized"}
	}

	ctx, cancel := context.WithTimeout(parent, readyTimeout)
	defer cancel()

	if err := d.Sessions.Ping(ctx); err != nil {
		return componentStatus{OK: false, Mode: d.StoreMode, Error: err.Error()}
	}

	st := componentStatus{OK: true, Mode: d.StoreMode}
	if c, ok := d.Sessions.(sessionCounter); ok {
		if n, err := c.Count(ctx); err == nil {
			st.Sessions = &n
		}
	}
	return st
}
