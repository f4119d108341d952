package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/ldsnotes/internal/httpserver/deps"
)

// maxContentURIs bounds a single batched content request.
const maxContentURIs = 50

// Content returns the readable view of every ?uri=, in request order.
func Content(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uris := r.URL.Query()["uri"]
		switch {
		case len(uris) == 0:
			badRequest(w, d, "at least one uri parameter is required")
			return
		case len(uris) > maxContentURIs:
			badRequest(w, d, "too many uri parameters")
			return
		}

		views, err := d.Content.FetchContent(r.Context(), uris)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, d, http.StatusOK, views)
	}
}
