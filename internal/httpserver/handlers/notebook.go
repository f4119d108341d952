package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/ldsnotes/internal/domain"
	"github.com/MrSnakeDoc/ldsnotes/internal/httpserver/deps"
)

func Tags(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := serviceFor(r, d)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		tags, err := svc.Client().Tags(r.Context())
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		if tags == nil {
			tags = []domain.Tag{}
		}
		writeJSON(w, d, http.StatusOK, tags)
	}
}

func Folders(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := serviceFor(r, d)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		folders, err := svc.Client().Folders(r.Context())
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		if folders == nil {
			folders = []domain.Folder{}
		}
		writeJSON(w, d, http.StatusOK, folders)
	}
}
