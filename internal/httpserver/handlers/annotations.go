package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/ldsnotes/internal/domain"
	"github.com/MrSnakeDoc/ldsnotes/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ldsnotes/internal/notes"
)

// Annotations returns the assembled annotations matching the query string
// as a JSON array.
func Annotations(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		anns, ok := searchAnnotations(w, r, d)
		if !ok {
			return
		}
		if anns == nil {
			anns = []domain.Annotation{}
		}
		writeJSON(w, d, http.StatusOK, anns)
	}
}

// AnnotationsMarkdown renders the same result as text/markdown. The wrap
// parameter overrides the highlight marker.
func AnnotationsMarkdown(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		anns, ok := searchAnnotations(w, r, d)
		if !ok {
			return
		}
		body := domain.RenderMarkdown(anns, r.URL.Query().Get("wrap"))

		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}
}

func searchAnnotations(w http.ResponseWriter, r *http.Request, d deps.Deps) ([]domain.Annotation, bool) {
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		badRequest(w, d, err.Error())
		return nil, false
	}
	svc, err := serviceFor(r, d)
	if err != nil {
		writeError(w, r, d, err)
		return nil, false
	}
	anns, err := svc.Search(r.Context(), q)
	if err != nil {
		writeError(w, r, d, err)
		return nil, false
	}
	return anns, true
}

// parseQuery reads start, count, type (repeatable or comma separated), tag,
// folder, folderId, q and html.
func parseQuery(v url.Values) (notes.Query, error) {
	q := notes.Query{
		Tag:      v.Get("tag"),
		Folder:   v.Get("folder"),
		FolderID: v.Get("folderId"),
		Keyword:  v.Get("q"),
	}

	var err error
	if q.Start, err = intParam(v, "start"); err != nil {
		return q, err
	}
	if q.Count, err = intParam(v, "count"); err != nil {
		return q, err
	}
	if s := v.Get("html"); s != "" {
		if q.AsHTML, err = strconv.ParseBool(s); err != nil {
			return q, &paramError{name: "html", value: s}
		}
	}
	for _, t := range v["type"] {
		for _, part := range strings.Split(t, ",") {
			if part = strings.TrimSpace(part); part != "" {
				q.Types = append(q.Types, part)
			}
		}
	}
	return q, nil
}

type paramError struct {
	name, value string
}

func (e *paramError) Error() string {
	return "invalid " + e.name + " parameter " + strconv.Quote(e.value)
}

func intParam(v url.Values, name string) (int, error) {
	s := v.Get(name)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &paramError{name: name, value: s}
	}
	return n, nil
}
