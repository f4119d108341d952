package annotations

import (
	"strings"

	"github.com/MrSnakeDoc/ldsnotes/internal/content"
	"github.com/MrSnakeDoc/ldsnotes/internal/domain"
	"github.com/MrSnakeDoc/ldsnotes/internal/markup"
)

// FetchKey is the content API key for a URI in a locale: "/{locale}{uri}".
func FetchKey(locale, uri string) string {
	return "/" + locale + uri
}

// URL links to the annotated content on the study site. With several
// fragments the last fragment's paragraph id is appended as a range end,
// e.g. ".../hel/3.p29-p31?lang=eng".
func URL(locale string, uris []string) string {
	if len(uris) == 0 {
		return ""
	}
	u := domain.StudyURL + uris[0]
	if len(uris) > 1 {
		last := uris[len(uris)-1]
		if i := strings.LastIndexByte(last, '.'); i >= 0 {
			u += "-" + last[i+1:]
		}
	}
	return u + "?lang=" + locale
}

func newBase(r Record, kind domain.Kind) domain.Base {
	folders := make([]string, 0, len(r.Folders))
	for _, f := range r.Folders {
		folders = append(folders, f.ID)
	}
	return domain.Base{
		ID:         r.ID,
		Kind:       kind,
		Locale:     r.Locale,
		Tags:       dedupe(r.Tags),
		FolderIDs:  dedupe(folders),
		LastUpdate: parseTime(r.LastUpdated),
	}
}

func newBookmark(r Record) *domain.Bookmark {
	b := &domain.Bookmark{Base: newBase(r, domain.KindBookmark)}
	if r.Bookmark != nil {
		b.Headline = r.Bookmark.Headline
		if b.Headline == "" {
			b.Headline = r.Bookmark.Name
		}
		b.Reference = r.Bookmark.ReferenceURIDisplayText
		b.Publication = r.Bookmark.Publication
		if r.Bookmark.URI != "" {
			b.URL = URL(r.Locale, []string{r.Bookmark.URI})
		}
	}
	return b
}

func newJournal(r Record, kind domain.Kind) domain.Journal {
	j := domain.Journal{Base: newBase(r, kind)}
	if r.Note != nil {
		j.Title = r.Note.Title
		j.NoteBody = r.Note.Content
	}
	return j
}

// newHighlight pairs the record's spans with frags by position.
func newHighlight(r Record, kind domain.Kind, frags []content.Record) domain.Highlight {
	h := domain.Highlight{Journal: newJournal(r, kind)}
	spans := spans(r)
	if len(spans) == 0 {
		return h
	}
	h.Color = spans[0].Color

	uris := make([]string, 0, len(spans))
	texts := make([]string, 0, len(spans))
	hls := make([]string, 0, len(spans))
	h.Fragments = make([]domain.Fragment, 0, len(spans))
	for i, s := range spans {
		indexed := fragmentText(frags[i])
		text := markup.Display(indexed)
		hl := markup.Resolve(indexed, int(s.StartOffset), int(s.EndOffset))
		uris = append(uris, s.URI)
		texts = append(texts, text)
		hls = append(hls, hl)
		h.Fragments = append(h.Fragments, domain.Fragment{
			URI:         s.URI,
			Text:        text,
			Highlighted: hl,
			StartOffset: int(s.StartOffset),
			EndOffset:   int(s.EndOffset),
		})
	}

	h.Passage = newPassage(r.Locale, uris, texts, frags[0])
	h.HighlightedText = strings.Join(hls, "\n")
	return h
}

func newReference(r Record, hlFrags, refFrags []content.Record) *domain.Reference {
	ref := &domain.Reference{Highlight: newHighlight(r, domain.KindReference, hlFrags)}
	if len(r.Refs) == 0 {
		return ref
	}
	uris := make([]string, 0, len(r.Refs))
	texts := make([]string, 0, len(r.Refs))
	for i, l := range r.Refs {
		uris = append(uris, l.URI)
		texts = append(texts, markup.Display(fragmentText(refFrags[i])))
	}
	ref.Ref = newPassage(refLocale(r, r.Refs[0]), uris, texts, refFrags[0])
	return ref
}

func newPassage(locale string, uris, texts []string, first content.Record) domain.Passage {
	return domain.Passage{
		FullText:    strings.Join(texts, "\n"),
		URL:         URL(locale, uris),
		Headline:    first.Headline,
		Reference:   first.ReferenceURIDisplayText,
		Publication: first.Publication,
	}
}

// fragmentText is the indexed text of every paragraph of a fragment, joined
// so word offsets run across paragraph boundaries.
func fragmentText(rec content.Record) string {
	parts := make([]string, 0, len(rec.Content))
	for _, p := range rec.Content {
		parts = append(parts, markup.CleanIndexed(p.Markup))
	}
	return strings.Join(parts, " ")
}

func spans(r Record) []Span {
	if r.Highlight == nil {
		return nil
	}
	return r.Highlight.Content
}

func refLocale(r Record, l RefLink) string {
	if l.Locale != "" {
		return l.Locale
	}
	return r.Locale
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
