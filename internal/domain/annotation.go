package domain

import "time"

const (
	// SiteURL is the public site annotations link back to.
	SiteURL = "https://www.churchofjesuschrist.org"
	// StudyURL prefixes every content page.
	StudyURL = SiteURL + "/study"
)

// Annotation is one of *Bookmark, *Journal, *Highlight or *Reference.
// The set is closed: callers switch on the concrete type.
type Annotation interface {
	AnnotationID() string
	AnnotationKind() Kind
	// Markdown renders the annotation for reading. Highlights wrap the
	// highlighted words in wrap ("==" when empty).
	Markdown(wrap string) string

	annotation()
}

// Base holds what every annotation carries. Values are copied out of the raw
// record once and never mutated afterwards.
type Base struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// ID is the notes API identifier.
	ID string `json:"id"`

	// Kind is the variant tag.
	Kind Kind `json:"kind"`

	// Locale is the language code content was annotated in.
	// Example: eng
	Locale string `json:"locale"`

	// ─────────────────────────────
	// Classification
	// ─────────────────────────────

	// Tags are the tag names, without duplicates, in record order.
	Tags []string `json:"tags"`

	// FolderIDs are the notebook identifiers, without duplicates, in record order.
	FolderIDs []string `json:"folder_ids"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// LastUpdate is zero when the record carried no parsable timestamp.
	LastUpdate time.Time `json:"last_update"`
}

func (b Base) AnnotationID() string    { return b.ID }
func (b Base) AnnotationKind() Kind    { return b.Kind }
func (b Base) HasTag(name string) bool { return contains(b.Tags, name) }

// InFolder reports whether the annotation is filed in folder id.
func (b Base) InFolder(id string) bool { return contains(b.FolderIDs, id) }

// Bookmark marks a place in content. It needs no content fetch.
type Bookmark struct {
	Base
	Headline    string `json:"headline"`
	Reference   string `json:"reference"`
	Publication string `json:"publication"`
	URL         string `json:"url"`
}

// Journal is a free-standing note.
type Journal struct {
	Base
	Title    string `json:"title"`
	NoteBody string `json:"note_body"`
}

// Passage is resolved content: the text of every fragment plus the metadata
// of the first one.
type Passage struct {
	FullText        string `json:"full_text"`
	HighlightedText string `json:"highlighted_text,omitempty"`
	URL             string `json:"url"`
	Headline        string `json:"headline"`
	Reference       string `json:"reference"`
	Publication     string `json:"publication"`
}

// Fragment is one highlighted content fragment. Highlighted is always a
// substring of Text.
type Fragment struct {
	URI         string `json:"uri"`
	Text        string `json:"text"`
	Highlighted string `json:"highlighted"`
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
}

// Highlight is a marked range of words, optionally with a note.
type Highlight struct {
	Journal
	Color string `json:"color"`
	Passage
	Fragments []Fragment `json:"fragments"`
}

// Reference is a highlight linked to a second piece of content.
type Reference struct {
	Highlight
	Ref Passage `json:"ref"`
}

func (*Bookmark) annotation()  {}
func (*Journal) annotation()   {}
func (*Highlight) annotation() {}
func (*Reference) annotation() {}

var (
	_ Annotation = (*Bookmark)(nil)
	_ Annotation = (*Journal)(nil)
	_ Annotation = (*Highlight)(nil)
	_ Annotation = (*Reference)(nil)
)

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
