package annotations

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Record is one annotation as returned by the notes API.
type Record struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Locale      string          `json:"locale"`
	LastUpdated string          `json:"lastUpdated"`
	Tags        TagList         `json:"tags"`
	Folders     []FolderRef     `json:"folders"`
	Note        *Note           `json:"note,omitempty"`
	Highlight   *HighlightBlock `json:"highlight,omitempty"`
	Refs        []RefLink       `json:"refs,omitempty"`
	Bookmark    *BookmarkBlock  `json:"bookmark,omitempty"`
}

type Note struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

type HighlightBlock struct {
	Content []Span `json:"content"`
}

// Span is a word range inside one content URI. Offsets are 1-indexed and -1
// means unbounded.
type Span struct {
	URI         string  `json:"uri"`
	StartOffset FlexInt `json:"startOffset"`
	EndOffset   FlexInt `json:"endOffset"`
	Color       string  `json:"color"`
	Style       string  `json:"style,omitempty"`
}

// RefLink points at linked content. Locale defaults to the record's.
type RefLink struct {
	URI    string `json:"uri"`
	Locale string `json:"locale,omitempty"`
}

type FolderRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type BookmarkBlock struct {
	URI                     string `json:"uri"`
	Name                    string `json:"name,omitempty"`
	Headline                string `json:"headline"`
	ReferenceURIDisplayText string `json:"referenceURIDisplayText"`
	Publication             string `json:"publication"`
}

// TagList decodes tags sent either as plain names or as {"name": ...} objects.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		*t = names
		return nil
	}
	var objs []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &objs); err != nil {
		return fmt.Errorf("tags: %w", err)
	}
	out := make([]string, 0, len(objs))
	for _, o := range objs {
		out = append(out, o.Name)
	}
	*t = out
	return nil
}

// FlexInt decodes a JSON number or a numeric string.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = -1
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("offset %s: %w", data, err)
	}
	*f = FlexInt(n)
	return nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTime returns the zero time when no layout matches.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
