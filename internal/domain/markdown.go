package domain

import (
	"fmt"
	"strings"
)

// DefaultWrap marks highlighted words in Markdown output.
const DefaultWrap = "=="

func (b *Bookmark) Markdown(string) string {
	label := b.Reference
	if label == "" {
		label = b.Headline
	}
	if b.URL == "" {
		return label
	}
	return fmt.Sprintf("[%s](%s)", label, b.URL)
}

func (j *Journal) Markdown(string) string {
	if j.Title == "" {
		return j.NoteBody
	}
	if j.NoteBody == "" {
		return "# " + j.Title
	}
	return "# " + j.Title + "\n\n" + j.NoteBody
}

// Markdown returns FullText with the first occurrence of HighlightedText
// wrapped on both sides.
func (h *Highlight) Markdown(wrap string) string {
	return WrapFirst(h.FullText, h.HighlightedText, wrap)
}

// WrapFirst wraps the first literal occurrence of hl in full. An empty hl, or
// one not found in full, leaves full unchanged.
func WrapFirst(full, hl, wrap string) string {
	if wrap == "" {
		wrap = DefaultWrap
	}
	if hl == "" {
		return full
	}
	return strings.Replace(full, hl, wrap+hl+wrap, 1)
}

// MarkdownSeparator goes between annotations rendered by RenderMarkdown.
const MarkdownSeparator = "\n\n---\n\n"

// RenderMarkdown renders anns in order, separated by a horizontal rule.
func RenderMarkdown(anns []Annotation, wrap string) string {
	parts := make([]string, 0, len(anns))
	for _, a := range anns {
		parts = append(parts, a.Markdown(wrap))
	}
	return strings.Join(parts, MarkdownSeparator)
}
