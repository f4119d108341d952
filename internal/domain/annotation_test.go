package domain

import "testing"

func TestHighlightMarkdown(t *testing.T) {
	tests := []struct {
		name string
		full string
		hl   string
		wrap string
		want string
	}{
		{name: "default wrap", full: "A B C D", hl: "B C", wrap: "==", want: "A ==B C== D"},
		{name: "empty wrap falls back", full: "A B C D", hl: "B C", want: "A ==B C== D"},
		{name: "custom wrap", full: "A B C D", hl: "D", wrap: "**", want: "A B C **D**"},
		{name: "first occurrence only", full: "x y x", hl: "x", wrap: "==", want: "==x== y x"},
		{name: "empty highlight", full: "A B", hl: "", wrap: "==", want: "A B"},
		{name: "not found", full: "A B", hl: "Z", wrap: "==", want: "A B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Highlight{Passage: Passage{FullText: tt.full, HighlightedText: tt.hl}}
			if got := h.Markdown(tt.wrap); got != tt.want {
				t.Errorf("Markdown(%q) = %q, want %q", tt.wrap, got, tt.want)
			}
		})
	}
}

func TestReferenceMarkdownUsesHighlight(t *testing.T) {
	r := &Reference{
		Highlight: Highlight{Passage: Passage{FullText: "A B C D", HighlightedText: "B C"}},
		Ref:       Passage{FullText: "other text"},
	}
	if got := r.Markdown("=="); got != "A ==B C== D" {
		t.Errorf("Markdown() = %q, want %q", got, "A ==B C== D")
	}
}

func TestBookmarkMarkdown(t *testing.T) {
	b := &Bookmark{Headline: "Helaman 3", Reference: "Helaman 3:29", URL: "https://x/y"}
	if got := b.Markdown(""); got != "[Helaman 3:29](https://x/y)" {
		t.Errorf("Markdown() = %q", got)
	}
	b = &Bookmark{Headline: "Helaman 3"}
	if got := b.Markdown(""); got != "Helaman 3" {
		t.Errorf("Markdown() = %q, want %q", got, "Helaman 3")
	}
}

func TestJournalMarkdown(t *testing.T) {
	tests := []struct {
		title, body, want string
	}{
		{"Faith", "Notes here", "# Faith\n\nNotes here"},
		{"", "Notes here", "Notes here"},
		{"Faith", "", "# Faith"},
		{"", "", ""},
	}
	for _, tt := range tests {
		j := &Journal{Title: tt.title, NoteBody: tt.body}
		if got := j.Markdown(""); got != tt.want {
			t.Errorf("Markdown(%q, %q) = %q, want %q", tt.title, tt.body, got, tt.want)
		}
	}
}

func TestAnnotationIdentity(t *testing.T) {
	base := Base{ID: "abc", Kind: KindReference, Tags: []string{"Faith"}, FolderIDs: []string{"f1"}}
	var a Annotation = &Reference{Highlight: Highlight{Journal: Journal{Base: base}}}

	if a.AnnotationID() != "abc" {
		t.Errorf("AnnotationID() = %q, want abc", a.AnnotationID())
	}
	if a.AnnotationKind() != KindReference {
		t.Errorf("AnnotationKind() = %q, want reference", a.AnnotationKind())
	}
	r := a.(*Reference)
	if !r.HasTag("Faith") || r.HasTag("Hope") {
		t.Errorf("HasTag() mismatch for %v", r.Tags)
	}
	if !r.InFolder("f1") {
		t.Errorf("InFolder(f1) = false, want true")
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "bookmark", want: KindBookmark},
		{in: " Highlight ", want: KindHighlight},
		{in: "JOURNAL", want: KindJournal},
		{in: "reference", want: KindReference},
		{in: "unsupported", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKindsAreValid(t *testing.T) {
	for _, k := range Kinds() {
		if !k.Valid() {
			t.Errorf("%q.Valid() = false", k)
		}
	}
	if Kind("note").Valid() {
		t.Error(`Kind("note").Valid() = true, want false`)
	}
}

func TestRenderMarkdown(t *testing.T) {
	anns := []Annotation{
		&Journal{Title: "One"},
		&Bookmark{Reference: "Helaman 3:29", URL: "https://x/y"},
	}
	want := "# One\n\n---\n\n[Helaman 3:29](https://x/y)"
	if got := RenderMarkdown(anns, ""); got != want {
		t.Errorf("RenderMarkdown() = %q, want %q", got, want)
	}
	if got := RenderMarkdown(nil, ""); got != "" {
		t.Errorf("RenderMarkdown(nil) = %q, want empty", got)
	}
}
