package domain

import (
	"fmt"
	"strings"
)

// Kind is the "type" tag of an annotation.
type Kind string

const (
	KindBookmark  Kind = "bookmark"
	KindJournal   Kind = "journal"
	KindHighlight Kind = "highlight"
	KindReference Kind = "reference"
)

// Kinds lists every supported kind, in the order the notes API documents them.
func Kinds() []Kind {
	return []Kind{KindBookmark, KindHighlight, KindJournal, KindReference}
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindBookmark, KindJournal, KindHighlight, KindReference:
		return true
	}
	return false
}

func (k Kind) String() string { return string(k) }

// ParseKind accepts a kind name in any case, surrounding spaces ignored.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown annotation type %q", s)
	}
	return k, nil
}
