package markup

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Unbounded is the offset sentinel meaning "from the beginning" when used as a
// start offset and "through the end" when used as an end offset.
const Unbounded = -1

// wordDelims matches one word boundary. A run of delimiters is one boundary.
var wordDelims = regexp.MustCompile(`[ —()#¶\x{E000}]+`)

// ErrOffsetOutOfRange is matched by every *OffsetError.
var ErrOffsetOutOfRange = errors.New("offset out of range")

// OffsetError reports word offsets that do not fit the text they index.
type OffsetError struct {
	Start int
	End   int
	Words int
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("word offsets %d..%d do not fit a text of %d words", e.Start, e.End, e.Words)
}

func (e *OffsetError) Is(target error) bool { return target == ErrOffsetOutOfRange }

// Resolve returns the slice of cleaned text between two 1-indexed word
// offsets, both inclusive as the notes API reports them. Either offset may be
// Unbounded. text is normally the output of CleanIndexed.
//
// Resolve never fails: offsets past the end of the text yield a truncated or
// empty string. The result is always a substring of Display(text).
func Resolve(text string, start, end int) string {
	from := 0
	if start != Unbounded && start > 1 {
		parts := wordDelims.Split(text, start)
		from = len(text) - len(parts[len(parts)-1])
	}

	to := len(text)
	if end != Unbounded && end > 0 {
		parts := wordDelims.Split(text, end+1)
		to = len(text) - len(parts[len(parts)-1])
	}

	if to <= from {
		return ""
	}
	return strings.TrimSpace(Display(text[from:to]))
}

// ResolveStrict is Resolve with validation, for checking offsets against
// known-good data. Offsets must be Unbounded or within 1..WordCount(text), and
// start must not come after end.
func ResolveStrict(text string, start, end int) (string, error) {
	words := WordCount(text)
	bad := func() error { return &OffsetError{Start: start, End: end, Words: words} }

	if start != Unbounded && (start < 1 || start > words) {
		return "", bad()
	}
	if end != Unbounded && (end < 1 || end > words) {
		return "", bad()
	}
	if start != Unbounded && end != Unbounded && start > end {
		return "", bad()
	}
	return Resolve(text, start, end), nil
}

// WordCount counts the words Resolve indexes.
func WordCount(text string) int {
	n := 0
	for _, w := range wordDelims.Split(text, -1) {
		if w != "" {
			n++
		}
	}
	return n
}
