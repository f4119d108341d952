package notes

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/ldsnotes/internal/domain"
)

const (
	// DefaultCount is the page size when a query sets none.
	DefaultCount = 50
)

var (
	// ErrInvalidType is matched by every *InvalidTypeError.
	ErrInvalidType = errors.New("invalid annotation type filter")
	// ErrInvalidRange is returned for a negative start or count.
	ErrInvalidRange = errors.New("invalid annotation range")
)

// InvalidTypeError names a type filter that is not a known kind.
type InvalidTypeError struct {
	Type string
}

func (e *InvalidTypeError) Error() string {
	names := make([]string, 0, 4)
	for _, k := range domain.Kinds() {
		names = append(names, k.String())
	}
	return fmt.Sprintf("invalid annotation type %q (want one of %s)", e.Type, strings.Join(names, ", "))
}

func (e *InvalidTypeError) Is(target error) bool { return target == ErrInvalidType }

// Query selects a page of annotations. Start is 1-indexed.
type Query struct {
	Start    int
	Count    int
	Types    []string // bookmark, highlight, journal, reference
	Tag      string   // tag name
	FolderID string
	Folder   string // folder name, resolved to FolderID by Service
	Keyword  string
	AsHTML   bool // ask for note bodies as HTML
}

// Validate checks the range and the type names. It never touches the network.
// Zero Start and Count mean "first page" and DefaultCount.
func (q Query) Validate() error {
	if q.Start < 0 || q.Count < 0 {
		return fmt.Errorf("%w: start=%d count=%d", ErrInvalidRange, q.Start, q.Count)
	}
	for _, t := range q.Types {
		if _, err := domain.ParseKind(t); err != nil {
			return &InvalidTypeError{Type: t}
		}
	}
	return nil
}

// kinds returns the normalized type filter. Call after Validate.
func (q Query) kinds() []string {
	out := make([]string, 0, len(q.Types))
	for _, t := range q.Types {
		k, _ := domain.ParseKind(t)
		out = append(out, k.String())
	}
	return out
}

func (q Query) values() url.Values {
	start := q.Start
	if start < 1 {
		start = 1
	}
	count := q.Count
	if count < 1 {
		count = DefaultCount
	}

	v := url.Values{}
	v.Set("start", strconv.Itoa(start))
	v.Set("numberToReturn", strconv.Itoa(count))
	if len(q.Types) > 0 {
		v.Set("type", strings.Join(q.kinds(), ","))
	}
	if q.Tag != "" {
		v.Set("tags", q.Tag)
	}
	if q.FolderID != "" {
		v.Set("folderId", q.FolderID)
	}
	if q.Keyword != "" {
		v.Set("searchPhrase", q.Keyword)
	}
	if q.AsHTML {
		v.Set("notesAsHtml", "true")
	}
	return v
}
