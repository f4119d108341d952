package annotations

import (
	"errors"
	"fmt"
)

// ErrUnknownType is matched by every *UnknownTypeError.
var ErrUnknownType = errors.New("unknown annotation type")

// UnknownTypeError names a record whose type tag is not a known kind.
type UnknownTypeError struct {
	Type string
	ID   string
}

func (e *UnknownTypeError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("unknown annotation type %q", e.Type)
	}
	return fmt.Sprintf("annotation %s: unknown annotation type %q", e.ID, e.Type)
}

func (e *UnknownTypeError) Is(target error) bool { return target == ErrUnknownType }
