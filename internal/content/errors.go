package content

import (
	"errors"
	"fmt"
)

var (
	// ErrFetch is matched by every *FetchError.
	ErrFetch = errors.New("content fetch failed")
	// ErrMissingContent is matched by every *MissingContentError.
	ErrMissingContent = errors.New("content missing from response")
)

// FetchError reports a batched content call that did not succeed: transport
// failure, non-2xx status or an undecodable body.
type FetchError struct {
	URIs   int // number of URIs in the failed batch
	Status int // HTTP status, 0 when no response was received
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %d content uris: status %d: %v", e.URIs, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %d content uris: %v", e.URIs, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// MissingContentError names a requested URI the content API left out.
type MissingContentError struct {
	URI string
}

func (e *MissingContentError) Error() string {
	return fmt.Sprintf("content for %q not in response", e.URI)
}

func (e *MissingContentError) Is(target error) bool { return target == ErrMissingContent }
