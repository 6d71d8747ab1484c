package cachefetch

import (
	"errors"
	"fmt"
)

// ErrEmptyKey reports that the key template resolved to an empty string for
// the current record. This is a failure distinct from a cache miss: nothing
// was looked up because there was nothing to look up.
var ErrEmptyKey = errors.New("cachefetch: resolved cache key is empty")

// FetchError wraps a transport or value-decode error for a single key.
// It is carried on the failure outcome for observability; keys after the
// failing one in resolution order were never queried.
type FetchError struct {
	Key string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("cachefetch: fetch %q: %v", e.Key, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
