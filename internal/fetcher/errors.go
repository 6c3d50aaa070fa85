package fetcher

import (
	"errors"
	"fmt"
)

var ErrFetch = errors.New("fetch error")

// FetchError reports a failed search request. StatusCode is zero when no
// response was received.
type FetchError struct {
	Query      string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %q: status %d: %v", e.Query, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %q: %v", e.Query, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}
