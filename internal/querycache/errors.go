package querycache

import (
	"errors"
	"fmt"

	"github.com/rpattn/clientdesk/internal/domain"
)

var (
	// ErrFetchFailed matches every error caused by an unreachable or failing source.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrSuperseded is returned by View when a newer filter replaced the one being fetched.
	ErrSuperseded = errors.New("superseded by a newer filter")
)

// FetchError carries the filter whose fetch failed and the source error.
type FetchError struct {
	Filter domain.ClientFilter
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed for filter %+v: %v", e.Filter, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrFetchFailed) true for every FetchError.
func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }
