package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDispatch is returned when a dispatch is attempted without a fully resolved path
	ErrInvalidDispatch = errors.New("nothing to connect to: select a resource at the deepest level first")

	// ErrUnknownKind is returned for a resource kind that has no hierarchy definition
	ErrUnknownKind = errors.New("unknown resource kind")

	// ErrUnsupportedAction is returned when a kind does not offer the requested action
	ErrUnsupportedAction = errors.New("action not supported for this resource kind")
)

// FetchError wraps a directory failure for one level
type FetchError struct {
	Level int
	Title string
	Err   error
}

func (e *FetchError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("list %s: %v", e.Title, e.Err)
	}
	return fmt.Sprintf("list level %d: %v", e.Level, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
