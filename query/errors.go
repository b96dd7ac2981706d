package query

import (
	"errors"
	"fmt"
)

var (
	// ErrTableNotSet is matched by every *TableNotSetError.
	ErrTableNotSet = errors.New("query: table is not set")
	// ErrMalformedFilter is matched by every *MalformedFilterError.
	ErrMalformedFilter = errors.New("query: malformed filter")

	ErrInvalidRange = errors.New("query: invalid range")
	ErrNoExecutor   = errors.New("query: no executor configured")
	ErrNotFound     = errors.New("query: no rows")
	ErrNotSingular  = errors.New("query: more than one row")
)

// TableNotSetError reports a clause call or a render on a view that was never
// bound to a table.
type TableNotSetError struct {
	Op string
}

func (e *TableNotSetError) Error() string {
	return fmt.Sprintf("query: %s: table is not set", e.Op)
}

func (e *TableNotSetError) Is(err error) bool { return err == ErrTableNotSet }

// MalformedFilterError reports a filter, index key or column argument the view
// cannot interpret.
type MalformedFilterError struct {
	Op     string
	Key    any
	Reason string
}

func (e *MalformedFilterError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("query: %s: malformed filter %#v: %s", e.Op, e.Key, e.Reason)
	}
	return fmt.Sprintf("query: %s: malformed filter %#v (%T)", e.Op, e.Key, e.Key)
}

func (e *MalformedFilterError) Is(err error) bool { return err == ErrMalformedFilter }
