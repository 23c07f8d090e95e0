package journal

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation targets a record id that does not exist.
var ErrNotFound = errors.New("record not found")

// ValidationError reports user input that cannot be stored.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AmbiguousIDError is returned when an id prefix matches more than one record.
type AmbiguousIDError struct {
	Prefix  string
	Matches int
}

func (e AmbiguousIDError) Error() string {
	return fmt.Sprintf("id prefix %q matches %d records", e.Prefix, e.Matches)
}
