package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup key has no stored record.
// For preferences this is not a failure: callers fall back to defaults.
var ErrNotFound = errors.New("not found")

// StorageError wraps a storage failure that survived one retry.
// It must be surfaced, never swallowed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ClassificationError wraps a failure of the underlying polarity scorer.
// When it occurs the message is not logged to history and the mood slot
// is left untouched.
type ClassificationError struct {
	Err error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classification failed: %v", e.Err)
}

func (e *ClassificationError) Unwrap() error { return e.Err }
