package task

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTitle    = errors.New("task title cannot be empty")
	ErrTaskNotFound  = errors.New("task not found")
	ErrInvalidStatus = errors.New("invalid status value")
	ErrInvalidDay    = errors.New("invalid day key")

	// ErrMalformedTask marks a record the store refuses to hold because it
	// could never be saved. It does not wrap ErrPersistence.
	ErrMalformedTask = errors.New("malformed task record")
)

// Persistence failures. Every sub-kind wraps ErrPersistence so callers can
// match either the family or the specific kind with errors.Is.
var (
	ErrPersistence  = errors.New("persistence failure")
	ErrEncoding     = fmt.Errorf("%w: encoding", ErrPersistence)
	ErrDecoding     = fmt.Errorf("%w: decoding", ErrPersistence)
	ErrWrite        = fmt.Errorf("%w: write", ErrPersistence)
	ErrRead         = fmt.Errorf("%w: read", ErrPersistence)
	ErrSlotNotFound = errors.New("storage slot has never been written")
)
