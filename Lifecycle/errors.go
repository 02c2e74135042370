package Lifecycle

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfMemory indicates that the allocator refused a request.
	ErrOutOfMemory = errors.New("lifecycle: out of memory")

	// ErrNilPointer indicates that Confirm found a nil pointer in its batch.
	ErrNilPointer = errors.New("lifecycle: nil pointer")
)

// ConstructError is returned by the bulk construction functions after the elements constructed before Index have
// been destroyed again.
type ConstructError struct {
	Index int
	Err   error
}

func (e *ConstructError) Error() string {
	return fmt.Sprintf("lifecycle: construct element %d: %v", e.Index, e.Err)
}

func (e *ConstructError) Unwrap() error {
	return e.Err
}
