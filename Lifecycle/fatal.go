package Lifecycle

import (
	"fmt"
	"os"
)

// FatalError describes a failure there is no safe recovery from: a destructor failing, a destructor failing while
// rolling back a bulk construction, or an operation flagged as infallible failing anyway.
type FatalError struct {
	Op    string
	Index int // -1 when the failure isn't tied to an element of a range.
	Err   error
}

func (e *FatalError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("lifecycle: fatal %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("lifecycle: fatal %s at element %d: %v", e.Op, e.Index, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Terminate is called with a *FatalError and must not return. The default logs the error and exits with status
// 134, the status of an aborted process. Tests may replace it; should it return, the caller panics with the error.
var Terminate = func(err error) {
	L.Error("unrecoverable lifecycle failure", "err", err)
	os.Exit(134)
}

func fatal(op string, index int, err error) {
	fe := &FatalError{Op: op, Index: index, Err: err}
	Terminate(fe)
	panic(fe)
}
