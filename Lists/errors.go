package Lists

import "errors"

var (
	// ErrOutOfRange indicates a negative size.
	ErrOutOfRange = errors.New("lists: size out of range")

	// ErrSelfMove indicates an attempt to move a List's elements into itself.
	ErrSelfMove = errors.New("lists: list moved into itself")
)
