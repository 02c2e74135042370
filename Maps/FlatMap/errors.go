package FlatMap

import "errors"

var (
	// ErrInvalidConfig indicates thresholds that would make the table thrash or overfill.
	ErrInvalidConfig = errors.New("flatmap: invalid config")

	// ErrOption indicates an Option whose type parameter doesn't match the Map's.
	ErrOption = errors.New("flatmap: option type mismatch")
)
