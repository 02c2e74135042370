package Arrays

import "errors"

// ErrOutOfRange indicates a negative length or an offset range that doesn't fit the array.
var ErrOutOfRange = errors.New("arrays: range out of bounds")
