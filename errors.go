package huffpack

import (
	"errors"
)

// ErrEmptyInput is reported when an operation that needs at least one input
// byte receives none. Use errors.Is to test for it.
var ErrEmptyInput = errors.New("huffpack: empty input")

// ErrCorruptContainer is reported when a serialized container fails
// validation: bad magic, impossible header fields, a malformed tree section,
// or a payload that does not decode to exactly the declared symbol count.
// Use errors.Is to test for it.
var ErrCorruptContainer = errors.New("huffpack: corrupt container")
