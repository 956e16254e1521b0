package hl7v2

import (
	"errors"
	"fmt"
)

// ErrParse is the root of all parse failures raised by this package.
// Use errors.Is(err, ErrParse) to distinguish a broken message from
// any other failure.
var ErrParse = errors.New("hl7v2: parse error")

// ErrMissingRequiredValue is returned when a mandatory field position
// had no source text. It wraps ErrParse.
var ErrMissingRequiredValue = fmt.Errorf("%w: missing required value", ErrParse)

// genericErr builds a segment-level structural failure wrapping ErrParse.
func genericErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParse, fmt.Sprintf(format, args...))
}
