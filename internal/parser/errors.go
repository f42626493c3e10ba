package parser

import (
	"errors"
	"fmt"
)

// ErrMalformedInput is matched by every parse failure via errors.Is.
var ErrMalformedInput = errors.New("malformed input")

// MalformedInputError describes why a declaration could not be parsed.
// Offset is a byte offset into the flattened input, or -1 when the failure
// is not tied to a position.
type MalformedInputError struct {
	Reason string
	Input  string
	Offset int
}

func (e *MalformedInputError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("malformed input at offset %d: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf("malformed input: %s", e.Reason)
}

// Is reports whether target is ErrMalformedInput.
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// malformed builds a MalformedInputError for the flattened input src.
func malformed(src string, offset int, format string, args ...any) *MalformedInputError {
	return &MalformedInputError{
		Reason: fmt.Sprintf(format, args...),
		Input:  src,
		Offset: offset,
	}
}
