package safetensors

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrTruncated      = errors.New("safetensors: file truncated")
	ErrHeaderTooLarge = errors.New("safetensors: header exceeds maximum size")
	ErrInvalidHeader  = errors.New("safetensors: invalid header")
	ErrClosed         = errors.New("safetensors: file closed")
)

// FormatError describes a structural problem with a single tensor entry.
type FormatError struct {
	Tensor  string // tensor name, empty for file-level problems
	Reason  string // short machine-friendly reason, e.g. "out_of_bounds"
	Details string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Tensor != "" {
		return fmt.Sprintf("safetensors: %s: tensor %q: %s", e.Reason, e.Tensor, e.Details)
	}
	return fmt.Sprintf("safetensors: %s: %s", e.Reason, e.Details)
}

// Unwrap lets callers match any FormatError against ErrInvalidHeader.
func (e *FormatError) Unwrap() error {
	return ErrInvalidHeader
}
