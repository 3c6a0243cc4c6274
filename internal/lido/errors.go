package lido

import "errors"

var (
	// ErrUnexpectedField is returned when a chunk arrives in a state the active
	// selector's field sequence does not recognize.
	ErrUnexpectedField = errors.New("unexpected field")
	// ErrMalformedLength is returned when an array length prefix is zero or does not fit 16 bits.
	ErrMalformedLength = errors.New("malformed length")
	ErrUnknownSelector = errors.New("unknown selector")
	ErrInvalidScreen   = errors.New("invalid screen")

	// ErrMalformedCalldata is returned by Init when the call data cannot carry a selector
	// and whole 32-byte parameters.
	ErrMalformedCalldata = errors.New("malformed calldata")
	// ErrIncomplete is returned when the call data ends before the field sequence completes.
	ErrIncomplete = errors.New("incomplete call data")
)
