package builder

import (
	"errors"
	"fmt"

	"github.com/diewo77/invoice-desk/validation"
)

var (
	ErrInvalidReference = errors.New("invalid_reference")
	ErrIndexOutOfRange  = errors.New("index_out_of_range")
	ErrValidation       = errors.New("validation_failed")
	ErrInvalidQuantity  = errors.New("invalid_quantity")
	ErrDraftClosed      = errors.New("draft_closed")
)

// ReferenceError reports an unknown client or catalog item id.
type ReferenceError struct {
	Kind string // "client" or "item"
	ID   string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s: unknown %s %q", ErrInvalidReference, e.Kind, e.ID)
}

func (e *ReferenceError) Unwrap() error { return ErrInvalidReference }

// IndexError reports a line index outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d, %d line(s)", ErrIndexOutOfRange, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// ValidationError is returned by Save in strict mode.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, e.Violations)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
