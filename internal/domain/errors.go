package domain

import (
	"errors"
	"fmt"
)

// Error categories. Handlers map these to HTTP statuses; the message carried
// by Error is shown to the client verbatim.
var (
	ErrNotFound          = errors.New("booking not found")
	ErrValidation        = errors.New("validation failed")
	ErrCapacity          = errors.New("slot capacity exhausted")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrFetch             = errors.New("municipality source unavailable")
)

// Error ties a client-facing message to one of the sentinel categories above.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// Errorf builds an Error of the given category with a formatted message.
func Errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
