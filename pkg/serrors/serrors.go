// Package serrors provides structured, coded errors. Codes are stable
// identifiers callers can match on; messages are human-readable and may
// change between releases.
package serrors

import "fmt"

type Error struct {
	Code    string
	Message string
	Hint    string
}

// NewError constructs a coded error. Hint is optional advice for the
// operator and may be empty.
func NewError(code, message, hint string) *Error {
	return &Error{Code: code, Message: message, Hint: hint}
}

func (e *Error) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Hint)
}

// Is matches errors by code so that sentinel values created once can be
// compared against wrapped or reconstructed instances.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithMessage returns a copy of e with a more specific message, keeping
// the code so errors.Is against the sentinel still succeeds.
func (e *Error) WithMessage(format string, args ...any) *Error {
	return &Error{Code: e.Code, Message: fmt.Sprintf(format, args...), Hint: e.Hint}
}
