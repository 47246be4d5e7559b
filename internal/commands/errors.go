package commands

import "fmt"

// UserError is a problem with what the visitor typed. It is shown to the
// visitor and never ends the session.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// NewUserError creates a user-facing error.
func NewUserError(msg string) *UserError {
	return &UserError{Message: msg}
}

// NewUserErrorf creates a user-facing error from a format string.
func NewUserErrorf(format string, args ...any) *UserError {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}
