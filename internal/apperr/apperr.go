// internal/apperr/apperr.go
package apperr

import (
	"errors"
	"fmt"
)

// Code classifies an error so transport layers can map it to a wire status
// without inspecting message text.
type Code string

const (
	Unauthenticated    Code = "unauthenticated"
	PermissionDenied   Code = "permission-denied"
	InvalidArgument    Code = "invalid-argument"
	NotFound           Code = "not-found"
	AlreadyExists      Code = "already-exists"
	FailedPrecondition Code = "failed-precondition"
	Aborted            Code = "aborted"
	Internal           Code = "internal"
)

// Error is a coded application error. The message is user-visible.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New creates a coded error with a plain message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the code from err, unwrapping as needed.
// Errors without a code are classified as Internal.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return Internal
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
