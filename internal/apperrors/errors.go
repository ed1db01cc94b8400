// Package apperrors defines the error taxonomy shared by services and
// handlers. Services return *Error values instead of panicking or leaking
// database errors; handlers translate the Code to an HTTP status at a
// single boundary.
package apperrors

import "errors"

type Code string

const (
	CodeValidation      Code = "validation"
	CodeUnauthenticated Code = "unauthenticated"
	CodeForbidden       Code = "forbidden"
	CodeNotFound        Code = "not_found"
	CodeConflict        Code = "conflict"
	CodeUpload          Code = "upload_failed"
	CodeUnavailable     Code = "unavailable"
	CodeInternal        Code = "internal"
)

type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Validation(message string) *Error      { return New(CodeValidation, message) }
func Unauthenticated(message string) *Error { return New(CodeUnauthenticated, message) }
func Forbidden(message string) *Error       { return New(CodeForbidden, message) }
func NotFound(message string) *Error        { return New(CodeNotFound, message) }
func Conflict(message string) *Error        { return New(CodeConflict, message) }
func Upload(message string) *Error          { return New(CodeUpload, message) }
func Unavailable(message string) *Error     { return New(CodeUnavailable, message) }
func Internal(message string) *Error        { return New(CodeInternal, message) }

// CodeOf extracts the taxonomy code from any error. Errors that did not
// originate in a service are treated as internal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
