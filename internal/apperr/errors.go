// Package apperr defines the error kinds surfaced to API clients.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is the stable machine-readable error kind.
type Code string

const (
	CodeBadRequest   Code = "BAD_REQUEST"
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInternal     Code = "INTERNAL_ERROR"
)

var statusByCode = map[Code]int{
	CodeBadRequest:   http.StatusBadRequest,
	CodeValidation:   http.StatusBadRequest,
	CodeUnauthorized: http.StatusUnauthorized,
	CodeForbidden:    http.StatusForbidden,
	CodeNotFound:     http.StatusNotFound,
	CodeInternal:     http.StatusInternalServerError,
}

// Status returns the HTTP status for the code.
func (c Code) Status() int {
	if s, ok := statusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error is a client-facing failure. Cause is kept for logging only.
type Error struct {
	Code    Code
	Message string
	Details map[string][]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Status returns the HTTP status for the error kind.
func (e *Error) Status() int {
	return e.Code.Status()
}

// BadRequest reports a missing or malformed query or path parameter.
func BadRequest(message string) *Error {
	return &Error{Code: CodeBadRequest, Message: message}
}

// Validation reports a request body that fails schema constraints.
func Validation(details map[string][]string) *Error {
	return &Error{Code: CodeValidation, Message: "Validation failed", Details: details}
}

// Unauthorized reports a missing or unrecognised session credential.
func Unauthorized() *Error {
	return &Error{Code: CodeUnauthorized, Message: "Unauthorized"}
}

// Forbidden reports a record not owned by the caller.
func Forbidden() *Error {
	return &Error{Code: CodeForbidden, Message: "Forbidden"}
}

// NotFound reports a record that does not exist.
func NotFound(what string) *Error {
	return &Error{Code: CodeNotFound, Message: what + " not found"}
}

// Internal wraps an unexpected failure.
func Internal(cause error) *Error {
	return &Error{Code: CodeInternal, Message: "Internal Server Error", Cause: cause}
}

// From normalises any error into an *Error. Anything that is not already an
// *Error becomes INTERNAL_ERROR.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
