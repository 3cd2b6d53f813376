// Package apperr defines the error type every service returns to the HTTP layer.
package apperr

import (
	"errors"
	"net/http"
)

// Error is a domain failure carrying a message, a status-like code and optional
// structured details for the client.
type Error struct {
	Message string
	Code    int
	Details map[string]any
	Err     error
}

func New(message string, code int, details map[string]any) *Error {
	return &Error{Message: message, Code: code, Details: details}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports malformed or missing input. It is raised before any store call.
func Validation(message string, details map[string]any) *Error {
	return New(message, http.StatusBadRequest, details)
}

// NotFound reports a store call that executed but matched no rows.
func NotFound(message string, details map[string]any) *Error {
	return New(message, http.StatusNotFound, details)
}

// Conflict reports a uniqueness violation.
func Conflict(message string, details map[string]any) *Error {
	return New(message, http.StatusConflict, details)
}

func Unauthorized(message string) *Error {
	return New(message, http.StatusUnauthorized, nil)
}

// Unexpected wraps a failure of the store or another dependency.
func Unexpected(message string, err error) *Error {
	return &Error{Message: message, Code: http.StatusInternalServerError, Err: err}
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Code returns the status-like code of err, 500 when err is not an *Error
// or carries no code.
func Code(err error) int {
	if e, ok := As(err); ok && e.Code > 0 {
		return e.Code
	}
	return http.StatusInternalServerError
}
