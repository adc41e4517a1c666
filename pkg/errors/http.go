package errors

import (
	"errors"
	"net/http"
)

// HTTPError is an error that carries the status it should be rendered with.
type HTTPError struct {
	Code       int
	Message    string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a 400-class error with the given business code.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewInternalError creates a 500-class error with the given business code.
func NewInternalError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:       code,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

// WithStatus returns a copy of e rendered with the given HTTP status.
func (e *HTTPError) WithStatus(status int) *HTTPError {
	cp := *e
	cp.StatusCode = status
	return &cp
}

// ErrInternalServerError is the generic fallback for unmapped errors.
var ErrInternalServerError = NewInternalError(500, "internal server error")

// AsHTTPError extracts an HTTPError from err if one is present in the chain.
func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}
