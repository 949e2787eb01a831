package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error represents an application error carrying an HTTP-style status code
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error with the same code and message, so wrapped
// copies of a sentinel still satisfy errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap returns a copy of the sentinel with err attached
func Wrap(sentinel *Error, err error) *Error {
	return New(sentinel.Code, sentinel.Message, err)
}

// FromStatus builds the error returned for a non-2xx response
func FromStatus(code int, statusText string) *Error {
	if statusText == "" {
		statusText = http.StatusText(code)
	}
	return New(code, fmt.Sprintf("HTTP %d: %s", code, statusText), nil)
}

// StatusCode reports the status code carried by err, or 0 if it has none
func StatusCode(err error) int {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return 0
}

// Common error types
var (
	ErrBadRequest         = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized       = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrForbidden          = New(http.StatusForbidden, "Forbidden", nil)
	ErrNotFound           = New(http.StatusNotFound, "Not found", nil)
	ErrInternalServer     = New(http.StatusInternalServerError, "Internal server error", nil)
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, "Service unavailable", nil)
)

// Authentication error types. ErrNoToken carries no status: it is raised
// before any request is sent.
var (
	ErrNoToken              = New(0, "No authentication token found", nil)
	ErrAuthenticationFailed = New(http.StatusUnauthorized, "Authentication failed", nil)
	ErrInvalidToken         = New(http.StatusUnauthorized, "Invalid token", nil)
)

// Validation error types
var (
	ErrValidation   = New(http.StatusBadRequest, "Validation error", nil)
	ErrInvalidInput = New(http.StatusBadRequest, "Invalid input", nil)
)

// Storage error types
var (
	ErrStorageUnavailable = New(http.StatusServiceUnavailable, "Storage unavailable", nil)
	ErrUnknownBackend     = New(http.StatusBadRequest, "Unknown storage backend", nil)
)
