// Package derrors defines the closed error taxonomy shared by services and
// the HTTP transport. Services classify every failure into one of these codes
// at the component boundary; the transport maps codes to status codes without
// inspecting messages.
package derrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a category of failure. The set is closed: handlers switch
// on codes, so adding one means revisiting the transport mapping.
type Code string

const (
	// CodeValidation marks malformed caller input; the message names the
	// violated constraint.
	CodeValidation Code = "validation"
	// CodeBadRequest marks a request that cannot be parsed at all.
	CodeBadRequest Code = "bad_request"
	// CodeConflict marks a uniqueness violation.
	CodeConflict Code = "conflict"
	// CodeUnauthorized marks bad credentials or an invalid, expired, or
	// orphaned token. Messages stay deliberately uninformative.
	CodeUnauthorized Code = "unauthorized"
	// CodeNotFound marks a missing record where existence is not secret.
	CodeNotFound Code = "not_found"
	// CodeInternal marks infrastructure failure; reported generically.
	CodeInternal Code = "internal"
)

// Error carries a code and a caller-facing message, optionally wrapping an
// underlying cause for logs.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error. The cause is kept
// for logging but never rendered to callers.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) is a domain error with
// the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that never passed a service boundary.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf extracts the caller-facing message, defaulting to a generic one.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}

// ToHTTPStatus maps a code onto the status the transport should emit. The
// mapping lives here so every handler renders failures identically.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation:
		return http.StatusUnprocessableEntity
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
