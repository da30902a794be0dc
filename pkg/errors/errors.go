package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind partitions failures the way callers need to react to them: the
// request never reached the server, the server rejected it, or the payload
// never left the process.
type Kind string

const (
	KindNetwork    Kind = "network"
	KindHTTP       Kind = "http"
	KindValidation Kind = "validation"
)

// Error represents a typed client failure with HTTP awareness.
type Error struct {
	Kind    Kind   `json:"kind"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewHTTP builds a failure for a non-2xx response.
func NewHTTP(status int, message string) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	return &Error{Kind: KindHTTP, Code: "HTTP_ERROR", Status: status, Message: message}
}

// NewNetwork builds a failure for a request that never reached the server.
func NewNetwork(err error) *Error {
	return &Error{Kind: KindNetwork, Code: "NETWORK_ERROR", Message: "could not reach records service", Err: err}
}

// NewValidation builds a failure for input rejected before submission.
func NewValidation(err error, message string) *Error {
	return &Error{Kind: KindValidation, Code: "VALIDATION_ERROR", Status: http.StatusBadRequest, Message: message, Err: err}
}

// Wrap attaches context to an existing error.
func Wrap(err error, kind Kind, code string, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrUnauthenticated = &Error{Kind: KindHTTP, Code: "UNAUTHENTICATED", Status: http.StatusUnauthorized, Message: "not logged in"}
	ErrNotFound        = &Error{Kind: KindHTTP, Code: "NOT_FOUND", Status: http.StatusNotFound, Message: "resource not found"}
	ErrInternal        = &Error{Kind: KindHTTP, Code: "INTERNAL_ERROR", Status: http.StatusInternalServerError, Message: "internal error"}
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, KindHTTP, ErrInternal.Code, ErrInternal.Message)
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// StatusOf extracts the HTTP status from an error, or zero.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// Message returns the human-readable message views should display.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
