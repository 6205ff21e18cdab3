// Package errs defines the error type shared by the client, the schedule helpers and the CLI.
package errs

import (
	"errors"
	"fmt"
)

// Codes used for client-side failures. Remote API codes are passed through verbatim.
const (
	CodeBadRequest = 400
	CodeNotFound   = 404
)

var (
	// ErrValidation matches any *Error with CodeBadRequest.
	ErrValidation = errors.New("validation")

	// ErrNotFound matches any *Error with CodeNotFound.
	ErrNotFound = errors.New("not found")

	// ErrMissingCredentials indicates the client id or secret is not configured.
	ErrMissingCredentials = errors.New("missing credentials")
)

// Error carries a machine-checkable code and a human-readable message.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("API error: %d - %s", e.Code, e.Message)
}

// Is lets errors.Is match the ErrValidation and ErrNotFound sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Code == CodeBadRequest
	case ErrNotFound:
		return e.Code == CodeNotFound
	}
	return false
}

// Validation returns a client-side validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeBadRequest, Message: msg}
}

// NotFound returns an error for an entity missing on the device.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// CodeOf extracts the code of the first *Error in err's chain.
func CodeOf(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}
