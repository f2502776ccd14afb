// Package apperr defines the error kinds surfaced by the API and their HTTP
// status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindConflict
	KindNotFound
	KindInvalidShareLink
)

const msgInternal = "Internal Server Error"

// Error carries a kind, a user-facing message and an optional cause that is
// never shown to the caller.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func InvalidShareLink(message string) *Error {
	return &Error{Kind: KindInvalidShareLink, Message: message}
}

// Internal wraps an unexpected failure. context is logged, not returned to clients.
func Internal(context string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: msgInternal, cause: fmt.Errorf("%s: %w", context, cause)}
}

// KindOf returns the kind of err, KindInternal for anything that is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps err to the response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidShareLink:
		return http.StatusLengthRequired
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the text safe to return to the caller.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return msgInternal
}
