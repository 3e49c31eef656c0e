// Package apperrors defines the typed failures the core operations return.
// The HTTP boundary maps Kind to a status code; everything below it deals
// only in (kind, message) pairs.
package apperrors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidationFailed   Kind = "VALIDATION_FAILED"
	KindNotFound           Kind = "NOT_FOUND"
	KindInsufficientStock  Kind = "INSUFFICIENT_STOCK"
	KindRateLimitExceeded  Kind = "RATE_LIMIT_EXCEEDED"
	KindConflict           Kind = "CONFLICT"
	KindInternal           Kind = "INTERNAL"
)

type Error struct {
	Kind    Kind
	Message string
	// Details carries field-level validation detail, keyed by field name.
	Details map[string]string
	// Err is the wrapped cause. Never exposed in Internal messages.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(message string, details map[string]string) *Error {
	return &Error{Kind: KindValidationFailed, Message: message, Details: details}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func InsufficientStock(message string) *Error {
	return &Error{Kind: KindInsufficientStock, Message: message}
}

func RateLimitExceeded() *Error {
	return &Error{Kind: KindRateLimitExceeded, Message: "Too many requests"}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Internal wraps an unexpected backend failure. The public message stays
// generic; err is retained for logs only.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "An unexpected error occurred", Err: err}
}

// KindOf returns the kind of err, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
