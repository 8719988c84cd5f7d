// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package apperror defines the error kinds raised by the service layer and
// their mapping to HTTP status codes.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an application error.
type ErrorType int

const (
	// Internal is an unexpected failure (store down, bug).
	Internal ErrorType = iota
	// Validation is a missing or malformed input, or a referential rule
	// that forbids the requested change.
	Validation
	// Conflict is a uniqueness violation.
	Conflict
	// NotFound means no record exists for the given id.
	NotFound
)

// String returns the lowercase name of the error type.
func (t ErrorType) String() string {
	switch t {
	case Validation:
		return "validation"
	case Conflict:
		return "conflict"
	case NotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// AppError is the error type returned by services. Message is safe to show
// to API clients; Err carries the underlying cause for logs.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error returns the message, with the underlying error appended if present.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code for the error type.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case Validation:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// NewValidation creates a Validation error.
func NewValidation(message string) *AppError {
	return &AppError{Type: Validation, Message: message}
}

// NewConflict creates a Conflict error.
func NewConflict(message string) *AppError {
	return &AppError{Type: Conflict, Message: message}
}

// NewNotFound creates a NotFound error.
func NewNotFound(message string) *AppError {
	return &AppError{Type: NotFound, Message: message}
}

// NewInternal wraps an unexpected error. The message shown to clients is
// generic; err is kept for logging.
func NewInternal(message string, err error) *AppError {
	return &AppError{Type: Internal, Message: message, Err: err}
}

// From returns the *AppError in err's chain. Errors that are not an
// AppError are wrapped as Internal.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternal("internal server error", err)
}

// Response is the JSON body written for failed requests.
type Response struct {
	Error string `json:"error"`
}

// ToResponse converts the error into its client-facing payload. Internal
// errors never leak their underlying cause.
func (e *AppError) ToResponse() Response {
	return Response{Error: e.Message}
}

func is(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}

// IsValidation reports whether err is a Validation error.
func IsValidation(err error) bool { return is(err, Validation) }

// IsConflict reports whether err is a Conflict error.
func IsConflict(err error) bool { return is(err, Conflict) }

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool { return is(err, NotFound) }
