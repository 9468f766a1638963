package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
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

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors by code so clones and wrapped copies still compare
// equal to their sentinel.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// WithDetails returns a copy of the error carrying extra payload fields.
func (e *Error) WithDetails(details interface{}) *Error {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Details = details
	return &clone
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap returns a copy of base carrying err as its cause.
func Wrap(base *Error, err error) *Error {
	if base == nil {
		return nil
	}
	clone := *base
	clone.Err = err
	return &clone
}

// Clone returns a copy of base allowing for a message override.
func Clone(base *Error, message string) *Error {
	if base == nil {
		return nil
	}
	clone := *base
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// Predefined errors for common scenarios. Conflict maps to 400 rather
// than 409: duplicate business keys and already-processed requests have
// always been reported as bad requests by this API.
var (
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid username or password")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict           = New("CONFLICT", http.StatusBadRequest, "conflict")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")

	ErrCapacityExceeded  = New("CAPACITY_EXCEEDED", http.StatusBadRequest, "room is full")
	ErrInvalidCapacity   = New("INVALID_CAPACITY", http.StatusBadRequest, "capacity must be a positive number")
	ErrAlreadyProcessed  = New("ALREADY_PROCESSED", http.StatusBadRequest, "request already processed")
	ErrProfileNotLinked  = New("PROFILE_NOT_LINKED", http.StatusBadRequest, "student profile not linked")
	ErrAlreadyCheckedIn  = New("ALREADY_CHECKED_IN", http.StatusBadRequest, "already checked in today")
	ErrNotCheckedIn      = New("NOT_CHECKED_IN", http.StatusBadRequest, "must check in before checking out")
	ErrAlreadyCheckedOut = New("ALREADY_CHECKED_OUT", http.StatusBadRequest, "already checked out today")

	ErrCacheMiss = New("CACHE_MISS", http.StatusNotFound, "cache miss")
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
	return Wrap(ErrInternal, err)
}
