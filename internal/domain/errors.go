package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound reports an absent record or an empty result where one was expected.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed or out-of-range user input.
// It names the violated constraint so handlers can log precisely,
// while the user still sees a fixed usage hint.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// Code identifies the error class for structured logs.
func (e *ValidationError) Code() string { return "validation" }

// AuthorizationError reports a role mismatch for the attempted action.
type AuthorizationError struct {
	Required Role
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("authorization: role %s required", e.Required)
}

// Code identifies the error class for structured logs.
func (e *AuthorizationError) Code() string { return "authorization" }

// StorageError wraps an underlying store failure. Handlers degrade it to a
// neutral "request failed" reply; it never crashes the active session.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Code identifies the error class for structured logs.
func (e *StorageError) Code() string { return "storage" }

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsAuthorization reports whether err is an authorization error.
func IsAuthorization(err error) bool {
	var ae *AuthorizationError
	return errors.As(err, &ae)
}
