package domain

import (
	"errors"
	"fmt"
)

// Error categories. Package-level sentinels wrap one of these so that
// transport code can map any error to a response class with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrAuthorization   = errors.New("not authorized")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrConflict        = errors.New("conflict")
	ErrStorage         = errors.New("storage failure")
	ErrConfiguration   = errors.New("invalid configuration")
)

// ErrInvalidTransition is returned when a lifecycle operation is not allowed
// from the booking's current status.
var ErrInvalidTransition = fmt.Errorf("%w: invalid status transition", ErrConflict)

// ValidationError names the offending input field.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// AuthorizationError is returned when the actor's role lacks a permission.
type AuthorizationError struct {
	Role       Role
	Permission Permission
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("role %q is not allowed to %s", e.Role, e.Permission)
}

func (e *AuthorizationError) Unwrap() error {
	return ErrAuthorization
}

// StorageError carries the failed operation and entity for logging.
// Err is never exposed to clients.
type StorageError struct {
	Op        string
	EntityID  string
	Retryable bool
	Err       error
}

func (e *StorageError) Error() string {
	if e.EntityID == "" {
		return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage: %s (id=%s): %v", e.Op, e.EntityID, e.Err)
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}

// IsRetryable reports whether err is a storage error that may succeed on retry.
func IsRetryable(err error) bool {
	var se *StorageError
	if errors.As(err, &se) {
		return se.Retryable
	}
	return false
}

// ConfigurationError is a startup configuration problem.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}
