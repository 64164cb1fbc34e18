package domain

import (
	"errors"
	"fmt"
)

// Error types shared across the identity and requisition components. Each
// category maps to exactly one transport outcome, so callers can always
// distinguish a bad request from a missing record or a store failure.

// ValidationError represents caller-supplied input failing a precondition
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NewValidationError creates a validation error for a named field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// ConflictError represents a uniqueness violation
type ConflictError struct {
	Resource string
	Key      string
	Message  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s '%s': %s", e.Resource, e.Key, e.Message)
}

// NewConflictError creates an error for a uniqueness violation
func NewConflictError(resource, key, message string) *ConflictError {
	return &ConflictError{
		Resource: resource,
		Key:      key,
		Message:  message,
	}
}

// NotFoundError represents a referenced entity that does not exist
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s not found", e.Resource, e.ID)
}

// NewNotFoundError creates an error for an absent entity
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// AuthError represents a credential mismatch
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// NewAuthError creates an error for failed credential verification
func NewAuthError(message string) *AuthError {
	return &AuthError{
		Message: message,
	}
}

// StorageError represents a backing store failure. The cause is preserved for
// logging but callers surface only the descriptive message.
type StorageError struct {
	Operation string
	Resource  string
	Cause     error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage error during %s on %s: %v", e.Operation, e.Resource, e.Cause)
	}
	return fmt.Sprintf("storage error during %s on %s", e.Operation, e.Resource)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates an error for a backing store failure
func NewStorageError(operation, resource string, cause error) *StorageError {
	return &StorageError{
		Operation: operation,
		Resource:  resource,
		Cause:     cause,
	}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsConflict reports whether err is a ConflictError
func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsAuth reports whether err is an AuthError
func IsAuth(err error) bool {
	var target *AuthError
	return errors.As(err, &target)
}
