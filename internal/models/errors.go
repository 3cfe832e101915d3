package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks caller-supplied data that violates a documented constraint.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks an operation that references an id the store does not hold.
	ErrNotFound = errors.New("not found")
)

// ValidationError names the field that failed validation.
// It matches ErrInvalidInput under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
