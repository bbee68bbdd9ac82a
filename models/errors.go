package models

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the two failure classes callers can observe.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

// FieldError describes a validation problem with a single field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects field-level problems found before a write.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return fmt.Sprintf("validation: %d errors (%s)", len(e.Errors), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// ReferenceError reports an id that does not resolve to a stored record.
type ReferenceError struct {
	Kind string
	ID   string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *ReferenceError) Unwrap() error { return ErrNotFound }

// NotFound creates a ReferenceError for the given record kind.
func NotFound(kind, id string) *ReferenceError {
	return &ReferenceError{Kind: kind, ID: id}
}
