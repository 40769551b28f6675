package service

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")

	ErrEventNotFound        = fmt.Errorf("event %w", ErrNotFound)
	ErrOrganizationNotFound = fmt.Errorf("organization %w", ErrNotFound)
	ErrCategoryNotFound     = fmt.Errorf("category %w", ErrNotFound)

	// ErrInvalidCredentials is returned by the auth service for a wrong
	// email/password pair or a wrong current password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// ValidationError is a user-correctable input problem. Conflict marks
// uniqueness violations.
type ValidationError struct {
	Field    string
	Message  string
	Conflict bool
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

var (
	ErrDuplicateCategory = &ValidationError{Field: "name", Message: "a category with this name already exists", Conflict: true}
	ErrDuplicateEmail    = &ValidationError{Field: "email", Message: "an account with this email already exists", Conflict: true}
)

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
