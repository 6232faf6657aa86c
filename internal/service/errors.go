package service

import (
	"errors"
	"strings"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUserExists          = errors.New("user already exists")
	ErrPersistenceConflict = errors.New("the record was modified by another request")
	ErrMissingSigningKey   = errors.New("jwt signing key is not configured")
	ErrInvalidTokenTTL     = errors.New("jwt lifetime must be positive")
	ErrInvalidToken        = errors.New("invalid token")
)

// FieldError is one rule violation, shaped like the registration errors
// clients already consume: a stable code and a human description.
type FieldError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	descriptions := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		descriptions = append(descriptions, fe.Description)
	}
	return "validation failed: " + strings.Join(descriptions, "; ")
}

func (e *ValidationError) add(code, description string) {
	e.Errors = append(e.Errors, FieldError{Code: code, Description: description})
}

// orNil returns e when it holds errors, otherwise a nil error.
func (e *ValidationError) orNil() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}
