package models

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("record not found")

// ValidationError is a client-local rejection. It is raised before any
// network call is made.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// BackendError carries an error returned by Supabase or an object store.
// Error returns the backend message unchanged so it can be shown to the user.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return e.Err.Error()
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
