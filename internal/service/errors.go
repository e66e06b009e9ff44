package service

import (
	"errors"
)

var (
	ErrEmailAlreadyExists = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrNotOwner           = errors.New("access denied")
	ErrNothingToUpdate    = errors.New("no changes provided")
	ErrEmptyContent       = errors.New("comment content is required")
	ErrSelfDeletion       = errors.New("you cannot delete your own account")
)

// FieldError is one field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates field-level failures so handlers can
// return them as a detail array.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
