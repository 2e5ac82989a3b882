package domain

import (
	"errors"
	"strings"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionPublished  = errors.New("session is already published")
	ErrSessionIncomplete = errors.New("title and JSON file URL are required to publish")
)

// ValidationError carries per-field messages for a rejected request.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// NewValidationError builds a ValidationError from one or more field messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}
