package errors

import "fmt"

// Failure kinds. Every error returned by the services wraps exactly one of them.
var (
	ErrNotFound     = fmt.Errorf("not found")
	ErrConflict     = fmt.Errorf("conflict")
	ErrUnauthorized = fmt.Errorf("unauthorized")
)

var (
	ErrAccountNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrEmailAlreadyExists = fmt.Errorf("email already exists: %w", ErrConflict)
	ErrAccountInactive    = fmt.Errorf("user is not active: %w", ErrConflict)
	ErrConcurrentWrite    = fmt.Errorf("concurrent write on the same record: %w", ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
)
