package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors for the journaling core. Services wrap these with
// context via fmt.Errorf("...: %w", ...); the HTTP layer maps them to
// status codes with errors.Is.
var (
	// ErrNotFound marks a missing session, profile or metadata row.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput marks missing or malformed request parameters.
	ErrInvalidInput = errors.New("invalid input")

	// ErrGenerationFailure marks an empty or unusable completion reply.
	ErrGenerationFailure = errors.New("generation failure")

	// ErrPersistenceFailure marks a required write that did not take
	// effect. The caller must assume no state transition happened.
	ErrPersistenceFailure = errors.New("persistence failure")

	// ErrAlreadyClosed is a recognized idempotent state, not a fault.
	// Callers that reach it should return the sentinel close result.
	ErrAlreadyClosed = errors.New("session already closed")
)

func NotFound(what string) error {
	return fmt.Errorf("%s: %w", what, ErrNotFound)
}

func InvalidInput(what string) error {
	return fmt.Errorf("%s: %w", what, ErrInvalidInput)
}
