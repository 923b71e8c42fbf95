package app

import (
	"errors"
	"fmt"
)

// Domain error sentinels for the application layer.
// These enable consistent HTTP status mapping via errors.Is().

var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates invalid input from the caller.
	ErrValidation = errors.New("validation error")

	// ErrExternal indicates the import source is unreachable, rate-limited,
	// or rejected our credentials.
	ErrExternal = errors.New("external service error")

	// ErrConfigMissing indicates an optional feature is disabled because its
	// startup configuration is absent.
	ErrConfigMissing = errors.New("configuration missing")
)

// NotFoundError wraps ErrNotFound with a descriptive message.
func NotFoundError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrNotFound)
}

// ValidationError wraps ErrValidation with a descriptive message.
func ValidationError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrValidation)
}

// ExternalError wraps ErrExternal with a descriptive message and cause.
func ExternalError(msg string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", msg, ErrExternal)
	}
	return fmt.Errorf("%s: %v: %w", msg, cause, ErrExternal)
}

// ConfigMissingError wraps ErrConfigMissing with a descriptive message.
func ConfigMissingError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrConfigMissing)
}
