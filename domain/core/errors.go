package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Caller errors. Never retried.
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidPeriod   = fmt.Errorf("%w: period", ErrInvalidArgument)
	ErrEmptyInput      = fmt.Errorf("%w: empty input", ErrInvalidArgument)
	ErrUnsupportedTask = fmt.Errorf("%w: unsupported task", ErrInvalidArgument)
	ErrUnknownTool     = fmt.Errorf("%w: unknown tool", ErrInvalidArgument)

	// Absence of a record is not an error in the pipeline; this is only used by
	// lookups that need to report it explicitly (tool registry, CLI).
	ErrNotFound = errors.New("resource not found")
)

// Error constructors with context
func NewInvalidArgument(field string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidArgument, field, reason)
}

func NewInvalidPeriod(period string) error {
	return fmt.Errorf("%w: %q (expected '<integer> <quarter|month|year|week|day>')", ErrInvalidPeriod, period)
}

func NewEmptyInput(what string) error {
	return fmt.Errorf("%w: %s", ErrEmptyInput, what)
}

func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// Error checking helpers
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
