package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Aggregation errors
	ErrEmptyInput     = errors.New("no records to aggregate")
	ErrColumnNotFound = errors.New("column not found")
	ErrOutOfRange     = errors.New("rating outside scale")

	// Scale errors
	ErrInvalidScale = errors.New("invalid rating scale")
	ErrLabelCount   = errors.New("label count does not match scale size")

	// Storage errors
	ErrDatasetNotFound = errors.New("dataset not found")
)

// Error constructors with context
func NewColumnNotFoundError(column string) error {
	return fmt.Errorf("%w: %s", ErrColumnNotFound, column)
}

func NewOutOfRangeError(column string, value, min, max int) error {
	return fmt.Errorf("%w: %s=%d, scale [%d,%d]", ErrOutOfRange, column, value, min, max)
}

func NewEmptyInputError(context string) error {
	return fmt.Errorf("%w: %s", ErrEmptyInput, context)
}

// Error checking helpers
func IsAggregationError(err error) bool {
	return errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrColumnNotFound) ||
		errors.Is(err, ErrOutOfRange)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrColumnNotFound) ||
		errors.Is(err, ErrDatasetNotFound)
}
