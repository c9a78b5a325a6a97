package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput signals a missing or empty analysis input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicateInput signals that the input has already been analyzed.
	ErrDuplicateInput = errors.New("input already exists")
	// ErrInvalidFilter signals a malformed structured filter value.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrUnparsableQuery signals that no interpreter rule matched a phrase.
	ErrUnparsableQuery = errors.New("unable to parse natural language query")
	// ErrNotFound signals a missing record.
	ErrNotFound = errors.New("not found")
	// ErrNoMatch signals that a parsed query matched no records.
	ErrNoMatch = errors.New("no matching records found")
)

// InvalidFilterError wraps ErrInvalidFilter with the offending field.
type InvalidFilterError struct {
	Field  string
	Reason string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("%s: invalid value for %q: %s", ErrInvalidFilter.Error(), e.Field, e.Reason)
}

func (e *InvalidFilterError) Unwrap() error { return ErrInvalidFilter }

// NewInvalidFilter creates an invalid filter error for field.
func NewInvalidFilter(field, reason string) error {
	return &InvalidFilterError{Field: field, Reason: reason}
}
