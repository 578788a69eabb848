package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSchema signals a raw table without a required column.
	ErrSchema = errors.New("schema error")
	// ErrParse signals a nested field whose encoding cannot be decoded.
	ErrParse = errors.New("parse error")
	// ErrValidation signals a missing or uncoercible required field.
	ErrValidation = errors.New("validation error")
	// ErrSelection signals an out-of-range or non-numeric disambiguation index.
	ErrSelection = errors.New("invalid selection")
	// ErrNoMatch signals a title query without catalog matches.
	ErrNoMatch = errors.New("no match found")
	// ErrCatalogNotFound signals that no persisted catalog exists yet.
	ErrCatalogNotFound = errors.New("catalog not found")
	// ErrMovieNotFound signals an identifier absent from the catalog.
	ErrMovieNotFound = errors.New("movie not found")
)

// SchemaError reports a required column missing from a raw table.
type SchemaError struct {
	Table  string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: table %q has no column %q", ErrSchema.Error(), e.Table, e.Column)
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

// ParseError reports a malformed encoded value. Offset is the byte position in the cell.
type ParseError struct {
	Field  string
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s at offset %d: %s", ErrParse.Error(), e.Offset, e.Msg)
	}
	return fmt.Sprintf("%s in %s at offset %d: %s", ErrParse.Error(), e.Field, e.Offset, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// ValidationError reports a required field that is null or cannot be coerced.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s %s", ErrValidation.Error(), e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s (%q)", ErrValidation.Error(), e.Field, e.Reason, e.Value)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidation creates a validation error for field.
func NewValidation(field, value, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// SelectionError reports a bad disambiguation index. Valid indexes are 0..Max-1.
type SelectionError struct {
	Input string
	Max   int
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("%s: %q is not an index between 0 and %d", ErrSelection.Error(), e.Input, e.Max-1)
}

func (e *SelectionError) Unwrap() error { return ErrSelection }
