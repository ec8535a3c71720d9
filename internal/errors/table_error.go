// Package errors provides standardized error types for table operations.
// This package defines TableError for consistent error handling across
// all public APIs, with operation context and error wrapping support.
package errors

import (
	"errors"
	"fmt"
)

// TableError represents standardized errors across all table operations
type TableError struct {
	Op      string // Operation name (e.g., "Load", "Filter", "Describe")
	Column  string // Column name if applicable
	Message string // Human-readable error description
	Cause   error  // Underlying error cause
}

// Error implements the error interface
func (e *TableError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s operation failed on column '%s': %s", e.Op, e.Column, e.Message)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying cause for error wrapping support
func (e *TableError) Unwrap() error {
	return e.Cause
}

// Is implements error equality checking for errors.Is()
func (e *TableError) Is(target error) bool {
	if te, ok := target.(*TableError); ok {
		return e.Op == te.Op && e.Column == te.Column && e.Message == te.Message
	}
	return false
}

// ErrParse marks errors produced while decoding CSV input. Callers use
// errors.Is(err, ErrParse) to distinguish unreadable input from everything
// else; empty results and missing columns are soft paths and never produce
// an error at all.
var ErrParse = errors.New("parse error")

// ParseError wraps a CSV decoding failure with the underlying parser message.
type ParseError struct {
	Message string
	Cause   error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parsing CSV: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parsing CSV: %s", e.Message)
}

// Unwrap returns the underlying cause
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports true for the ErrParse sentinel so callers can classify
// load failures without knowing the concrete type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// NewParseError creates an error for unreadable or malformed CSV input
func NewParseError(message string, cause error) *ParseError {
	return &ParseError{
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors for consistent error creation

// NewColumnNotFoundError creates an error for operations on non-existent columns
func NewColumnNotFoundError(op, column string) *TableError {
	return &TableError{
		Op:      op,
		Column:  column,
		Message: "column does not exist",
	}
}

// NewInvalidInputError creates an error for invalid operation inputs
func NewInvalidInputError(op, message string) *TableError {
	return &TableError{
		Op:      op,
		Message: message,
	}
}

// NewUnsupportedTypeError creates an error for unsupported data types
func NewUnsupportedTypeError(op, typeName string) *TableError {
	return &TableError{
		Op:      op,
		Message: fmt.Sprintf("unsupported type: %s", typeName),
	}
}

// NewInternalError creates an error for internal operation failures
func NewInternalError(op string, cause error) *TableError {
	return &TableError{
		Op:      op,
		Message: "internal error occurred",
		Cause:   cause,
	}
}

// Predefined error variables for common cases
var (
	// ErrEmptyInput indicates a load attempt with no input data
	ErrEmptyInput = &TableError{
		Op:      "Load",
		Message: "input is empty",
	}

	// ErrMismatchedLength indicates length mismatches between columns
	ErrMismatchedLength = &TableError{
		Op:      "validation",
		Message: "columns must have the same length",
	}

	// ErrInvalidIndex indicates out-of-bounds index access
	ErrInvalidIndex = &TableError{
		Op:      "indexing",
		Message: "index out of bounds",
	}
)
