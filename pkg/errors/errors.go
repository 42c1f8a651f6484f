// Package errors provides structured error types for golevels.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI, pipeline, and API
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The computation-fatal error kinds map directly onto the failure modes of
// the load → reverse → levels → merge dataflow:
//   - DATA_SOURCE: the ontology snapshot cannot be read or parsed
//   - STRUCTURAL: removing the universal root disconnected terms
//   - UNREACHABLE_NODE: a term has no path from its ontology root
//   - LOOKUP: a term id has no resolvable ontology membership
//
// All four are fatal to a run; there is no partial-success mode because
// downstream consumers expect a complete three-ontology table.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDataSource, "open %s: %v", path, cause)
//	if errors.Is(err, errors.ErrCodeDataSource) {
//	    // Handle snapshot read failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStructural, origErr, "root removal for %s", ont)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Computation-fatal error kinds
	ErrCodeDataSource  Code = "DATA_SOURCE"
	ErrCodeStructural  Code = "STRUCTURAL"
	ErrCodeUnreachable Code = "UNREACHABLE_NODE"
	ErrCodeLookup      Code = "LOOKUP"

	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidOntology Code = "INVALID_ONTOLOGY"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeTermNotFound Code = "TERM_NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
