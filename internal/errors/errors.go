// Package errors provides a lightweight structured error type for
// category-based classification in the CLI layer.
package errors

import (
	"fmt"
)

// Category classifies an error for exit-code mapping and display.
type Category string

const (
	// User-facing input and configuration errors
	CategoryConfig     Category = "config"
	CategoryValidation Category = "validation"
	CategoryParse      Category = "parse"

	// External collaborators
	CategoryFileSystem Category = "filesystem"
	CategoryGit        Category = "git"

	CategoryInternal Category = "internal"
)

// Severity indicates how critical an error is
type Severity string

const (
	SeverityFatal   Severity = "fatal"   // Stops execution
	SeverityError   Severity = "error"   // Error, but not fatal
	SeverityWarning Severity = "warning" // Continues with degraded functionality
)

// Error is a structured error with category, severity, and context
type Error struct {
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Cause    error    `json:"cause,omitempty"`
	Context  Fields   `json:"context,omitempty"`
}

// Fields carries structured context for Error
type Fields map[string]any

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(Fields)
	}
	e.Context[key] = value
	return e
}

// New creates a new Error
func New(category Category, severity Severity, message string) *Error {
	return &Error{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new Error that wraps an existing error
func Wrap(err error, category Category, severity Severity, message string) *Error {
	return &Error{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}
