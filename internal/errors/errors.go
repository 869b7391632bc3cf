// Package errors provides a lightweight structured error type (SidedocError)
// for category-based classification across the generation pipeline and CLI.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory represents the category of a sidedoc error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig   ErrorCategory = "config"
	CategoryLanguage ErrorCategory = "language"

	// Processing errors
	CategoryParse  ErrorCategory = "parse"
	CategoryRender ErrorCategory = "render"

	// External system and infrastructure errors
	CategoryHighlight  ErrorCategory = "highlight"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops the run
	SeverityError   ErrorSeverity = "error"   // Fails the current file
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded output
)

// SidedocError is a structured error with category, severity, and context
type SidedocError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for SidedocError
type ContextFields map[string]any

// Error implements the error interface
func (e *SidedocError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *SidedocError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *SidedocError) WithContext(key string, value any) *SidedocError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new SidedocError
func New(category ErrorCategory, severity ErrorSeverity, message string) *SidedocError {
	return &SidedocError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new SidedocError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *SidedocError {
	return &SidedocError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// CategoryOf returns the category of err if it is (or wraps) a SidedocError,
// or CategoryInternal otherwise.
func CategoryOf(err error) ErrorCategory {
	var se *SidedocError
	if errors.As(err, &se) {
		return se.Category
	}
	return CategoryInternal
}

// IsCategory reports whether err is (or wraps) a SidedocError of the given category.
func IsCategory(err error, category ErrorCategory) bool {
	var se *SidedocError
	return errors.As(err, &se) && se.Category == category
}
