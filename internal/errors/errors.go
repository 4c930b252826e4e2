package errors

import (
	"fmt"
)

// LoupeError is the structured error type for Loupe.
// It provides rich context for error handling, logging, and user presentation.
type LoupeError struct {
	// Code is the unique error code (e.g., "ERR_401_INVALID_PATTERN").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Validation, Internal).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *LoupeError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *LoupeError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with LoupeError.
func (e *LoupeError) Is(target error) bool {
	if t, ok := target.(*LoupeError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *LoupeError) WithDetail(key, value string) *LoupeError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *LoupeError) WithSuggestion(suggestion string) *LoupeError {
	e.Suggestion = suggestion
	return e
}

// New creates a new LoupeError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *LoupeError {
	return &LoupeError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Newf creates a new LoupeError with a formatted message.
func Newf(code string, format string, args ...any) *LoupeError {
	return New(code, fmt.Sprintf(format, args...), nil)
}

// Wrap creates a LoupeError from an existing error.
// The error's message becomes the LoupeError message.
func Wrap(code string, err error) *LoupeError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// InvalidPattern creates an error for a malformed regex pattern.
func InvalidPattern(pattern string, cause error) *LoupeError {
	return New(ErrCodeInvalidPattern, fmt.Sprintf("invalid pattern %q", pattern), cause).
		WithDetail("pattern", pattern).
		WithSuggestion("escape regex metacharacters or simplify the pattern")
}

// UnknownStrategy creates an error for an unrecognized strategy name.
func UnknownStrategy(name string) *LoupeError {
	return Newf(ErrCodeUnknownStrategy, "unknown search strategy: %s", name).
		WithDetail("strategy", name).
		WithSuggestion("use one of: auto, keyword, fuzzy, regex, tfidf, semantic, hybrid")
}

// IndexUnavailable creates an error for a strategy whose backing index
// or capability is missing when the strategy was explicitly requested.
func IndexUnavailable(name, reason string) *LoupeError {
	return Newf(ErrCodeIndexUnavailable, "strategy %s is unavailable: %s", name, reason).
		WithDetail("strategy", name)
}

// GetCode extracts the error code from a LoupeError.
// Returns empty string if not a LoupeError.
func GetCode(err error) string {
	if le, ok := err.(*LoupeError); ok {
		return le.Code
	}
	return ""
}

// GetCategory extracts the category from a LoupeError.
// Returns empty string if not a LoupeError.
func GetCategory(err error) Category {
	if le, ok := err.(*LoupeError); ok {
		return le.Category
	}
	return ""
}

// IsFatal checks if an error has fatal severity.
func IsFatal(err error) bool {
	if le, ok := err.(*LoupeError); ok {
		return le.Severity == SeverityFatal
	}
	return false
}
