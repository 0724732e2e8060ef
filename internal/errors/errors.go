// Package errors provides sentinel errors for the kforge CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the generation failure categories. Every failure
// is fatal to the invocation; the category decides the exit code.
var (
	// ErrParse indicates a resource fragment could not be parsed.
	ErrParse = errors.New("parse error")

	// ErrConfiguration indicates an invalid or contradictory project
	// configuration.
	ErrConfiguration = errors.New("configuration error")

	// ErrEnrichment indicates an enricher stage failed.
	ErrEnrichment = errors.New("enrichment error")

	// ErrIO indicates a filesystem read or write failure.
	ErrIO = errors.New("io error")
)

// DetailError captures structured error information for terminal output.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path, optionally with a line number (optional).
	Location string

	// Field is the configuration field path (optional).
	Field string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	if e.Field != "" {
		b.WriteString("  Field: ")
		b.WriteString(e.Field)
		b.WriteString("\n")
	}
	for k, v := range e.Context {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error chain. The category sentinel is
// always reachable, so errors.Is works against any DetailError.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a fragment parse error with details.
func NewParseError(message, location, hint string, cause error) error {
	return &DetailError{
		Type:     "fragment parse failed",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    join(ErrParse, cause),
	}
}

// NewConfigurationError creates a configuration error with details.
func NewConfigurationError(message, field, hint string) error {
	return &DetailError{
		Type:    "invalid configuration",
		Message: message,
		Field:   field,
		Hint:    hint,
		Cause:   ErrConfiguration,
	}
}

// NewEnrichmentError creates an enrichment error naming the failed stage.
func NewEnrichmentError(message, stage string, cause error) error {
	return &DetailError{
		Type:    "enrichment failed",
		Message: message,
		Context: map[string]string{"Enricher": stage},
		Cause:   join(ErrEnrichment, cause),
	}
}

// NewIOError creates a filesystem error with details.
func NewIOError(message, location string, cause error) error {
	return &DetailError{
		Type:     "io failed",
		Message:  message,
		Location: location,
		Cause:    join(ErrIO, cause),
	}
}

// WrapParse wraps an error with ErrParse.
func WrapParse(err error, msg string) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrParse, err)
}

// WrapConfiguration wraps an error with ErrConfiguration.
func WrapConfiguration(err error, msg string) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrConfiguration, err)
}

// WrapEnrichment wraps an error with ErrEnrichment.
func WrapEnrichment(err error, msg string) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrEnrichment, err)
}

// WrapIO wraps an error with ErrIO.
func WrapIO(err error, msg string) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrIO, err)
}

func join(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}
