// Package errors provides structured error handling with user-friendly messages.
package errors

import (
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors for better user experience.
type ErrorType string

const (
	// Menu tree errors
	MenuInvalid ErrorType = "menu_invalid"
	MenuEmpty   ErrorType = "menu_empty"

	// Menu definition file errors
	DefNotFound ErrorType = "definition_not_found"
	DefInvalid  ErrorType = "definition_invalid"

	// Typed input errors
	ParseFailure ErrorType = "parse_failure"

	// Terminal errors
	TermSetup   ErrorType = "terminal_setup"
	InputClosed ErrorType = "input_closed"

	// Internal errors
	InternalError ErrorType = "internal_error"
)

// MenuError represents a structured error with user-friendly messaging.
type MenuError struct {
	Type        ErrorType `json:"type"`
	Message     string    `json:"message"`
	Details     string    `json:"details,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
	Cause       error     `json:"-"`
}

func (e *MenuError) Error() string {
	var parts []string

	parts = append(parts, e.Message)

	if e.Details != "" {
		parts = append(parts, fmt.Sprintf("Details: %s", e.Details))
	}

	if len(e.Suggestions) > 0 {
		parts = append(parts, fmt.Sprintf("Suggestions:\n  • %s", strings.Join(e.Suggestions, "\n  • ")))
	}

	return strings.Join(parts, "\n\n")
}

func (e *MenuError) Unwrap() error {
	return e.Cause
}

// New creates a new MenuError with the given type and message.
func New(errorType ErrorType, message string) *MenuError {
	return &MenuError{
		Type:    errorType,
		Message: message,
	}
}

// Wrap creates a new MenuError that wraps an existing error.
func Wrap(err error, errorType ErrorType, message string) *MenuError {
	return &MenuError{
		Type:    errorType,
		Message: message,
		Cause:   err,
	}
}

// WithDetails adds detailed information to an error.
func (e *MenuError) WithDetails(details string) *MenuError {
	e.Details = details
	return e
}

// WithSuggestion adds a helpful suggestion to an error.
func (e *MenuError) WithSuggestion(suggestion string) *MenuError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple helpful suggestions to an error.
func (e *MenuError) WithSuggestions(suggestions []string) *MenuError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// Common error constructors for frequently encountered issues

// MenuEmptyError creates an error for a menu level with no items.
func MenuEmptyError(name string) *MenuError {
	return New(MenuEmpty, fmt.Sprintf("Menu %q has no items", name)).
		WithDetails("Every menu level needs at least one item to navigate").
		WithSuggestion("Add an action, sub-menu, or prompt item to the menu")
}

// DefNotFoundError creates an error for a missing menu definition file.
func DefNotFoundError(path string) *MenuError {
	return New(DefNotFound, "Menu definition file not found").
		WithDetails(fmt.Sprintf("Looking for menu definition at: %s", path)).
		WithSuggestions([]string{
			"Check that the file exists and is readable",
			"Run 'menunav validate <file>' to check a definition",
		})
}

// ParseFailureError creates an error for typed input that did not parse.
func ParseFailureError(kind string, input string, reason string) *MenuError {
	return New(ParseFailure, fmt.Sprintf("Cannot read %q as %s", input, kind)).
		WithDetails(reason)
}

// InputClosedError creates an error for an input source that stopped delivering events.
func InputClosedError(err error) *MenuError {
	return Wrap(err, InputClosed, "Input source closed during navigation").
		WithSuggestions([]string{
			"Check that stdin is connected to a terminal or a complete script",
			"Use the tcell backend for interactive terminals",
		})
}

// TermSetupError creates an error for a terminal that could not be initialised.
func TermSetupError(err error) *MenuError {
	return Wrap(err, TermSetup, "Cannot initialise the terminal").
		WithSuggestions([]string{
			"Run inside a real terminal (TERM must be set)",
			"Fall back to the plain stream backend for non-TTY use",
		})
}

// IsType checks if an error is of a specific MenuError type.
func IsType(err error, errorType ErrorType) bool {
	if menuErr, ok := err.(*MenuError); ok {
		return menuErr.Type == errorType
	}
	return false
}

// GetType returns the ErrorType of a MenuError, or InternalError for other errors.
func GetType(err error) ErrorType {
	if menuErr, ok := err.(*MenuError); ok {
		return menuErr.Type
	}
	return InternalError
}
