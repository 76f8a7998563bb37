package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the different failure classes of a graph run
type ErrorType string

const (
	ErrorTypeLocator           ErrorType = "locator"
	ErrorTypeListRender        ErrorType = "list_render_timeout"
	ErrorTypeNoDialog          ErrorType = "no_dialog"
	ErrorTypeNoScrollContainer ErrorType = "no_scroll_container"
	ErrorTypeNavigation        ErrorType = "navigation"
	ErrorTypeBrowser           ErrorType = "browser"
	ErrorTypeUnknown           ErrorType = "unknown"
)

// Error represents a typed automation error
type Error struct {
	Type    ErrorType
	Message string
	// Target is the selector or URL the failure refers to, if any
	Target string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s error: %s", e.Type, e.Message)
	if e.Target != "" {
		msg += fmt.Sprintf(" (%s)", e.Target)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a typed error
func New(t ErrorType, target, message string) *Error {
	return &Error{Type: t, Target: target, Message: message}
}

// Wrap creates a typed error around a cause
func Wrap(t ErrorType, target, message string, err error) *Error {
	return &Error{Type: t, Target: target, Message: message, Err: err}
}

// TypeOf returns the type of the first *Error in the chain, or ErrorTypeUnknown
func TypeOf(err error) ErrorType {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeUnknown
}

// IsType reports whether err carries the given type
func IsType(err error, t ErrorType) bool {
	return err != nil && TypeOf(err) == t
}

// IsFatal reports whether an error type aborts the whole run.
// A missing dialog or scroll container only degrades one list.
func IsFatal(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeNoDialog, ErrorTypeNoScrollContainer:
		return false
	default:
		return true
	}
}

// IsRetryable checks if an error type may be retried by the outer launcher.
// Nothing inside the collection pipeline is ever retried.
func IsRetryable(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeBrowser:
		return true
	default:
		return false
	}
}
