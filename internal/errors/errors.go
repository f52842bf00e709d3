// Package errors provides coded error values for the pegboard editor.
//
// Engine failures are all recoverable: a rejected placement, a stale id or an
// undo at the start of history never abort the program. The code lets callers
// decide how to surface them (a notice, a silent no-op) without string
// matching.
//
//	err := errors.New(errors.ErrCodePlacementRejected, "cell (%d,%d) is occupied", x, y)
//	if errors.Is(err, errors.ErrCodePlacementRejected) {
//	    // show a notice
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	// Engine errors. None of these are fatal.
	ErrCodePlacementRejected Code = "PLACEMENT_REJECTED"
	ErrCodeInvalidReference  Code = "INVALID_REFERENCE"
	ErrCodeHistoryBoundary   Code = "HISTORY_BOUNDARY"

	// Input errors.
	ErrCodeInvalidShape   Code = "INVALID_SHAPE"
	ErrCodeInvalidCatalog Code = "INVALID_CATALOG"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"

	// Output errors.
	ErrCodeExport Code = "EXPORT_FAILED"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
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

// New creates an Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates an Error wrapping cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether any error in err's chain carries code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Message returns the human-readable message of the first *Error in err's
// chain, falling back to err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
