// Package errors provides structured error types for knightpaths.
//
// Every failure the CLI reports carries a machine-readable [Code] so the
// shell can print a targeted message per failure kind:
//
//   - INVALID_FORMAT: input is not exactly two characters (FormatError)
//   - INVALID_SQUARE: unknown column letter or row digit (InvalidSquareError)
//   - OUT_OF_BOUNDS: a position outside the 8x8 board (OutOfBoundsError)
//   - INVALID_INPUT: bad option value such as an unknown output format
//   - NOT_FOUND, RENDER_FAILED, INTERNAL_ERROR: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidSquare, "unknown column %q", c)
//	if errors.Is(err, errors.ErrCodeInvalidSquare) {
//	    // print a targeted message
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRenderFailed, origErr, "render %s", format)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Square parsing errors
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidSquare Code = "INVALID_SQUARE"
	ErrCodeOutOfBounds   Code = "OUT_OF_BOUNDS"

	// Option validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidPath  Code = "INVALID_PATH"

	// Result errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeRenderFailed Code = "RENDER_FAILED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// IsInputError reports whether err was caused by malformed square input.
func IsInputError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidFormat, ErrCodeInvalidSquare, ErrCodeOutOfBounds:
		return true
	}
	return false
}
