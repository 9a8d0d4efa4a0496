// Package errors provides structured error types for framecast.
//
// This package defines error codes and types that enable:
//   - Separating recoverable per-element and per-asset failures from the
//     fatal categories that abort a conversion
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (recovered locally)
//   - ASSET_*: Image fetch failures (recovered locally)
//   - FONT_*: Typography load failures (recovered locally)
//   - TIMEOUT, INTERNAL_ERROR: Fatal, abort the run
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidElement, "element %s has no bounds", id)
//	if errors.Is(err, errors.ErrCodeInvalidElement) {
//	    // count and continue
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeAssetNetwork, origErr, "fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidElement Code = "INVALID_ELEMENT"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"

	// Asset errors
	ErrCodeAssetNetwork        Code = "ASSET_NETWORK"
	ErrCodeAssetTimeout        Code = "ASSET_TIMEOUT"
	ErrCodeAssetFormat         Code = "ASSET_FORMAT"
	ErrCodeAssetTooLarge       Code = "ASSET_TOO_LARGE"
	ErrCodeAssetUnsupportedURL Code = "ASSET_UNSUPPORTED_URL"

	// Typography errors
	ErrCodeFontUnavailable Code = "FONT_UNAVAILABLE"

	// Lookup errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Fatal errors
	ErrCodeTimeout  Code = "TIMEOUT"
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

// Unwrap returns the underlying cause for errors.Is/As support.
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

// Is checks if err (or any error in its chain) has the given code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error.
// Returns an empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for an error.
// For *Error types, returns the Message field.
// For other errors, returns the error string.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsFatal reports whether err belongs to one of the categories that abort
// a conversion. Everything else is absorbed into counters.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeTimeout, ErrCodeInternal:
		return true
	}
	return false
}

// IsAsset reports whether err is a recoverable asset failure.
func IsAsset(err error) bool {
	switch GetCode(err) {
	case ErrCodeAssetNetwork, ErrCodeAssetTimeout, ErrCodeAssetFormat,
		ErrCodeAssetTooLarge, ErrCodeAssetUnsupportedURL:
		return true
	}
	return false
}
