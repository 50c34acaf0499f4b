// Package errors provides structured error types for dashforge.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP API, and the exporter
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages (one notification per failed operation)
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (bad flags, malformed trees)
//   - *_FAILED / *_NOT_LOADED: Resource failures (decode, fonts, snapshots)
//   - NOT_FOUND, UNKNOWN_TYPE: Lookups that came back empty
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidTree, "duplicate node id %q", id)
//	if errors.Is(err, errors.ErrCodeInvalidTree) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeDecode, origErr, "read transfer payload")
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidTree   Code = "INVALID_TREE"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidColor  Code = "INVALID_COLOR"

	// Lookup errors
	ErrCodeNotFound    Code = "NOT_FOUND"
	ErrCodeUnknownType Code = "UNKNOWN_TYPE"

	// Resource errors
	ErrCodeDecode         Code = "DECODE_FAILED"
	ErrCodeFontNotLoaded  Code = "FONT_NOT_LOADED"
	ErrCodeHost           Code = "HOST_FAILURE"
	ErrCodeSnapshotFailed Code = "SNAPSHOT_FAILED"

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

// GetCodeOr returns the error code of err, or def when it carries none.
func GetCodeOr(err error, def Code) Code {
	if c := GetCode(err); c != "" {
		return c
	}
	return def
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

// NodeError records a failure isolated to a single component node.
// Backends collect these instead of aborting the whole dashboard.
type NodeError struct {
	NodeID string
	Type   string
	Err    error
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	return fmt.Sprintf("node %s (%s): %v", e.NodeID, e.Type, e.Err)
}

// Unwrap returns the underlying node failure.
func (e *NodeError) Unwrap() error { return e.Err }

// Code returns the code of the wrapped error, or INTERNAL_ERROR when the
// cause carries none.
func (e *NodeError) Code() Code {
	return GetCodeOr(e.Err, ErrCodeInternal)
}
