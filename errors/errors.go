// Package errors provides error handling for cqlls.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - PII-safe error formatting
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrDocumentNotFound) {
//	    // handle unknown document
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Common sentinel errors for use across cqlls.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrDocumentNotFound indicates the requested document URI is not tracked
	ErrDocumentNotFound = New("document not found")

	// ErrNoActiveDocument indicates no document has been opened or changed yet
	ErrNoActiveDocument = New("no active document")

	// ErrSchemaUnavailable indicates the schema provider could not be reached
	ErrSchemaUnavailable = New("schema unavailable")

	// ErrInvalidConfig indicates the configuration failed validation
	ErrInvalidConfig = New("invalid configuration")

	// ErrTimeout indicates an operation timed out
	ErrTimeout = New("operation timed out")
)

// IsDocumentNotFoundError checks if an error is or wraps ErrDocumentNotFound
func IsDocumentNotFoundError(err error) bool {
	return err != nil && Is(err, ErrDocumentNotFound)
}

// IsSchemaUnavailableError checks if an error is or wraps ErrSchemaUnavailable
func IsSchemaUnavailableError(err error) bool {
	return err != nil && Is(err, ErrSchemaUnavailable)
}

// NewDocumentNotFoundError creates a document-not-found error with a formatted message
func NewDocumentNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrDocumentNotFound, Newf(format, args...).Error())
}
