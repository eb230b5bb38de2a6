// Package errors provides error handling for protogen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
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
//	if errors.Is(err, errors.ErrMissingModule) {
//	    // handle missing module
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
	Is     = crdb.Is
	IsAny  = crdb.IsAny
	As     = crdb.As
	Unwrap = crdb.Unwrap
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Common sentinel errors for use across protogen.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrMissingModule indicates a distinguished stub module (the type-variable
	// module or the package initializer) is absent from the input corpus
	ErrMissingModule = New("required stub module missing")

	// ErrNotFetched indicates the stub corpus has not been cloned yet
	ErrNotFetched = New("stub corpus not fetched")

	// ErrInvalidConfig indicates the loaded configuration failed validation
	ErrInvalidConfig = New("invalid configuration")

	// ErrParse indicates stub source that the parser could not consume
	ErrParse = New("parse error")
)

// IsMissingModuleError checks if an error is or wraps ErrMissingModule
func IsMissingModuleError(err error) bool {
	return err != nil && Is(err, ErrMissingModule)
}

// NewMissingModuleError creates a missing-module error naming the module
func NewMissingModuleError(name string) error {
	return Wrap(ErrMissingModule, name)
}
