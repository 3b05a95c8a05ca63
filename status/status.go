// SPDX-License-Identifier: MIT

// Package status defines the outcome space shared by every lvstats operation.
//
// Every operation returns (value, error). The error, when non-nil, belongs to
// exactly one failure class, and Of(err) recovers that class as a Status code:
//
//	Success           - err == nil; the value is meaningful.
//	InvalidInput      - empty sample, mismatched lengths, zero-variance input.
//	DimensionMismatch - matrix-multiply shape violation, non-scalar VaR form.
//	BackendFailure    - the accelerator reported a device/allocation error.
//
// Packages declare their own sentinels by wrapping the class sentinels below,
// so errors.Is(err, status.ErrInvalidInput) holds for every InvalidInput error
// regardless of which package produced it.
package status

import "errors"

// Status is the enumerated outcome of one operation.
type Status int

// Outcome codes. The zero value is Success.
const (
	Success Status = iota
	InvalidInput
	DimensionMismatch
	BackendFailure
	// Unknown is reported for non-nil errors outside the taxonomy.
	Unknown
)

// Class sentinels. Match with errors.Is; never compare wrapped errors with ==.
var (
	// ErrInvalidInput marks a precondition violation on caller data.
	ErrInvalidInput = errors.New("status: invalid input")

	// ErrDimensionMismatch marks incompatible matrix/vector shapes.
	ErrDimensionMismatch = errors.New("status: dimension mismatch")

	// ErrBackendFailure marks a failure reported by (or about) the accelerator.
	ErrBackendFailure = errors.New("status: backend failure")
)

var names = [...]string{
	Success:           "success",
	InvalidInput:      "invalid_input",
	DimensionMismatch: "dimension_mismatch",
	BackendFailure:    "backend_failure",
	Unknown:           "unknown",
}

// String returns the snake_case label used in logs and metric labels.
func (s Status) String() string {
	if s < Success || s > Unknown {
		return names[Unknown]
	}

	return names[s]
}

// Of maps err onto its Status class.
// A nil error is Success; an error wrapping none of the class sentinels is Unknown.
// Complexity: O(depth of the wrap chain).
func Of(err error) Status {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, ErrInvalidInput):
		return InvalidInput
	case errors.Is(err, ErrDimensionMismatch):
		return DimensionMismatch
	case errors.Is(err, ErrBackendFailure):
		return BackendFailure
	default:
		return Unknown
	}
}

// sentinel is a package-level error value that belongs to a failure class.
type sentinel struct {
	msg   string
	class error
}

func (e *sentinel) Error() string { return e.msg }
func (e *sentinel) Unwrap() error { return e.class }

// Sentinel declares a new sentinel error with message msg inside class.
// The message is kept verbatim (no class suffix) so package prefixes such as
// "matrix: ..." stay greppable, while errors.Is(err, class) still holds.
//
// Sentinel is meant for package-level var blocks; each call returns a
// distinct value.
func Sentinel(class error, msg string) error {
	return &sentinel{msg: msg, class: class}
}
