// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels MUST return these sentinels and tests MUST check them
// via errors.Is. No kernel should panic on user-triggered error conditions.

package matrix

import "github.com/katalvlaran/lvstats/status"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Each sentinel belongs to one status class, so
// status.Of(err) classifies any error coming out of this package.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil operand -> shape/index -> dimension mismatch -> numeric policy.

var (
	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Add of different shapes, or Gemm where op(A).Cols != op(B).Rows.
	// It IS the status class sentinel, so both names match under errors.Is.
	ErrDimensionMismatch = status.ErrDimensionMismatch

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = status.Sentinel(status.ErrInvalidInput, "matrix: index out of range")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = status.Sentinel(status.ErrInvalidInput, "matrix: nil matrix")

	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = status.Sentinel(status.ErrInvalidInput, "matrix: dimensions must be > 0")

	// ErrRagged signals that a row-slice input has rows of different lengths.
	ErrRagged = status.Sentinel(status.ErrDimensionMismatch, "matrix: ragged rows")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required
	// (tolerances of AllClose).
	ErrNaNInf = status.Sentinel(status.ErrInvalidInput, "matrix: NaN or Inf encountered")
)
