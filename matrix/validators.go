// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels/facades minimal by delegating shape/nil checks here.
//  - Return sentinel errors tagged with the validator name so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing on success.
//
// Note:
//  - Each composite validator follows a fixed sequence (e.g. NotNil → Shape).
//  - Each validator describes what it validates and what it assumes (e.g. no nil check).

package matrix

import (
	"fmt"
	"reflect"
)

// validatorErrorf wraps an underlying error with the given validator tag.
// Used internally to maintain consistent labeling of sentinel violations.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// isNil reports whether m is nil, including a typed nil pointer stored in the interface.
func isNil[T Float](m Matrix[T]) bool {
	if m == nil {
		return true
	}
	v := reflect.ValueOf(m)

	return v.Kind() == reflect.Pointer && v.IsNil()
}

// ValidateNotNil – Ensures the matrix reference is non-nil.
//
// Inputs: Matrix interface value (a typed nil *Dense counts as nil).
// Returns ErrNilMatrix if m == nil.
// Complexity: O(1).
// AI-Hints: Use as the first step in composite validations.
func ValidateNotNil[T Float](m Matrix[T]) error {
	if isNil(m) {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix) // single source of truth for "nil argument"
	}

	return nil
}

// ValidateSameShape – Ensures matrices a and b have equal dimensions.
//
// Implementation: Assumes a and b are not nil (caller must ensure).
// Return: nil or wrapped ErrDimensionMismatch.
// Complexity: O(1).
func ValidateSameShape[T Float](a, b Matrix[T]) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols).
//
// Implementation: Assumes m is not nil.
// Errors: ErrDimensionMismatch if not square.
// Complexity: O(1).
func ValidateSquare[T Float](m Matrix[T]) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateBinarySameShape – Composite: NotNil(a) → NotNil(b) → SameShape.
//
// Errors: Combines ErrNilMatrix and ErrDimensionMismatch.
// Complexity: O(1).
func ValidateBinarySameShape[T Float](a, b Matrix[T]) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}

	return nil
}

// ValidateSquareNonNil – Composite: NotNil → Square.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateSquareNonNil[T Float](m Matrix[T]) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSquareNonNil", err)
	}
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateSquareNonNil", err)
	}

	return nil
}

// ValidateGemm – Composite check for alpha·op(A)·op(B) + beta·C.
//
// Sequence: NotNil(a) → NotNil(b) → inner dimension → C shape (when c != nil).
// Returns the (rows, cols) of the product on success.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
// AI-Hints: Backends should call this before touching device memory so shape
// errors never surface as device codes.
func ValidateGemm[T Float](tA, tB Op, a, b, c Matrix[T]) (int, int, error) {
	if err := ValidateNotNil(a); err != nil {
		return 0, 0, validatorErrorf("ValidateGemm", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return 0, 0, validatorErrorf("ValidateGemm", err)
	}
	ar, ac := shapeOf(a, tA)
	br, bc := shapeOf(b, tB)
	if ac != br {
		return 0, 0, validatorErrorf("ValidateGemm", fmt.Errorf("op(A) is %dx%d, op(B) is %dx%d: %w", ar, ac, br, bc, ErrDimensionMismatch))
	}
	if !isNil(c) && (c.Rows() != ar || c.Cols() != bc) {
		return 0, 0, validatorErrorf("ValidateGemm", fmt.Errorf("C is %dx%d, want %dx%d: %w", c.Rows(), c.Cols(), ar, bc, ErrDimensionMismatch))
	}

	return ar, bc, nil
}

