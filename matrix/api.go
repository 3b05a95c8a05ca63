// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common tasks across the package.
//   - Avoid any logic duplication; each facade delegates to the canonical implementation.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.

package matrix

import "math"

// opAllClose tags AllClose errors.
const opAllClose = "AllClose"

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
//
// AI-Hints: Neutral element for Gemm tests: Gemm(N,N,1,A,I,0,nil) == A.
func NewIdentity[T Float](n int) (*Dense[T], error) {
	I, err := NewDense[T](n, n)
	if err != nil {
		return nil, err // propagate constructor error unchanged
	}
	for i := 0; i < n; i++ { // fixed i order guarantees reproducibility
		I.data[i*n+i] = 1
	}

	return I, nil
}

// ZerosLike returns a new zero matrix with the same shape as m.
// Complexity: O(1) alloc + O(rc) zeroing.
func ZerosLike[T Float](m Matrix[T]) (*Dense[T], error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ZerosLike", err)
	}

	return NewDense[T](m.Rows(), m.Cols())
}

// Product is an alias for Mul: matrix product a × b.
// Complexity: O(r*n*c).
func Product[T Float](a, b Matrix[T]) (*Dense[T], error) { return Mul(a, b) }

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// NaN != anything. Time: O(r*c). Space: O(1). Deterministic.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol| (negative values are normalized).
//   - Comparison runs in float64 regardless of T.
//
// AI-Hints:
//   - AllClose with small atol/rtol is ideal for invariance tests in unit tests.
func AllClose[T Float](a, b Matrix[T], rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf) // invalid tolerance
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)

	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	var av, bv T
	var err error
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			if av, err = a.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			// !(diff <= bound) also rejects NaN on either side.
			if !(math.Abs(float64(av)-float64(bv)) <= atol+rtol*math.Abs(float64(bv))) {
				return false, nil // early-exit on first violation
			}
		}
	}

	return true, nil
}
