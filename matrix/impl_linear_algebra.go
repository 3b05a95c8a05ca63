// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// general matrix multiplication with transpose flags and scaling (Gemm),
// plain multiplication, transpose, scalar scaling and element-wise addition.
// All functions perform strict fail-fast validation and return clear errors
// on dimension mismatches.
//
// Purpose:
//   - Declare the canonical host linear-algebra kernels used across the module.
//   - Define operation tags and shared constants for determinism and error reporting.
//
// Notes:
//   - Every kernel allocates a fresh *Dense result; operands are never mutated.
//   - *Dense operands unlock flat-slice fast paths; other Matrix values use At/Set.

package matrix

import "fmt"

// ZeroSum is the initial accumulator value for dot products.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd       = "Add"
	opGemm      = "Gemm"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting across facades.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Complexity:
//   - Time O(1), Space O(1).
//
// AI-Hints:
//   - Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Gemm computes alpha·op(A)·op(B) + beta·C into a fresh Dense (BLAS xGEMM semantics).
// MAIN DESCRIPTION:
//   - General dense product with optional transpose of either operand and scaling.
//   - C is an optional accumulator: nil is treated as the zero matrix.
//
// Implementation:
//   - Stage 1: ValidateGemm (nil operands, inner dimension, C shape).
//   - Stage 2: Seed the result with beta·C (skipped when beta == 0 or C == nil).
//   - Stage 3: If alpha != 0, accumulate alpha·op(A)·op(B); *Dense operands use
//     flat strided loops (i→k→j), others use At (i→j→k).
//
// Behavior highlights:
//   - beta == 0 never reads C, so NaN in C does not leak into the result.
//   - alpha == 0 never reads A or B: the result is exactly beta·C.
//   - With alpha != 0 every op(A)·op(B) term is evaluated, so a NaN or Inf in
//     an operand reaches the result under IEEE rules (0·Inf = NaN).
//
// Inputs:
//   - tA, tB: NoTrans or Trans for A and B.
//   - alpha : scale of the product.
//   - a, b  : operands; op(A) is r×n, op(B) is n×c.
//   - beta  : scale of the accumulator.
//   - c     : optional r×c accumulator (nil = zeros). Not mutated.
//
// Returns:
//   - *Dense[T]: new r×c result.
//
// Errors:
//   - ErrNilMatrix (nil A/B), ErrDimensionMismatch (inner or C shape).
//
// Determinism:
//   - Fixed loop orders independent of values.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
//
// AI-Hints:
//   - Use Trans instead of materializing Transpose(A): it is indexing only.
//   - Quadratic forms w·Σ·wᵀ are Gemm(N,N,1,w,Σ,0,nil) followed by Gemm(N,T,1,·,w,0,nil).
func Gemm[T Float](tA, tB Op, alpha T, a, b Matrix[T], beta T, c Matrix[T]) (*Dense[T], error) {
	// Stage 1 (Validate): shapes and presence.
	rows, cols, err := ValidateGemm(tA, tB, a, b, c)
	if err != nil {
		return nil, matrixErrorf(opGemm, err)
	}
	_, inner := shapeOf(a, tA)

	res, err := NewDense[T](rows, cols)
	if err != nil {
		return nil, matrixErrorf(opGemm, err)
	}

	// Stage 2 (Seed): res = beta·C.
	if beta != 0 && !isNil(c) {
		if err = seedScaled(res, c, beta); err != nil {
			return nil, matrixErrorf(opGemm, err)
		}
	}

	// Stage 3 (Accumulate): res += alpha·op(A)·op(B).
	if alpha == 0 {
		return res, nil
	}

	var (
		i, j, k int
		av, bv  T
	)

	// Fast-path for two Dense matrices.
	if da, okA := a.(*Dense[T]); okA {
		if db, okB := b.(*Dense[T]); okB {
			// Strides turn op() into pure index arithmetic:
			//   op(A)[i,k] = da.data[i*aRow + k*aCol]
			//   op(B)[k,j] = db.data[k*bRow + j*bCol]
			aRow, aCol := da.c, 1
			if tA == Trans {
				aRow, aCol = 1, da.c
			}
			bRow, bCol := db.c, 1
			if tB == Trans {
				bRow, bCol = 1, db.c
			}
			var rowOffsetR int
			for i = 0; i < rows; i++ {
				rowOffsetR = i * cols
				for k = 0; k < inner; k++ {
					av = alpha * da.data[i*aRow+k*aCol]
					for j = 0; j < cols; j++ {
						res.data[rowOffsetR+j] += av * db.data[k*bRow+j*bCol]
					}
				}
			}

			return res, nil
		}
	}

	// Fallback: generic interface triple-loop (i-j-k).
	var current T
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			current = ZeroSum
			for k = 0; k < inner; k++ {
				if av, err = atOp(a, tA, i, k); err != nil {
					return nil, matrixErrorf(opGemm, err)
				}
				if bv, err = atOp(b, tB, k, j); err != nil {
					return nil, matrixErrorf(opGemm, err)
				}
				current += av * bv
			}
			res.data[i*cols+j] += alpha * current
		}
	}

	return res, nil
}

// atOp reads op(m)[i,j].
func atOp[T Float](m Matrix[T], o Op, i, j int) (T, error) {
	if o == Trans {
		i, j = j, i
	}
	v, err := m.At(i, j)
	if err != nil {
		return 0, fmt.Errorf("At(%d,%d): %w", i, j, err)
	}

	return v, nil
}

// seedScaled writes beta·src into dst; shapes are validated by the caller.
func seedScaled[T Float](dst *Dense[T], src Matrix[T], beta T) error {
	if ds, ok := src.(*Dense[T]); ok {
		for idx := range dst.data {
			dst.data[idx] = beta * ds.data[idx]
		}

		return nil
	}
	for i := 0; i < dst.r; i++ {
		for j := 0; j < dst.c; j++ {
			v, err := src.At(i, j)
			if err != nil {
				return fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			dst.data[i*dst.c+j] = beta * v
		}
	}

	return nil
}

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// Thin composition over Gemm(NoTrans, NoTrans, 1, A, B, 0, nil).
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul[T Float](a, b Matrix[T]) (*Dense[T], error) {
	res, err := Gemm[T](NoTrans, NoTrans, 1, a, b, 0, nil)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Input is validated non-nil; the original matrix is never mutated.
// Fast-path copies *Dense data via flat indexing; fallback uses At.
//
// Errors:
//   - ErrNilMatrix (from ValidateNotNil).
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the returned matrix.
//
// AI-Hints:
//   - Inside products prefer Gemm with Trans: no materialization at all.
func Transpose[T Float](m Matrix[T]) (*Dense[T], error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	// Allocate result Dense with flipped dimensions.
	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense[T](cols, rows)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j int
	if dm, ok := m.(*Dense[T]); ok {
		// data[i*cols + j] → res.data[j*rows + i]
		var baseSrc int
		for i = 0; i < rows; i++ {
			baseSrc = i * cols
			for j = 0; j < cols; j++ {
				res.data[j*rows+i] = dm.data[baseSrc+j]
			}
		}

		return res, nil
	}

	// Fallback: generic interface loop.
	var v T
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			v, err = m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opTranspose, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			res.data[j*rows+i] = v
		}
	}

	return res, nil
}

// Scale returns a new matrix whose elements are alpha * m[i,j].
// alpha = 0 yields an explicit zero matrix with the same shape.
//
// Errors:
//   - ErrNilMatrix (from ValidateNotNil).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Scale[T Float](m Matrix[T], alpha T) (*Dense[T], error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res, err := NewDense[T](m.Rows(), m.Cols())
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	if err = seedScaled(res, m, alpha); err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B and returns a fresh Dense result.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Determinism:
//   - Flat 0..n-1 for *Dense; i→j for the generic path.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Add[T Float](a, b Matrix[T]) (*Dense[T], error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	res, err := Scale(a, 1)
	if err != nil {
		return nil, matrixErrorf(opAdd, err)
	}

	if db, ok := b.(*Dense[T]); ok {
		for idx := range res.data { // deterministic 0..n-1
			res.data[idx] += db.data[idx]
		}

		return res, nil
	}

	var v T
	for i := 0; i < res.r; i++ {
		for j := 0; j < res.c; j++ {
			if v, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(opAdd, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			res.data[i*res.c+j] += v
		}
	}

	return res, nil
}
