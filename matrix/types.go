// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by dense storage and kernels.
// This file intentionally contains ONLY the element constraint, the public
// Matrix interface and the transpose selector used by Gemm.
package matrix

// Float is the element constraint: single or double precision.
// The two precisions never mix inside one operation.
type Float interface {
	float32 | float64
}

// Matrix represents a two-dimensional mutable array of T values.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix[T Float] interface {
	// Rows returns the number of rows in the matrix.
	// Complexity: O(1).
	Rows() int

	// Cols returns the number of columns in the matrix.
	// Complexity: O(1).
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	// Complexity: O(1).
	At(i, j int) (T, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	// Complexity: O(1).
	Set(i, j int, v T) error

	// Clone returns a deep copy of the matrix.
	// The returned Matrix is independent of the original.
	// Complexity: O(rows*cols).
	Clone() Matrix[T]
}

// Op selects whether Gemm reads an operand as-is or transposed.
type Op int

const (
	// NoTrans reads the operand as stored: op(A) = A.
	NoTrans Op = iota
	// Trans reads the operand transposed: op(A) = Aᵀ.
	Trans
)

// String returns "N" or "T", the BLAS spelling of the flag.
func (o Op) String() string {
	if o == Trans {
		return "T"
	}

	return "N"
}

// shapeOf returns the (rows, cols) of op(m).
// Complexity: O(1).
func shapeOf[T Float](m Matrix[T], o Op) (int, int) {
	if o == Trans {
		return m.Cols(), m.Rows()
	}

	return m.Rows(), m.Cols()
}
