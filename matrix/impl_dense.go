// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Convert from/to caller-owned [][]T without aliasing.
//
// AI-Hints:
//   - Prefer fast-paths on *Dense in hot algebra (see impl_linear_algebra.go): operate on the flat data slice directly.
//   - FromRows copies; ToRows copies. Mutating either side never affects the other.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); FromRows/ToRows: O(r*c).

package matrix

import (
	"fmt"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt       = "At"       // method tag used in error wrappers
	ctxSet      = "Set"      // method tag used in error wrappers
	ctxFromRows = "FromRows" // ctor tag for FromRows
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
//
// Implementation:
//   - Stage 1: format "Dense.<method>(row,col): %w".
//
// Inputs:
//   - method: context tag (ctxAt/ctxSet/...)
//   - row, col: coordinates
//   - err: sentinel (e.g., ErrOutOfRange)
//
// Complexity:
//   - Time O(1), Space O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix of T.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense[T Float] struct {
	r, c int // row and column counts (>=0; zero allowed only for internal zero-OK constructors)
	data []T // contiguous row-major storage (len == r*c)
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix[float64] = (*Dense[float64])(nil)
	_ Matrix[float32] = (*Dense[float32])(nil)
	_ fmt.Stringer    = (*Dense[float64])(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
// MAIN DESCRIPTION:
//   - Public constructor for Dense with strict shape validation.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer.
//
// Inputs:
//   - rows: positive number of rows
//   - cols: positive number of columns
//
// Returns:
//   - *Dense[T]: newly allocated matrix.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Determinism:
//   - Fixed zero initialization; no randomness.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
//
// AI-Hints:
//   - Element type is chosen at the call site: NewDense[float32](2, 2).
func NewDense[T Float](rows, cols int) (*Dense[T], error) {
	// Validate shape.
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	// Allocate a contiguous flat buffer; make() zero-fills it deterministically.
	return &Dense[T]{r: rows, c: cols, data: make([]T, rows*cols)}, nil
}

// newDenseZeroOK is an internal constructor that allows rows==0 or cols==0.
// Complexity: O(rows*cols).
func newDenseZeroOK[T Float](rows, cols int) (*Dense[T], error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}

	// Zero-length buffer is legal when rows==0 or cols==0 (len == rows*cols).
	return &Dense[T]{r: rows, c: cols, data: make([]T, rows*cols)}, nil
}

// FromRows builds a Dense from a caller-owned slice of rows (deep copy).
// MAIN DESCRIPTION:
//   - Ingest [][]T (the natural "ordered sequence of rows" shape) into row-major storage.
//
// Implementation:
//   - Stage 1: validate at least one row and one column.
//   - Stage 2: validate every row has the width of row 0.
//   - Stage 3: copy rows into the flat buffer.
//
// Errors:
//   - ErrInvalidDimensions when rows is empty or row 0 is empty.
//   - ErrRagged when any row length differs from row 0.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func FromRows[T Float](rows [][]T) (*Dense[T], error) {
	// Stage 1 (Validate): need a non-empty rectangle.
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, matrixErrorf(ctxFromRows, ErrInvalidDimensions)
	}
	r, c := len(rows), len(rows[0])

	// Stage 2 (Validate): reject ragged input before allocating.
	for i := 1; i < r; i++ {
		if len(rows[i]) != c {
			return nil, matrixErrorf(ctxFromRows, fmt.Errorf("row %d has %d values, want %d: %w", i, len(rows[i]), c, ErrRagged))
		}
	}

	// Stage 3 (Copy): row blocks into the flat buffer.
	m := &Dense[T]{r: r, c: c, data: make([]T, r*c)}
	for i := 0; i < r; i++ {
		copy(m.data[i*c:(i+1)*c], rows[i])
	}

	return m, nil
}

// RowVector wraps values as a 1×N matrix (copy).
// Errors: ErrInvalidDimensions for an empty slice.
func RowVector[T Float](values []T) (*Dense[T], error) {
	if len(values) == 0 {
		return nil, ErrInvalidDimensions
	}
	m := &Dense[T]{r: 1, c: len(values), data: make([]T, len(values))}
	copy(m.data, values)

	return m, nil
}

// Rows returns the row count. No side effects.
// Complexity: O(1).
func (m *Dense[T]) Rows() int { return m.r }

// Cols returns the column count. No side effects.
// Complexity: O(1).
func (m *Dense[T]) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
// Complexity: O(1).
func (m *Dense[T]) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Returns a bare sentinel; public methods (At/Set) wrap with coordinates.
// Complexity: O(1).
func (m *Dense[T]) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Never panics on out-of-range; returns a wrapped sentinel.
// Complexity: O(1).
func (m *Dense[T]) At(row, col int) (T, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err) // wrap with context
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns ErrOutOfRange.
// Complexity: O(1).
func (m *Dense[T]) Set(row, col int, v T) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err) // wrap with context
	}
	m.data[off] = v // direct flat write

	return nil
}

// Clone returns a deep copy (new buffer, same shape).
// Complexity: Time O(r*c), Space O(r*c).
func (m *Dense[T]) Clone() Matrix[T] {
	cp := make([]T, len(m.data)) // allocate same length
	copy(cp, m.data)             // deep copy

	return &Dense[T]{r: m.r, c: m.c, data: cp}
}

// ToRows returns the contents as a freshly allocated [][]T.
// The result never aliases the matrix buffer.
// Complexity: Time O(r*c), Space O(r*c).
func (m *Dense[T]) ToRows() [][]T {
	out := make([][]T, m.r)
	for i := 0; i < m.r; i++ {
		row := make([]T, m.c)
		copy(row, m.data[i*m.c:(i+1)*m.c])
		out[i] = row
	}

	return out
}

// String HUMAN-READABLE dump of rows for diagnostics.
// Implementation:
//   - Stage 1: iterate rows/cols deterministically.
//   - Stage 2: write values into strings.Builder with standard delimiters.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for formatting.
//
// AI-Hints:
//   - For large matrices prefer printing a few rows/cols or summarize.
func (m *Dense[T]) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ { // iterate rows deterministically
		b.WriteString(_fmtRowOpen) // open row
		base = i * m.c
		for j = 0; j < m.c; j++ { // iterate cols
			fmt.Fprintf(&b, "%g", m.data[base+j])
			if j+1 < m.c {
				b.WriteString(_fmtSep) // separate values with comma + space
			}
		}
		b.WriteString(_fmtRowClose) // close row
	}

	return b.String()
}
