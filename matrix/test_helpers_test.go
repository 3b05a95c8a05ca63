// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities for kernels.
//   • Keep all data finite and well-formed.

package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvstats/matrix"
)

// hide WRAPS any Matrix to hide its concrete type from type assertions.
// Use hide[T]{X} in tests to force non-*Dense (fallback) paths.
//
// AI-Hints:
//   - Prefer wrapping ONLY the operand you want to de-opt; keep the other one *Dense to isolate path differences.
type hide[T matrix.Float] struct{ matrix.Matrix[T] }

// MustDense ALLOCATES an r×c *Dense or fails the test (fatal on error).
func MustDense[T matrix.Float](t testing.TB, r, c int) *matrix.Dense[T] {
	t.Helper()
	m, err := matrix.NewDense[T](r, c)
	require.NoError(t, err, "NewDense(%d,%d)", r, c)

	return m
}

// NewFilledDense BUILDS r×c *Dense from a row-major flat slice.
// Fatal test failure if lengths mismatch or Set fails.
//
// AI-Hints:
//   - Use with CompareExact for integer-like matrices.
func NewFilledDense[T matrix.Float](t testing.TB, r, c int, vals []T) *matrix.Dense[T] {
	t.Helper()
	require.Len(t, vals, r*c, "NewFilledDense: value count")
	d := MustDense[T](t, r, c)
	var i, j int // loop iterators
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			require.NoError(t, d.Set(i, j, vals[i*c+j]))
		}
	}

	return d
}

// RandFilledDense RETURNS a new r×c Dense filled with deterministic U(-1,1).
//
// Determinism:
//   - Deterministic per seed.
func RandFilledDense(t testing.TB, r, c int, seed int64) *matrix.Dense[float64] {
	t.Helper()
	m := MustDense[float64](t, r, c)
	rng := rand.New(rand.NewSource(seed))
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			require.NoError(t, m.Set(i, j, rng.Float64()*2-1)) // 0*2-1=-1 || 1*2-1=1
		}
	}

	return m
}

// MustAt READS m[i,j] or fails the test.
func MustAt[T matrix.Float](t testing.TB, m matrix.Matrix[T], i, j int) T {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err, "At(%d,%d)", i, j)

	return v
}

// CompareExact ASSERTS strict equality between matrix and 2D literal.
//
// AI-Hints:
//   - For floats use CompareClose instead.
func CompareExact[T matrix.Float](t testing.TB, want [][]T, m matrix.Matrix[T]) {
	t.Helper()
	require.Equal(t, len(want), m.Rows(), "CompareExact: Rows")
	var i, j int
	for i = 0; i < m.Rows(); i++ {
		require.Equal(t, len(want[i]), m.Cols(), "CompareExact: Cols[%d]", i)
		for j = 0; j < m.Cols(); j++ {
			require.Equal(t, want[i][j], MustAt(t, m, i, j), "m[%d,%d]", i, j)
		}
	}
}

// CompareClose ASSERTS AllClose(a,b) under (rtol, atol).
//
// AI-Hints:
//   - Use (0,0) for pure equality when numbers are exact.
func CompareClose[T matrix.Float](t testing.TB, a, b matrix.Matrix[T], rtol, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(a, b, rtol, atol)
	require.NoError(t, err, "AllClose")
	require.True(t, ok, "matrices differ beyond rtol=%g atol=%g:\n%v\nvs\n%v", rtol, atol, a, b)
}

// naiveGemm is the literal definition alpha·op(A)·op(B) + beta·C over At, used as an oracle.
func naiveGemm(t testing.TB, tA, tB matrix.Op, alpha float64, a, b matrix.Matrix[float64], beta float64, c matrix.Matrix[float64]) *matrix.Dense[float64] {
	t.Helper()
	opA, opB := a, b
	var err error
	if tA == matrix.Trans {
		opA, err = matrix.Transpose(a)
		require.NoError(t, err)
	}
	if tB == matrix.Trans {
		opB, err = matrix.Transpose(b)
		require.NoError(t, err)
	}
	out := MustDense[float64](t, opA.Rows(), opB.Cols())
	for i := 0; i < opA.Rows(); i++ {
		for j := 0; j < opB.Cols(); j++ {
			var s float64
			for k := 0; k < opA.Cols(); k++ {
				s += MustAt(t, opA, i, k) * MustAt(t, opB, k, j)
			}
			v := alpha * s
			if c != nil {
				v += beta * MustAt(t, c, i, j)
			}
			require.NoError(t, out.Set(i, j, v))
		}
	}

	return out
}

// nan returns a quiet NaN for poisoning inputs.
func nan() float64 { return math.NaN() }
