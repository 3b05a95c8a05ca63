// SPDX-License-Identifier: MIT
// Package matrix offers the dense numeric containers and host kernels used by
// the statistics engine and the risk calculator.
//
// The matrix package provides:
//
//   - Dense[T], a row-major matrix of float32 or float64 with safe At/Set.
//   - FromRows / ToRows for lossless exchange with [][]T.
//   - Gemm, the general product alpha·op(A)·op(B) + beta·C with transpose
//     flags, plus Mul, Transpose, Scale, Add and AllClose.
//   - Central validators (ValidateGemm, ValidateSquareNonNil, ...).
//
// Every error belongs to a status class (see package status), so callers can
// classify failures with status.Of or errors.Is.
//
// Example:
//
//	w, _ := matrix.RowVector([]float64{100, 200})
//	cov, _ := matrix.FromRows([][]float64{{0.04, 0.01}, {0.01, 0.09}})
//	m1, _ := matrix.Gemm(matrix.NoTrans, matrix.NoTrans, 1, w, cov, 0, nil)
//	v, _ := matrix.Gemm(matrix.NoTrans, matrix.Trans, 1, m1, w, 0, nil)
//	// v is 1×1: the portfolio variance w·Σ·wᵀ.
package matrix
