// SPDX-License-Identifier: MIT

package cpu

import (
	"math"

	"github.com/katalvlaran/lvstats/accel"
	"github.com/katalvlaran/lvstats/matrix"
)

// kernels implements accel.Kernels[T] on the host.
type kernels[T matrix.Float] struct {
	budget int64
}

// elemSize returns the byte width of T.
func elemSize[T matrix.Float]() int64 {
	var zero T
	if _, ok := any(zero).(float32); ok {
		return 4
	}

	return 8
}

// fits reports whether n elements of T fit into the session budget.
func (k kernels[T]) fits(n int) bool {
	return int64(n)*elemSize[T]() <= k.budget
}

// sumSquares returns Σ (x_i - mean)^2 in float64.
func sumSquares[T matrix.Float](x []T, mean T) float64 {
	var s, d float64
	m := float64(mean)
	for _, v := range x {
		d = float64(v) - m
		s += d * d
	}

	return s
}

// sumProducts returns Σ (x_i - xm)(y_i - ym) in float64.
func sumProducts[T matrix.Float](x []T, xm T, y []T, ym T) float64 {
	var s float64
	mx, my := float64(xm), float64(ym)
	for i := range x {
		s += (float64(x[i]) - mx) * (float64(y[i]) - my)
	}

	return s
}

// SampleStdDev is sqrt(Σ(x-mean)² / (n-1)). Needs n >= 2.
func (k kernels[T]) SampleStdDev(x []T, mean T) (float64, accel.Code) {
	if len(x) < 2 {
		return 0, CodeInvalidValue
	}
	if !k.fits(len(x)) {
		return 0, CodeAllocation
	}

	return math.Sqrt(sumSquares(x, mean) / float64(len(x)-1)), accel.CodeSuccess
}

// PopulationStdDev is sqrt(Σ(x-mean)² / n). Needs n >= 1.
func (k kernels[T]) PopulationStdDev(x []T, mean T) (float64, accel.Code) {
	if len(x) == 0 {
		return 0, CodeInvalidValue
	}
	if !k.fits(len(x)) {
		return 0, CodeAllocation
	}

	return math.Sqrt(sumSquares(x, mean) / float64(len(x))), accel.CodeSuccess
}

func (k kernels[T]) pairCheck(x, y []T, minLen int) accel.Code {
	if len(x) != len(y) || len(x) < minLen {
		return CodeInvalidValue
	}
	if !k.fits(len(x) + len(y)) {
		return CodeAllocation
	}

	return accel.CodeSuccess
}

// SampleCovariance is Σ(x-xm)(y-ym) / (n-1).
func (k kernels[T]) SampleCovariance(x []T, xMean T, y []T, yMean T) (float64, accel.Code) {
	if code := k.pairCheck(x, y, 2); !code.OK() {
		return 0, code
	}

	return sumProducts(x, xMean, y, yMean) / float64(len(x)-1), accel.CodeSuccess
}

// PopulationCovariance is Σ(x-xm)(y-ym) / n.
func (k kernels[T]) PopulationCovariance(x []T, xMean T, y []T, yMean T) (float64, accel.Code) {
	if code := k.pairCheck(x, y, 1); !code.OK() {
		return 0, code
	}

	return sumProducts(x, xMean, y, yMean) / float64(len(x)), accel.CodeSuccess
}

// PearsonCorrelation is Σdxdy / sqrt(Σdx² · Σdy²). A zero denominator yields NaN
// with a success code, the way a device kernel reports it.
func (k kernels[T]) PearsonCorrelation(x []T, xMean T, y []T, yMean T) (float64, accel.Code) {
	if code := k.pairCheck(x, y, 1); !code.OK() {
		return 0, code
	}
	den := math.Sqrt(sumSquares(x, xMean) * sumSquares(y, yMean))
	if den == 0 {
		return math.NaN(), accel.CodeSuccess
	}

	return sumProducts(x, xMean, y, yMean) / den, accel.CodeSuccess
}

// Multiply computes alpha·op(A)·op(B) + beta·C via matrix.Gemm after checking
// that A, B, C and the result fit the budget.
func (k kernels[T]) Multiply(tA, tB matrix.Op, alpha T, a, b matrix.Matrix[T], beta T, c matrix.Matrix[T]) (*matrix.Dense[T], accel.Code) {
	rows, cols, err := matrix.ValidateGemm(tA, tB, a, b, c)
	if err != nil {
		return nil, CodeInvalidValue
	}
	n := a.Rows()*a.Cols() + b.Rows()*b.Cols() + rows*cols
	if c != nil {
		n += rows * cols
	}
	if !k.fits(n) {
		return nil, CodeAllocation
	}
	out, err := matrix.Gemm(tA, tB, alpha, a, b, beta, c)
	if err != nil {
		return nil, CodeInvalidValue
	}

	return out, accel.CodeSuccess
}
