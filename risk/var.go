// SPDX-License-Identifier: MIT

package risk

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvstats/matrix"
)

const (
	opQuadraticForm = "QuadraticForm"
	opValueAtRisk   = "ValueAtRisk"
)

// Multiplier computes alpha·op(A)·op(B) + beta·C. *stats.Composer[T] implements it.
type Multiplier[T matrix.Float] interface {
	Multiply(tA, tB matrix.Op, alpha T, a, b matrix.Matrix[T], beta T, c matrix.Matrix[T]) (*matrix.Dense[T], error)
}

func riskErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// QuadraticForm returns W·Σ·Wᵀ for the 1×N weight row W.
//
// Implementation:
//   - Stage 1: validate multiplier, weights, and that Σ is len(weights)×len(weights).
//   - Stage 2: M1 = W·Σ (1×N).
//   - Stage 3: M2 = M1·Wᵀ (1×1), read M2[0,0].
//
// Errors:
//   - ErrNilMultiplier, ErrEmptyWeights, matrix.ErrNilMatrix: InvalidInput.
//   - ErrShape, ErrNonScalar: DimensionMismatch.
//   - Multiplier errors, wrapped.
func QuadraticForm[T matrix.Float](m Multiplier[T], weights []T, cov matrix.Matrix[T]) (float64, error) {
	// Stage 1 (Validate).
	if m == nil {
		return 0, riskErrorf(opQuadraticForm, ErrNilMultiplier)
	}
	if len(weights) == 0 {
		return 0, riskErrorf(opQuadraticForm, ErrEmptyWeights)
	}
	if err := matrix.ValidateNotNil(cov); err != nil {
		return 0, riskErrorf(opQuadraticForm, err)
	}
	n := len(weights)
	if cov.Rows() != n || cov.Cols() != n {
		return 0, riskErrorf(opQuadraticForm, fmt.Errorf("%d weights, covariance %dx%d: %w", n, cov.Rows(), cov.Cols(), ErrShape))
	}
	w, err := matrix.RowVector(weights)
	if err != nil {
		return 0, riskErrorf(opQuadraticForm, err)
	}

	// Stage 2 (W·Σ).
	m1, err := m.Multiply(matrix.NoTrans, matrix.NoTrans, 1, w, cov, 0, nil)
	if err != nil {
		return 0, riskErrorf(opQuadraticForm, err)
	}

	// Stage 3 (M1·Wᵀ). Row-major: the 1×N result against W needs W transposed.
	m2, err := m.Multiply(matrix.NoTrans, matrix.Trans, 1, m1, w, 0, nil)
	if err != nil {
		return 0, riskErrorf(opQuadraticForm, err)
	}
	if m2 == nil || m2.Rows() != 1 || m2.Cols() != 1 {
		r, c := 0, 0
		if m2 != nil {
			r, c = m2.Rows(), m2.Cols()
		}
		return 0, riskErrorf(opQuadraticForm, fmt.Errorf("got %dx%d: %w", r, c, ErrNonScalar))
	}
	v, err := m2.At(0, 0)
	if err != nil {
		return 0, riskErrorf(opQuadraticForm, err)
	}

	return float64(v), nil
}

// ValueAtRisk returns sqrt(W·Σ·Wᵀ) · confidence · sqrt(period).
//
// Errors:
//   - ErrInvalidPeriod (period <= 0), ErrInvalidConfidence (NaN/Inf): InvalidInput,
//     checked before any product.
//   - ErrNegativeVariance when the quadratic form is negative or NaN.
//   - Everything QuadraticForm returns.
func ValueAtRisk[T matrix.Float](m Multiplier[T], weights []T, cov matrix.Matrix[T], confidence float64, period int) (float64, error) {
	if period <= 0 {
		return 0, riskErrorf(opValueAtRisk, fmt.Errorf("period=%d: %w", period, ErrInvalidPeriod))
	}
	if math.IsNaN(confidence) || math.IsInf(confidence, 0) {
		return 0, riskErrorf(opValueAtRisk, ErrInvalidConfidence)
	}
	variance, err := QuadraticForm(m, weights, cov)
	if err != nil {
		return 0, riskErrorf(opValueAtRisk, err)
	}
	if !(variance >= 0) {
		return 0, riskErrorf(opValueAtRisk, fmt.Errorf("variance=%g: %w", variance, ErrNegativeVariance))
	}

	return math.Sqrt(variance) * confidence * math.Sqrt(float64(period)), nil
}

// Calculator binds a multiplier and a logger.
type Calculator[T matrix.Float] struct {
	m   Multiplier[T]
	log *zap.Logger
}

// NewCalculator returns a calculator over m. A nil logger means no logging.
func NewCalculator[T matrix.Float](m Multiplier[T], log *zap.Logger) *Calculator[T] {
	if log == nil {
		log = zap.NewNop()
	}

	return &Calculator[T]{m: m, log: log.With(zap.String("component", "risk"))}
}

// Variance returns the portfolio variance W·Σ·Wᵀ.
func (c *Calculator[T]) Variance(weights []T, cov matrix.Matrix[T]) (float64, error) {
	return QuadraticForm(c.m, weights, cov)
}

// VaR is ValueAtRisk with debug logging of the inputs' shape and the result.
func (c *Calculator[T]) VaR(weights []T, cov matrix.Matrix[T], confidence float64, period int) (float64, error) {
	v, err := ValueAtRisk(c.m, weights, cov, confidence, period)
	if err != nil {
		c.log.Debug("value at risk failed", zap.Int("assets", len(weights)), zap.Error(err))
		return 0, err
	}
	c.log.Debug("value at risk",
		zap.Int("assets", len(weights)),
		zap.Float64("confidence", confidence),
		zap.Int("period", period),
		zap.Float64("var", v),
	)

	return v, nil
}
