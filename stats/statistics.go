// SPDX-License-Identifier: MIT

package stats

import (
	"math"

	"github.com/katalvlaran/lvstats/accel"
	"github.com/katalvlaran/lvstats/matrix"
)

// Operation tags for error wrapping.
const (
	opSampleStandardDeviation = "SampleStandardDeviation"
	opStandardDeviation       = "StandardDeviation"
	opSampleVariance          = "SampleVariance"
	opVariance                = "Variance"
	opSampleCovariance        = "SampleCovariance"
	opCovariance              = "Covariance"
	opCorrelation             = "Correlation"
)

// unaryKernel selects one single-sample reduction.
type unaryKernel[T matrix.Float] func(k accel.Kernels[T], x []T, mean T) (float64, accel.Code)

// pairKernel selects one two-sample reduction.
type pairKernel[T matrix.Float] func(k accel.Kernels[T], x []T, xm T, y []T, ym T) (float64, accel.Code)

// dispersion runs a single-sample reduction after the shared preconditions.
//
// Implementation:
//   - Stage 1: engine present, sample non-empty, at least minLen values.
//   - Stage 2: resolve the mean (supplied or one host pass).
//   - Stage 3: one handle call.
func dispersion[T matrix.Float](e *Engine, op, kop string, s Sample[T], minLen int, kernel unaryKernel[T]) (float64, error) {
	// Stage 1 (Validate).
	if e == nil {
		return 0, statsErrorf(op, ErrNilEngine)
	}
	if s.Len() == 0 {
		return 0, statsErrorf(op, ErrEmptySample)
	}
	if s.Len() < minLen {
		return 0, statsErrorf(op, ErrTooFewValues)
	}

	// Stage 2 (Mean).
	mean, err := s.Mean()
	if err != nil {
		return 0, statsErrorf(op, err)
	}

	// Stage 3 (Execute).
	v, err := accel.Call(e.handle, kop, func(k accel.Kernels[T]) (float64, accel.Code) {
		return kernel(k, s.values, mean)
	})
	if err != nil {
		return 0, statsErrorf(op, err)
	}

	return v, nil
}

// association runs a two-sample reduction after the shared preconditions.
func association[T matrix.Float](e *Engine, op, kop string, x, y Sample[T], minLen int, kernel pairKernel[T]) (float64, error) {
	if e == nil {
		return 0, statsErrorf(op, ErrNilEngine)
	}
	if x.Len() != y.Len() {
		return 0, statsErrorf(op, ErrLengthMismatch)
	}
	if x.Len() == 0 {
		return 0, statsErrorf(op, ErrEmptySample)
	}
	if x.Len() < minLen {
		return 0, statsErrorf(op, ErrTooFewValues)
	}

	xm, err := x.Mean()
	if err != nil {
		return 0, statsErrorf(op, err)
	}
	ym, err := y.Mean()
	if err != nil {
		return 0, statsErrorf(op, err)
	}

	v, err := accel.Call(e.handle, kop, func(k accel.Kernels[T]) (float64, accel.Code) {
		return kernel(k, x.values, xm, y.values, ym)
	})
	if err != nil {
		return 0, statsErrorf(op, err)
	}

	return v, nil
}

// SampleStandardDeviation returns the unbiased (N-1) standard deviation of s
// around its mean.
//
// Errors:
//   - ErrEmptySample, ErrTooFewValues (N == 1), ErrNilEngine: InvalidInput.
//   - *accel.BackendError / accel.ErrReleased: BackendFailure.
func SampleStandardDeviation[T matrix.Float](e *Engine, s Sample[T]) (float64, error) {
	return dispersion(e, opSampleStandardDeviation, accel.OpSampleStdDev, s, 2, func(k accel.Kernels[T], x []T, m T) (float64, accel.Code) {
		return k.SampleStdDev(x, m)
	})
}

// StandardDeviation returns the population (N) standard deviation of s.
// Errors as SampleStandardDeviation, except a single value is valid.
func StandardDeviation[T matrix.Float](e *Engine, s Sample[T]) (float64, error) {
	return dispersion(e, opStandardDeviation, accel.OpPopulationStdDev, s, 1, func(k accel.Kernels[T], x []T, m T) (float64, accel.Code) {
		return k.PopulationStdDev(x, m)
	})
}

// SampleVariance is SampleStandardDeviation squared.
func SampleVariance[T matrix.Float](e *Engine, s Sample[T]) (float64, error) {
	sd, err := SampleStandardDeviation(e, s)
	if err != nil {
		return 0, statsErrorf(opSampleVariance, err)
	}

	return sd * sd, nil
}

// Variance is StandardDeviation squared.
func Variance[T matrix.Float](e *Engine, s Sample[T]) (float64, error) {
	sd, err := StandardDeviation(e, s)
	if err != nil {
		return 0, statsErrorf(opVariance, err)
	}

	return sd * sd, nil
}

// SampleCovariance returns the unbiased (N-1) covariance of x and y.
//
// Errors:
//   - ErrLengthMismatch, ErrEmptySample, ErrTooFewValues: InvalidInput, before any backend call.
//   - backend failures: BackendFailure.
func SampleCovariance[T matrix.Float](e *Engine, x, y Sample[T]) (float64, error) {
	return association(e, opSampleCovariance, accel.OpSampleCovariance, x, y, 2, func(k accel.Kernels[T], xs []T, xm T, ys []T, ym T) (float64, accel.Code) {
		return k.SampleCovariance(xs, xm, ys, ym)
	})
}

// Covariance returns the population (N) covariance of x and y.
func Covariance[T matrix.Float](e *Engine, x, y Sample[T]) (float64, error) {
	return association(e, opCovariance, accel.OpPopulationCovariance, x, y, 1, func(k accel.Kernels[T], xs []T, xm T, ys []T, ym T) (float64, accel.Code) {
		return k.PopulationCovariance(xs, xm, ys, ym)
	})
}

// Correlation returns the Pearson correlation coefficient of x and y.
//
// Behavior highlights:
//   - A sample whose values are all equal fails with ErrZeroVariance before the
//     backend is called.
//   - A NaN or infinite backend result fails with ErrDegenerate.
//
// Errors: InvalidInput for the above and the length preconditions;
// BackendFailure for device codes.
func Correlation[T matrix.Float](e *Engine, x, y Sample[T]) (float64, error) {
	if x.Len() > 0 && x.Len() == y.Len() && (constant(x.values) || constant(y.values)) {
		return 0, statsErrorf(opCorrelation, ErrZeroVariance)
	}
	r, err := association(e, opCorrelation, accel.OpPearsonCorrelation, x, y, 1, func(k accel.Kernels[T], xs []T, xm T, ys []T, ym T) (float64, accel.Code) {
		return k.PearsonCorrelation(xs, xm, ys, ym)
	})
	if err != nil {
		return 0, err
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, statsErrorf(opCorrelation, ErrDegenerate)
	}

	return r, nil
}
