// SPDX-License-Identifier: MIT

package risk

import "github.com/katalvlaran/lvstats/status"

var (
	// ErrNilMultiplier indicates a missing multiplier.
	ErrNilMultiplier = status.Sentinel(status.ErrInvalidInput, "risk: nil multiplier")

	// ErrEmptyWeights indicates a weight vector without entries.
	ErrEmptyWeights = status.Sentinel(status.ErrInvalidInput, "risk: empty weights")

	// ErrShape indicates len(weights) differs from a side of the covariance matrix.
	ErrShape = status.Sentinel(status.ErrDimensionMismatch, "risk: weights and covariance disagree")

	// ErrNonScalar indicates the quadratic form did not reduce to a 1×1 matrix.
	ErrNonScalar = status.Sentinel(status.ErrDimensionMismatch, "risk: quadratic form is not 1x1")

	// ErrNegativeVariance indicates a negative or NaN portfolio variance.
	ErrNegativeVariance = status.Sentinel(status.ErrInvalidInput, "risk: negative portfolio variance")

	// ErrInvalidPeriod indicates a time period below one.
	ErrInvalidPeriod = status.Sentinel(status.ErrInvalidInput, "risk: period must be >= 1")

	// ErrInvalidConfidence indicates a NaN or infinite confidence z-score.
	ErrInvalidConfidence = status.Sentinel(status.ErrInvalidInput, "risk: confidence must be finite")
)
