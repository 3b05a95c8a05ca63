// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide column statistics over an observation matrix (rows = observations,
//     columns = variables) as deterministic compositions over Gemm.
//   - Serve as the host cross-check for the pairwise covariance matrices built
//     by the statistics engine: both must agree cell by cell.
//
// Exposed API:
//   - ColumnMeans(X)        -> means            // per-column arithmetic mean (float64)
//   - CenterColumns(X)      -> (Xc, means)      // subtract per-column mean
//   - ColumnCovariance(X,d) -> Cov              // (Xcᵀ Xc)/(r-d), d = 0 population, 1 sample
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops; means accumulate in float64.
//   - Dense fast-paths avoid At/Set and operate on row-major flat buffers.

package matrix

import "fmt"

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opColumnMeans      = "ColumnMeans"
	opCenterColumns    = "CenterColumns"
	opColumnCovariance = "ColumnCovariance"
)

// ColumnMeans returns the arithmetic mean of every column of X.
// Implementation:
//   - Stage 1: Validate X (non-nil).
//   - Stage 2: Accumulate column sums in float64 (Dense fast-path; At fallback).
//   - Stage 3: Divide by r.
//
// Errors:
//   - ErrNilMatrix, wrapped At errors from the fallback path.
//
// Complexity:
//   - Time O(r*c), Space O(c).
func ColumnMeans[T Float](X Matrix[T]) ([]float64, error) {
	// Stage 1 (Validate): ensure X is present.
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opColumnMeans, err)
	}
	r, c := X.Rows(), X.Cols()
	means := make([]float64, c)

	// Stage 2 (Execute): one slice doubles as sums and means.
	var i, j int
	if d, ok := X.(*Dense[T]); ok {
		for i = 0; i < r; i++ {
			base := i * c
			for j = 0; j < c; j++ {
				means[j] += float64(d.data[base+j])
			}
		}
	} else {
		var v T
		var err error
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				if v, err = X.At(i, j); err != nil {
					return nil, matrixErrorf(opColumnMeans, err)
				}
				means[j] += float64(v)
			}
		}
	}

	// Stage 3 (Finalize).
	invR := 1.0 / float64(r)
	for j = 0; j < c; j++ {
		means[j] *= invR
	}

	return means, nil
}

// CenterColumns subtracts the per-column mean from every element.
// Returns the centered copy and the means used.
//
// Errors:
//   - ErrNilMatrix from validation.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
//
// AI-Hints:
//   - Reuse the returned means to un-center later.
func CenterColumns[T Float](X Matrix[T]) (*Dense[T], []float64, error) {
	means, err := ColumnMeans(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	r, c := X.Rows(), X.Cols()
	out, err := NewDense[T](r, c)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}

	var i, j int
	var v T
	for i = 0; i < r; i++ {
		base := i * c
		for j = 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, nil, matrixErrorf(opCenterColumns, err)
			}
			out.data[base+j] = T(float64(v) - means[j])
		}
	}

	return out, means, nil
}

// ColumnCovariance computes the c×c covariance of the columns of X:
// Cov = (Xcᵀ · Xc) / (r - ddof), where Xc is X with column means removed.
//
// Implementation:
//   - Stage 1: Validate ddof ∈ {0,1} and r > ddof.
//   - Stage 2: Center columns.
//   - Stage 3: One Gemm(Trans, NoTrans, 1/(r-ddof), Xc, Xc, 0, nil).
//
// Behavior highlights:
//   - ddof = 0 is the population covariance (the engine's CovarianceMatrix).
//   - ddof = 1 is the unbiased sample covariance.
//   - Symmetric output; diagonal equals per-column variances.
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions (bad ddof or r <= ddof).
//
// Complexity:
//   - Time O(r*c^2), Space O(r*c + c^2).
func ColumnCovariance[T Float](X Matrix[T], ddof int) (*Dense[T], error) {
	// Stage 1 (Validate).
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opColumnCovariance, err)
	}
	if ddof < 0 || ddof > 1 || X.Rows() <= ddof {
		return nil, matrixErrorf(opColumnCovariance, fmt.Errorf("ddof=%d with %d rows: %w", ddof, X.Rows(), ErrInvalidDimensions))
	}

	// Stage 2 (Center).
	Xc, _, err := CenterColumns(X)
	if err != nil {
		return nil, matrixErrorf(opColumnCovariance, err)
	}

	// Stage 3 (Compute): Xcᵀ never materializes.
	cov, err := Gemm[T](Trans, NoTrans, T(1/float64(X.Rows()-ddof)), Xc, Xc, 0, nil)
	if err != nil {
		return nil, matrixErrorf(opColumnCovariance, err)
	}

	return cov, nil
}
