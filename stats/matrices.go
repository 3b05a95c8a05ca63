// SPDX-License-Identifier: MIT

package stats

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvstats/matrix"
)

const (
	opCovarianceMatrix  = "CovarianceMatrix"
	opCorrelationMatrix = "CorrelationMatrix"
)

// pairStatistic is one of the exported two-sample operations.
type pairStatistic[T matrix.Float] func(e *Engine, x, y Sample[T]) (float64, error)

// CovarianceMatrix returns the N×N population covariance matrix of sets:
// cell (i,j) is Covariance(sets[i], sets[j]). Sets may differ in length; each
// evaluated pair must agree.
//
// Errors:
//   - ErrNoSets for an empty collection.
//   - The pairwise error, tagged with its cell, under the engine's MatrixPolicy.
func CovarianceMatrix[T matrix.Float](e *Engine, sets [][]T) (*matrix.Dense[T], error) {
	return pairwise(e, opCovarianceMatrix, sets, Covariance[T])
}

// CorrelationMatrix returns the N×N Pearson correlation matrix of sets.
// The diagonal is 1 for every non-degenerate set. Errors as CovarianceMatrix.
func CorrelationMatrix[T matrix.Float](e *Engine, sets [][]T) (*matrix.Dense[T], error) {
	return pairwise(e, opCorrelationMatrix, sets, Correlation[T])
}

// pairwise fills an N×N matrix with stat over every ordered pair.
//
// Implementation:
//   - Stage 1: Validate engine and collection.
//   - Stage 2: Infer each set's mean once; every pair reuses it, which yields the
//     same value the pair would infer itself.
//   - Stage 3: Double loop i→j over all ordered pairs, diagonal included, with
//     no symmetry short-circuit.
//   - Stage 4: Apply the policy: FailFast returns on the first error; FillAll
//     remembers the last one and keeps going.
//
// Complexity:
//   - N² backend calls, O(Σ len(sets[i])) host work for the means.
func pairwise[T matrix.Float](e *Engine, op string, sets [][]T, stat pairStatistic[T]) (*matrix.Dense[T], error) {
	// Stage 1 (Validate).
	if e == nil {
		return nil, statsErrorf(op, ErrNilEngine)
	}
	n := len(sets)
	if n == 0 {
		return nil, statsErrorf(op, ErrNoSets)
	}
	out, err := matrix.NewDense[T](n, n)
	if err != nil {
		return nil, statsErrorf(op, err)
	}

	// Stage 2 (Means): empty sets keep a bare sample and fail inside stat.
	samples := make([]Sample[T], n)
	for i, set := range sets {
		samples[i] = NewSample(set)
		if m, merr := samples[i].Mean(); merr == nil {
			samples[i] = samples[i].WithMean(m)
		}
	}

	// Stage 3 (Fill).
	var (
		i, j    int
		v       float64
		lastErr error
		failed  int
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if v, err = stat(e, samples[i], samples[j]); err != nil {
				// Stage 4 (Policy).
				cellErr := fmt.Errorf("%s[%d][%d]: %w", op, i, j, err)
				if e.policy == FailFast {
					return nil, cellErr
				}
				lastErr = cellErr
				failed++
				continue
			}
			if err = out.Set(i, j, T(v)); err != nil {
				return nil, statsErrorf(op, err)
			}
		}
	}

	if lastErr != nil {
		e.log.Warn("partial matrix",
			zap.String("op", op),
			zap.Int("size", n),
			zap.Int("failed_cells", failed),
			zap.Error(lastErr),
		)
		return out, lastErr
	}

	return out, nil
}
