// SPDX-License-Identifier: MIT

package stats

import (
	"fmt"

	"github.com/katalvlaran/lvstats/status"
)

// Sentinel errors. All belong to the InvalidInput class.
var (
	// ErrNilEngine indicates an operation was called with a nil *Engine.
	ErrNilEngine = status.Sentinel(status.ErrInvalidInput, "stats: nil engine")

	// ErrEmptySample indicates a sample without values.
	ErrEmptySample = status.Sentinel(status.ErrInvalidInput, "stats: empty sample")

	// ErrTooFewValues indicates an unbiased (N-1) statistic over a single value.
	ErrTooFewValues = status.Sentinel(status.ErrInvalidInput, "stats: unbiased statistic needs at least two values")

	// ErrLengthMismatch indicates paired samples of different lengths.
	ErrLengthMismatch = status.Sentinel(status.ErrInvalidInput, "stats: sample lengths differ")

	// ErrZeroVariance indicates a correlation input whose values are all equal.
	ErrZeroVariance = status.Sentinel(status.ErrInvalidInput, "stats: zero variance")

	// ErrDegenerate indicates the backend produced a NaN or infinite statistic.
	ErrDegenerate = status.Sentinel(status.ErrInvalidInput, "stats: non-finite statistic")

	// ErrNoSets indicates an empty collection of samples for a matrix build.
	ErrNoSets = status.Sentinel(status.ErrInvalidInput, "stats: no samples")

	// ErrUnknownPolicy indicates an unrecognized matrix policy name.
	ErrUnknownPolicy = status.Sentinel(status.ErrInvalidInput, "stats: unknown matrix policy")
)

// statsErrorf wraps err with an operation tag: "<op>: <err>".
func statsErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
