// SPDX-License-Identifier: MIT

package stats

import (
	"github.com/katalvlaran/lvstats/matrix"
)

const opMean = "Mean"

// Sample is a caller-owned sequence of observations plus an optional mean.
// The engine never mutates or retains the values.
type Sample[T matrix.Float] struct {
	values  []T
	mean    T
	hasMean bool
}

// NewSample wraps values; the mean is inferred on first use.
func NewSample[T matrix.Float](values []T) Sample[T] {
	return Sample[T]{values: values}
}

// WithMean returns a copy of s carrying a caller-supplied mean.
func (s Sample[T]) WithMean(mean T) Sample[T] {
	s.mean, s.hasMean = mean, true

	return s
}

// Len returns the number of observations.
func (s Sample[T]) Len() int { return len(s.values) }

// Values returns the wrapped slice (not a copy).
func (s Sample[T]) Values() []T { return s.values }

// Mean returns the supplied mean, or else the arithmetic mean of the values.
// Errors: ErrEmptySample when no mean was supplied and there are no values.
func (s Sample[T]) Mean() (T, error) {
	if s.hasMean {
		return s.mean, nil
	}
	m, err := Mean(s.values)
	if err != nil {
		return 0, err
	}

	return T(m), nil
}

// Mean returns the arithmetic mean of values, accumulated on the host in float64.
// Errors: ErrEmptySample.
// Complexity: O(n).
func Mean[T matrix.Float](values []T) (float64, error) {
	if len(values) == 0 {
		return 0, statsErrorf(opMean, ErrEmptySample)
	}
	var sum float64
	for _, v := range values {
		sum += float64(v)
	}

	return sum / float64(len(values)), nil
}

// constant reports whether every value equals the first one.
func constant[T matrix.Float](values []T) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}

	return true
}
