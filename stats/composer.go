// SPDX-License-Identifier: MIT

package stats

import (
	"fmt"

	"github.com/katalvlaran/lvstats/accel"
	"github.com/katalvlaran/lvstats/matrix"
	"github.com/katalvlaran/lvstats/status"
)

const opMultiply = "Multiply"

// Multiply computes alpha·op(A)·op(B) + beta·C on the engine's device.
//
// Behavior highlights:
//   - c == nil is a zero accumulator.
//   - alpha == 0 yields beta·C regardless of A and B content.
//   - The result is fresh; A, B and C are never mutated.
//
// Errors:
//   - DimensionMismatch when op(A).Cols != op(B).Rows or C has the wrong shape,
//     before the backend is called.
//   - InvalidInput for nil operands or a nil engine.
//   - BackendFailure for device codes.
func Multiply[T matrix.Float](e *Engine, tA, tB matrix.Op, alpha T, a, b matrix.Matrix[T], beta T, c matrix.Matrix[T]) (*matrix.Dense[T], error) {
	if e == nil {
		return nil, statsErrorf(opMultiply, ErrNilEngine)
	}
	if _, _, err := matrix.ValidateGemm(tA, tB, a, b, c); err != nil {
		return nil, statsErrorf(opMultiply, err)
	}

	out, err := accel.Call(e.handle, accel.OpMultiply, func(k accel.Kernels[T]) (*matrix.Dense[T], accel.Code) {
		return k.Multiply(tA, tB, alpha, a, b, beta, c)
	})
	if err != nil {
		return nil, statsErrorf(opMultiply, err)
	}
	if out == nil {
		return nil, fmt.Errorf("%s: backend returned no matrix: %w", opMultiply, status.ErrBackendFailure)
	}

	return out, nil
}

// Composer is a T-typed view of an engine's Multiply. It satisfies
// risk.Multiplier[T].
type Composer[T matrix.Float] struct {
	engine *Engine
}

// NewComposer binds a composer to e. The composer does not own e.
func NewComposer[T matrix.Float](e *Engine) *Composer[T] {
	return &Composer[T]{engine: e}
}

// Multiply forwards to the package-level Multiply.
func (c *Composer[T]) Multiply(tA, tB matrix.Op, alpha T, a, b matrix.Matrix[T], beta T, acc matrix.Matrix[T]) (*matrix.Dense[T], error) {
	return Multiply(c.engine, tA, tB, alpha, a, b, beta, acc)
}
