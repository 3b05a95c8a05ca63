// SPDX-License-Identifier: MIT
package risk_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/lvstats/accel"
	"github.com/katalvlaran/lvstats/accel/cpu"
	"github.com/katalvlaran/lvstats/matrix"
	"github.com/katalvlaran/lvstats/risk"
	"github.com/katalvlaran/lvstats/stats"
	"github.com/katalvlaran/lvstats/status"
)

// recorder is a host Multiplier that records the flags of every call and can
// override the result.
type recorder[T matrix.Float] struct {
	flags    [][2]matrix.Op
	override *matrix.Dense[T]
	err      error
}

func (r *recorder[T]) Multiply(tA, tB matrix.Op, alpha T, a, b matrix.Matrix[T], beta T, c matrix.Matrix[T]) (*matrix.Dense[T], error) {
	r.flags = append(r.flags, [2]matrix.Op{tA, tB})
	if r.err != nil {
		return nil, r.err
	}
	if r.override != nil && len(r.flags) == 2 {
		return r.override, nil
	}

	return matrix.Gemm(tA, tB, alpha, a, b, beta, c)
}

func covMatrix(t *testing.T) *matrix.Dense[float64] {
	t.Helper()
	m, err := matrix.FromRows([][]float64{{0.04, 0.01}, {0.01, 0.09}})
	require.NoError(t, err)

	return m
}

var (
	weights   = []float64{100, 200}
	handVaR   = math.Sqrt(4400) * 1.645 // 100²·.04 + 2·100·200·.01 + 200²·.09
	tolerance = 1e-9
)

func TestValueAtRisk_HandComputedScenario(t *testing.T) {
	t.Parallel()

	rec := &recorder[float64]{}
	v, err := risk.ValueAtRisk[float64](rec, weights, covMatrix(t), 1.645, 1)
	require.NoError(t, err)
	require.InDelta(t, handVaR, v, tolerance)
	require.Equal(t, [][2]matrix.Op{{matrix.NoTrans, matrix.NoTrans}, {matrix.NoTrans, matrix.Trans}}, rec.flags)

	v4, err := risk.ValueAtRisk[float64](rec, weights, covMatrix(t), 1.645, 4)
	require.NoError(t, err)
	require.InDelta(t, 2*handVaR, v4, tolerance, "square-root-of-time")
}

func TestValueAtRisk_OnEngine(t *testing.T) {
	t.Parallel()

	e, err := stats.New(cpu.New(), accel.Device{ID: 0, AllocationSize: 1 << 20})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, e.Close()) })

	v, err := risk.ValueAtRisk[float64](stats.NewComposer[float64](e), weights, covMatrix(t), 1.645, 1)
	require.NoError(t, err)
	require.InDelta(t, handVaR, v, tolerance)

	cov32, err := matrix.FromRows([][]float32{{0.04, 0.01}, {0.01, 0.09}})
	require.NoError(t, err)
	v32, err := risk.ValueAtRisk[float32](stats.NewComposer[float32](e), []float32{100, 200}, cov32, 1.645, 1)
	require.NoError(t, err)
	require.InDelta(t, handVaR, v32, 1e-3)
}

func TestValueAtRisk_ShapeMismatchBeforeAnyMultiply(t *testing.T) {
	t.Parallel()

	rec := &recorder[float64]{}
	_, err := risk.ValueAtRisk[float64](rec, []float64{1, 2, 3}, covMatrix(t), 1.645, 1)
	require.ErrorIs(t, err, risk.ErrShape)
	require.Equal(t, status.DimensionMismatch, status.Of(err))
	require.Empty(t, rec.flags)

	rect, err := matrix.NewDense[float64](2, 3)
	require.NoError(t, err)
	_, err = risk.QuadraticForm[float64](rec, weights, rect)
	require.ErrorIs(t, err, risk.ErrShape)
	require.Empty(t, rec.flags)
}

func TestValueAtRisk_ArgumentChecks(t *testing.T) {
	t.Parallel()

	rec := &recorder[float64]{}
	cases := []struct {
		name       string
		weights    []float64
		cov        matrix.Matrix[float64]
		confidence float64
		period     int
		want       error
	}{
		{"zero period", weights, covMatrix(t), 1.645, 0, risk.ErrInvalidPeriod},
		{"negative period", weights, covMatrix(t), 1.645, -3, risk.ErrInvalidPeriod},
		{"NaN confidence", weights, covMatrix(t), math.NaN(), 1, risk.ErrInvalidConfidence},
		{"Inf confidence", weights, covMatrix(t), math.Inf(1), 1, risk.ErrInvalidConfidence},
		{"empty weights", nil, covMatrix(t), 1.645, 1, risk.ErrEmptyWeights},
		{"nil covariance", weights, nil, 1.645, 1, matrix.ErrNilMatrix},
	}
	for _, tc := range cases {
		_, err := risk.ValueAtRisk[float64](rec, tc.weights, tc.cov, tc.confidence, tc.period)
		require.ErrorIs(t, err, tc.want, tc.name)
		require.Equal(t, status.InvalidInput, status.Of(err), tc.name)
	}
	require.Empty(t, rec.flags)

	_, err := risk.ValueAtRisk[float64](nil, weights, covMatrix(t), 1.645, 1)
	require.ErrorIs(t, err, risk.ErrNilMultiplier)
}

func TestValueAtRisk_NonScalarIntermediate(t *testing.T) {
	t.Parallel()

	bogus, err := matrix.NewDense[float64](2, 2)
	require.NoError(t, err)
	rec := &recorder[float64]{override: bogus}

	_, err = risk.ValueAtRisk[float64](rec, weights, covMatrix(t), 1.645, 1)
	require.ErrorIs(t, err, risk.ErrNonScalar)
	require.Equal(t, status.DimensionMismatch, status.Of(err))
	require.Contains(t, err.Error(), "got 2x2")
}

func TestValueAtRisk_NegativeVariance(t *testing.T) {
	t.Parallel()

	neg, err := matrix.FromRows([][]float64{{-1, 0}, {0, -1}})
	require.NoError(t, err)

	_, err = risk.ValueAtRisk[float64](&recorder[float64]{}, []float64{1, 1}, neg, 1.645, 1)
	require.ErrorIs(t, err, risk.ErrNegativeVariance)
	require.Equal(t, status.InvalidInput, status.Of(err))

	q, err := risk.QuadraticForm[float64](&recorder[float64]{}, []float64{1, 1}, neg)
	require.NoError(t, err)
	require.Equal(t, -2.0, q)
}

func TestValueAtRisk_MultiplierErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := risk.ValueAtRisk[float64](&recorder[float64]{err: boom}, weights, covMatrix(t), 1.645, 1)
	require.ErrorIs(t, err, boom)
}

func TestCalculator_LogsAtDebug(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	calc := risk.NewCalculator[float64](&recorder[float64]{}, zap.New(core))

	v, err := calc.VaR(weights, covMatrix(t), 1.645, 1)
	require.NoError(t, err)
	require.InDelta(t, handVaR, v, tolerance)

	variance, err := calc.Variance(weights, covMatrix(t))
	require.NoError(t, err)
	require.InDelta(t, 4400.0, variance, tolerance)

	_, err = calc.VaR(weights, covMatrix(t), 1.645, 0)
	require.Error(t, err)

	require.Equal(t, 1, logs.FilterMessage("value at risk").Len())
	require.Equal(t, 1, logs.FilterMessage("value at risk failed").Len())
	entry := logs.FilterMessage("value at risk").All()[0]
	require.Equal(t, int64(2), entry.ContextMap()["assets"])
	require.Equal(t, "risk", entry.ContextMap()["component"])

	require.NotNil(t, risk.NewCalculator[float64](&recorder[float64]{}, nil))
}
