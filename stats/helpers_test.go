// SPDX-License-Identifier: MIT
package stats_test

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvstats/accel"
	"github.com/katalvlaran/lvstats/accel/cpu"
	"github.com/katalvlaran/lvstats/matrix"
	"github.com/katalvlaran/lvstats/stats"
)

var testDevice = accel.Device{ID: 0, AllocationSize: 1 << 24}

// probe wraps the host backend, counting kernel calls and releases, and can
// script a device code or a NaN result for one operation.
type probe struct {
	inner accel.Backend

	failOp   string
	failCode accel.Code
	nanOp    string

	calls    atomic.Int32
	releases atomic.Int32
}

func newProbe() *probe { return &probe{inner: cpu.New()} }

func (p *probe) Name() string { return "probe" }

func (p *probe) Create(d accel.Device) (accel.Session, accel.Code) {
	s, code := p.inner.Create(d)
	if !code.OK() {
		return nil, code
	}

	return probeSession{s, p}, accel.CodeSuccess
}

type probeSession struct {
	inner accel.Session
	p     *probe
}

func (s probeSession) Float32() accel.Kernels[float32] { return probeKernels[float32]{s.inner.Float32(), s.p} }
func (s probeSession) Float64() accel.Kernels[float64] { return probeKernels[float64]{s.inner.Float64(), s.p} }
func (s probeSession) Release() accel.Code {
	s.p.releases.Add(1)
	return s.inner.Release()
}

type probeKernels[T matrix.Float] struct {
	inner accel.Kernels[T]
	p     *probe
}

func (k probeKernels[T]) wrap(op string, v float64, code accel.Code) (float64, accel.Code) {
	k.p.calls.Add(1)
	if op == k.p.failOp {
		return 0, k.p.failCode
	}
	if op == k.p.nanOp {
		return math.NaN(), accel.CodeSuccess
	}

	return v, code
}

func (k probeKernels[T]) SampleStdDev(x []T, m T) (float64, accel.Code) {
	v, c := k.inner.SampleStdDev(x, m)
	return k.wrap(accel.OpSampleStdDev, v, c)
}

func (k probeKernels[T]) PopulationStdDev(x []T, m T) (float64, accel.Code) {
	v, c := k.inner.PopulationStdDev(x, m)
	return k.wrap(accel.OpPopulationStdDev, v, c)
}

func (k probeKernels[T]) SampleCovariance(x []T, xm T, y []T, ym T) (float64, accel.Code) {
	v, c := k.inner.SampleCovariance(x, xm, y, ym)
	return k.wrap(accel.OpSampleCovariance, v, c)
}

func (k probeKernels[T]) PopulationCovariance(x []T, xm T, y []T, ym T) (float64, accel.Code) {
	v, c := k.inner.PopulationCovariance(x, xm, y, ym)
	return k.wrap(accel.OpPopulationCovariance, v, c)
}

func (k probeKernels[T]) PearsonCorrelation(x []T, xm T, y []T, ym T) (float64, accel.Code) {
	v, c := k.inner.PearsonCorrelation(x, xm, y, ym)
	return k.wrap(accel.OpPearsonCorrelation, v, c)
}

func (k probeKernels[T]) Multiply(tA, tB matrix.Op, alpha T, a, b matrix.Matrix[T], beta T, c matrix.Matrix[T]) (*matrix.Dense[T], accel.Code) {
	k.p.calls.Add(1)
	if k.p.failOp == accel.OpMultiply {
		return nil, k.p.failCode
	}

	return k.inner.Multiply(tA, tB, alpha, a, b, beta, c)
}

// newEngine builds an engine over p and closes it with the test.
func newEngine(t testing.TB, p *probe, opts ...stats.Option) *stats.Engine {
	t.Helper()
	e, err := stats.New(p, testDevice, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, e.Close()) })

	return e
}

var textbook = []float64{2, 4, 4, 4, 5, 5, 7, 9}

func toFloat32(xs []float64) []float32 {
	out := make([]float32, len(xs))
	for i, v := range xs {
		out[i] = float32(v)
	}

	return out
}
