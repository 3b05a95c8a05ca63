// SPDX-License-Identifier: MIT
package accel_test

import (
	"sync/atomic"

	"github.com/katalvlaran/lvstats/accel"
	"github.com/katalvlaran/lvstats/matrix"
)

// fakeBackend records creates and releases and returns scripted codes.
type fakeBackend struct {
	createCode  accel.Code
	releaseCode accel.Code
	kernelCode  accel.Code
	noSession   bool

	creates  atomic.Int32
	releases atomic.Int32
	calls    atomic.Int32
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Create(accel.Device) (accel.Session, accel.Code) {
	f.creates.Add(1)
	if !f.createCode.OK() || f.noSession {
		return nil, f.createCode
	}

	return fakeSession{f}, accel.CodeSuccess
}

type fakeSession struct{ f *fakeBackend }

func (s fakeSession) Float32() accel.Kernels[float32] { return fakeKernels[float32]{s.f} }
func (s fakeSession) Float64() accel.Kernels[float64] { return fakeKernels[float64]{s.f} }
func (s fakeSession) Release() accel.Code {
	s.f.releases.Add(1)
	return s.f.releaseCode
}

type fakeKernels[T matrix.Float] struct{ f *fakeBackend }

func (k fakeKernels[T]) scalar() (float64, accel.Code) {
	k.f.calls.Add(1)
	return 42, k.f.kernelCode
}

func (k fakeKernels[T]) SampleStdDev([]T, T) (float64, accel.Code)     { return k.scalar() }
func (k fakeKernels[T]) PopulationStdDev([]T, T) (float64, accel.Code) { return k.scalar() }
func (k fakeKernels[T]) SampleCovariance([]T, T, []T, T) (float64, accel.Code) {
	return k.scalar()
}
func (k fakeKernels[T]) PopulationCovariance([]T, T, []T, T) (float64, accel.Code) {
	return k.scalar()
}
func (k fakeKernels[T]) PearsonCorrelation([]T, T, []T, T) (float64, accel.Code) {
	return k.scalar()
}
func (k fakeKernels[T]) Multiply(matrix.Op, matrix.Op, T, matrix.Matrix[T], matrix.Matrix[T], T, matrix.Matrix[T]) (*matrix.Dense[T], accel.Code) {
	k.f.calls.Add(1)
	return nil, k.f.kernelCode
}
