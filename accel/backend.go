// SPDX-License-Identifier: MIT

package accel

import (
	"fmt"

	"github.com/katalvlaran/lvstats/matrix"
)

// Code is a device status code. 0 means success; other values belong to the
// backend and are never interpreted here.
type Code int32

// CodeSuccess is the only code with a meaning outside the backend.
const CodeSuccess Code = 0

// OK reports whether c is CodeSuccess.
func (c Code) OK() bool { return c == CodeSuccess }

// Device identifies a compute device and the maximum working set, in bytes,
// a session may allocate on it.
type Device struct {
	ID             int
	AllocationSize int64
}

// String renders the device for logs, e.g. "device#0(268435456B)".
func (d Device) String() string {
	return fmt.Sprintf("device#%d(%dB)", d.ID, d.AllocationSize)
}

// Backend creates sessions on devices.
type Backend interface {
	// Name is a short identifier used in logs ("cpu", "cuda", ...).
	Name() string
	// Create binds a new session to d.
	Create(d Device) (Session, Code)
}

// Session is one live binding of a backend to a device.
// Sessions are not required to be safe for concurrent use; Handle serializes calls.
type Session interface {
	Float32() Kernels[float32]
	Float64() Kernels[float64]
	// Release frees device resources. Handle calls it at most once.
	Release() Code
}

// Kernels are the per-precision primitives of a session.
//
// Reductions receive the raw sample buffers and their precomputed means and
// return a float64 scalar. Multiply computes alpha·op(A)·op(B) + beta·C into a
// fresh matrix; a nil c means a zero accumulator. Callers validate shapes and
// lengths before calling; kernels may still refuse with a device code.
type Kernels[T matrix.Float] interface {
	SampleStdDev(x []T, mean T) (float64, Code)
	PopulationStdDev(x []T, mean T) (float64, Code)
	SampleCovariance(x []T, xMean T, y []T, yMean T) (float64, Code)
	PopulationCovariance(x []T, xMean T, y []T, yMean T) (float64, Code)
	PearsonCorrelation(x []T, xMean T, y []T, yMean T) (float64, Code)
	Multiply(tA, tB matrix.Op, alpha T, a, b matrix.Matrix[T], beta T, c matrix.Matrix[T]) (*matrix.Dense[T], Code)
}

// KernelsOf selects the T-precision kernels of s.
func KernelsOf[T matrix.Float](s Session) Kernels[T] {
	var zero T
	switch any(zero).(type) {
	case float32:
		return any(s.Float32()).(Kernels[T])
	default:
		return any(s.Float64()).(Kernels[T])
	}
}

// Precision returns the metric/log label of T: "float32" or "float64".
func Precision[T matrix.Float]() string {
	var zero T
	if _, ok := any(zero).(float32); ok {
		return "float32"
	}

	return "float64"
}
