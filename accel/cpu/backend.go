// SPDX-License-Identifier: MIT

package cpu

import (
	"github.com/katalvlaran/lvstats/accel"
)

// Device codes reported by this backend.
const (
	// CodeAllocation: the working set of a call exceeds the session budget.
	CodeAllocation accel.Code = 2
	// CodeInvalidValue: arguments the kernel cannot accept (length, shape).
	CodeInvalidValue accel.Code = 11
	// CodeInvalidDevice: the device ordinal does not exist.
	CodeInvalidDevice accel.Code = 101
)

// Name is the backend identifier used in logs.
const Name = "cpu"

// Backend hands out host sessions. The zero value is not usable; call New.
type Backend struct {
	devices int
}

// Option configures a Backend.
type Option func(*Backend)

// WithDevices sets the number of device ordinals (default 1).
func WithDevices(n int) Option {
	if n < 1 {
		panic("cpu: WithDevices requires n >= 1")
	}

	return func(b *Backend) { b.devices = n }
}

// New returns a host backend.
func New(opts ...Option) *Backend {
	b := &Backend{devices: 1}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Name implements accel.Backend.
func (b *Backend) Name() string { return Name }

// Devices returns the number of device ordinals.
func (b *Backend) Devices() int { return b.devices }

// Create implements accel.Backend.
func (b *Backend) Create(d accel.Device) (accel.Session, accel.Code) {
	if d.ID < 0 || d.ID >= b.devices {
		return nil, CodeInvalidDevice
	}
	if d.AllocationSize <= 0 {
		return nil, CodeAllocation
	}

	return &session{budget: d.AllocationSize}, accel.CodeSuccess
}

type session struct {
	budget int64
}

func (s *session) Float32() accel.Kernels[float32] { return kernels[float32]{budget: s.budget} }
func (s *session) Float64() accel.Kernels[float64] { return kernels[float64]{budget: s.budget} }

// Release implements accel.Session. Host memory is garbage collected.
func (s *session) Release() accel.Code { return accel.CodeSuccess }
