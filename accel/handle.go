// SPDX-License-Identifier: MIT

package accel

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvstats/matrix"
	"github.com/katalvlaran/lvstats/status"
)

// Operation tags used in errors, logs and the "op" metric label.
const (
	OpCreate               = "Create"
	OpRelease              = "Release"
	OpSampleStdDev         = "SampleStdDev"
	OpPopulationStdDev     = "PopulationStdDev"
	OpSampleCovariance     = "SampleCovariance"
	OpPopulationCovariance = "PopulationCovariance"
	OpPearsonCorrelation   = "PearsonCorrelation"
	OpMultiply             = "Multiply"
)

// Handle exclusively owns one Session.
//
// Behavior highlights:
//   - All session access is serialized by one mutex.
//   - Release is idempotent: the first call releases the session, later calls return nil.
//   - Calls after Release fail with ErrReleased and never touch the session.
type Handle struct {
	id      uuid.UUID
	device  Device
	backend string
	log     *zap.Logger
	metrics *Metrics

	mu       sync.Mutex
	session  Session
	released bool
}

// Acquire creates a session for device on backend.
//
// Errors:
//   - ErrNilBackend, ErrInvalidDevice (InvalidInput class).
//   - *BackendError{Op: "Create"} when the backend refuses the device.
func Acquire(backend Backend, device Device, opts ...Option) (*Handle, error) {
	if backend == nil {
		return nil, fmt.Errorf("%s: %w", OpCreate, ErrNilBackend)
	}
	if device.ID < 0 || device.AllocationSize <= 0 {
		return nil, fmt.Errorf("%s: %v: %w", OpCreate, device, ErrInvalidDevice)
	}
	o := gatherOptions(opts...)

	h := &Handle{
		id:      uuid.New(),
		device:  device,
		backend: backend.Name(),
		metrics: o.metrics,
	}
	h.log = o.logger.With(
		zap.String("handle", h.id.String()),
		zap.String("backend", h.backend),
		zap.Int("device", device.ID),
	)

	session, code := backend.Create(device)
	if !code.OK() {
		h.log.Warn("accelerator create failed", zap.Int32("code", int32(code)))
		return nil, &BackendError{Op: OpCreate, Code: code}
	}
	if session == nil {
		return nil, fmt.Errorf("%s: backend %q returned no session: %w", OpCreate, h.backend, status.ErrBackendFailure)
	}
	h.session = session
	h.metrics.HandlesOpen.Inc()
	h.log.Info("accelerator acquired", zap.Int64("allocation_size", device.AllocationSize))

	return h, nil
}

// ID returns the handle identity used in logs.
func (h *Handle) ID() uuid.UUID { return h.id }

// Device returns the device the handle is bound to.
func (h *Handle) Device() Device { return h.device }

// Released reports whether Release has been called.
func (h *Handle) Released() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.released
}

// Release destroys the session once. It waits for an in-flight call to finish.
// A non-zero release code is returned as *BackendError; the handle is released
// regardless.
func (h *Handle) Release() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return nil
	}
	h.released = true
	code := h.session.Release()
	h.session = nil
	h.metrics.HandlesOpen.Dec()
	if !code.OK() {
		h.log.Warn("accelerator release failed", zap.Int32("code", int32(code)))
		return &BackendError{Op: OpRelease, Code: code}
	}
	h.log.Info("accelerator released")

	return nil
}

// Call runs fn against the T-precision kernels under the handle lock.
//
// Implementation:
//   - Stage 1: lock; refuse when released.
//   - Stage 2: run fn, timing it.
//   - Stage 3: record calls_total{op,precision,status} and the duration; map a
//     non-zero code to *BackendError{op, code}.
//
// Returns fn's value only when the code is success.
func Call[T matrix.Float, R any](h *Handle, op string, fn func(Kernels[T]) (R, Code)) (R, error) {
	var zero R
	precision := Precision[T]()

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		h.metrics.Calls.WithLabelValues(op, precision, status.BackendFailure.String()).Inc()
		return zero, fmt.Errorf("%s: %w", op, ErrReleased)
	}

	start := time.Now()
	v, code := fn(KernelsOf[T](h.session))
	h.metrics.Duration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	if !code.OK() {
		h.metrics.Calls.WithLabelValues(op, precision, status.BackendFailure.String()).Inc()
		h.log.Warn("accelerator call failed",
			zap.String("op", op),
			zap.String("precision", precision),
			zap.Int32("code", int32(code)),
		)
		return zero, &BackendError{Op: op, Code: code}
	}
	h.metrics.Calls.WithLabelValues(op, precision, status.Success.String()).Inc()

	return v, nil
}
