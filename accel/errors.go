// SPDX-License-Identifier: MIT

package accel

import (
	"fmt"

	"github.com/katalvlaran/lvstats/status"
)

var (
	// ErrReleased is returned by every call on a handle after Release.
	ErrReleased = status.Sentinel(status.ErrBackendFailure, "accel: handle released")

	// ErrNilBackend indicates Acquire was called without a backend.
	ErrNilBackend = status.Sentinel(status.ErrInvalidInput, "accel: nil backend")

	// ErrInvalidDevice indicates a negative device id or a non-positive allocation size.
	ErrInvalidDevice = status.Sentinel(status.ErrInvalidInput, "accel: invalid device")
)

// BackendError carries a non-zero device code verbatim together with the
// operation that produced it. It belongs to the BackendFailure class.
type BackendError struct {
	Op   string
	Code Code
}

// Error implements error.
func (e *BackendError) Error() string {
	return fmt.Sprintf("accel: %s: device code %d", e.Op, e.Code)
}

// Unwrap exposes the class sentinel so errors.Is(err, status.ErrBackendFailure) holds.
func (e *BackendError) Unwrap() error { return status.ErrBackendFailure }
