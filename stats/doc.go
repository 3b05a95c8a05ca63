// SPDX-License-Identifier: MIT

// Package stats is the statistics engine and matrix composer of lvstats.
//
// An Engine exclusively owns one accelerator handle (see package accel). All
// operations are generic over the element precision (float32 or float64) and
// take the engine explicitly:
//
//	e, err := stats.New(cpu.New(), accel.Device{ID: 0, AllocationSize: 64 << 20})
//	if err != nil { ... }
//	defer e.Close()
//
//	sd, err := stats.SampleStandardDeviation(e, stats.NewSample([]float64{2, 4, 4, 4, 5, 5, 7, 9}))
//
// A Sample infers its mean with a host pass unless one is supplied through
// WithMean, in which case the sample is traversed once, on the device.
//
// Preconditions (empty samples, length mismatches, zero variance, shapes) are
// checked before the handle is touched. Every error belongs to a status class:
// status.Of(err) returns InvalidInput, DimensionMismatch or BackendFailure.
//
// CovarianceMatrix and CorrelationMatrix evaluate every ordered pair, diagonal
// included. Under FailFast (default) the first failing pair aborts the build
// and no matrix is returned; under FillAll every cell is attempted, failed
// cells stay zero, and the partial matrix comes back with the last error.
package stats
