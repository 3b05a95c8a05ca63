// SPDX-License-Identifier: MIT

// Package cpu is the reference host implementation of accel.Backend.
//
// It behaves like a device with a fixed number of ordinals and a per-session
// working-set budget: a kernel whose buffers (inputs plus output) exceed
// Device.AllocationSize fails with CodeAllocation instead of running. Codes
// follow the CUDA runtime numbering so logs read the same across backends.
//
// Reductions accumulate in float64 for both precisions; Multiply delegates to
// matrix.Gemm.
package cpu
