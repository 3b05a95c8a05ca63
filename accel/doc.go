// SPDX-License-Identifier: MIT

// Package accel defines the boundary between lvstats and a numeric accelerator.
//
// A Backend creates a Session bound to one Device (an identifier plus a
// working-set budget). A Session exposes per-precision Kernels: the five
// reductions the statistics layer needs (sample/population standard deviation,
// sample/population covariance, Pearson correlation) and a dense GEMM. Every
// kernel reports a device Code; 0 is success and anything else is opaque and
// forwarded verbatim inside *BackendError.
//
// Handle is the single-owner wrapper around a Session:
//
//   - Acquire creates the session; Release destroys it exactly once and is
//     idempotent afterwards.
//   - Every kernel call goes through Call, which serializes access with a
//     mutex, refuses to run after Release (ErrReleased), and records metrics.
//   - Each handle carries a random UUID used in its log lines.
//
// The reference host implementation lives in accel/cpu.
package accel
