// SPDX-License-Identifier: MIT
// Package lvstats is a statistics and portfolio-risk engine that runs its
// kernels on an accelerator backend.
//
// What is in the box?
//
//	A small, typed, float32/float64 library that brings together:
//		• Descriptive statistics: sample & population standard deviation,
//		  variance, covariance and Pearson correlation
//		• Pairwise matrices: N×N covariance & correlation of many series
//		• Portfolio risk: w·Σ·wᵀ variance and Value-at-Risk
//		• General matrix products with transpose flags (Gemm)
//
// Every failure carries a status class (Success, InvalidInput,
// DimensionMismatch, BackendFailure, Unknown); see package status.
//
// Under the hood, everything is organized under these subpackages:
//
//	status/      - status classes & sentinel errors shared by every package
//	matrix/      - Dense[T], Gemm, validators and host reference kernels
//	accel/       - backend contract, serialized Handle, prometheus metrics
//	accel/cpu/   - host backend with device ordinals and a working-set budget
//	stats/       - Engine, Sample and the statistics & matrix builders
//	risk/        - quadratic form and Value-at-Risk over any Multiplier
//	config/      - viper configuration mapped onto engine options
//	cmd/lvstats  - the command line front end
//
// Quick example:
//
//	err := stats.With(cpu.New(), accel.Device{AllocationSize: 1 << 20}, func(e *stats.Engine) error {
//		v, err := risk.ValueAtRisk[float64](stats.NewComposer[float64](e), w, cov, 1.645, 1)
//		...
//	})
//
//	go install github.com/katalvlaran/lvstats/cmd/lvstats@latest
package lvstats
