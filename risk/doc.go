// SPDX-License-Identifier: MIT

// Package risk derives portfolio Value-at-Risk from a weight vector and a
// covariance matrix.
//
// The portfolio variance is the quadratic form W·Σ·Wᵀ, evaluated with two
// products on a Multiplier (normally a *stats.Composer):
//
//	M1 = Multiply(N, N, 1, W, Σ, 0)   // 1×N
//	M2 = Multiply(N, T, 1, M1, W, 0)  // 1×1
//
// and VaR = sqrt(M2) · confidence · sqrt(period). The confidence is a z-score
// (1.645 for 95% one-sided), not a probability; no distribution lookup is done.
//
// All shape and argument checks run before the first product.
package risk
