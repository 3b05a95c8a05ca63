// SPDX-License-Identifier: MIT

// Package dataset reads the input files of the lvstats CLI.
//
// Return series are CSV: a header of asset names, then one observation per
// row. Empty cells are allowed, so series may differ in length; each column
// keeps the values it has, in row order.
//
//	AAA,BBB
//	0.010,0.020
//	-0.020,
//
// Portfolios are YAML with weights and an optional covariance matrix:
//
//	assets: [AAA, BBB]
//	weights: [100, 200]
//	covariance:
//	  - [0.04, 0.01]
//	  - [0.01, 0.09]
//	confidence: 1.645
//	period: 1
package dataset
