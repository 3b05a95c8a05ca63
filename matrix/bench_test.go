// SPDX-License-Identifier: MIT
// Package matrix_test provides benchmarks for the host kernels,
// using deterministic random fill for Dense matrices.
package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/lvstats/matrix"
)

// benchSizes are the matrix sizes to benchmark.
var benchSizes = []int{64, 128, 256}

// sinks to defeat dead-code elimination
var (
	sinkM *matrix.Dense[float64]
	sinkB bool
)

func BenchmarkGemm(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		for _, flags := range [][2]matrix.Op{{matrix.NoTrans, matrix.NoTrans}, {matrix.Trans, matrix.NoTrans}, {matrix.NoTrans, matrix.Trans}} {
			b.Run(fmt.Sprintf("n=%d/%s%s", n, flags[0], flags[1]), func(b *testing.B) {
				A := RandFilledDense(b, n, n, 1337)
				B := RandFilledDense(b, n, n, 4242)
				C := RandFilledDense(b, n, n, 7)
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					m, err := matrix.Gemm[float64](flags[0], flags[1], 1.5, A, B, 0.5, C)
					if err != nil {
						b.Fatal(err)
					}
					sinkM = m
				}
			})
		}
	}
}

func BenchmarkGemm_Fallback(b *testing.B) {
	b.ReportAllocs()
	n := benchSizes[0]
	A := RandFilledDense(b, n, n, 1)
	B := RandFilledDense(b, n, n, 2)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m, err := matrix.Gemm[float64](matrix.NoTrans, matrix.NoTrans, 1, hide[float64]{A}, hide[float64]{B}, 0, nil)
		if err != nil {
			b.Fatal(err)
		}
		sinkM = m
	}
}

func BenchmarkQuadraticForm(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			w := RandFilledDense(b, 1, n, 11)
			S := RandFilledDense(b, n, n, 12)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m1, err := matrix.Gemm[float64](matrix.NoTrans, matrix.NoTrans, 1, w, S, 0, nil)
				if err != nil {
					b.Fatal(err)
				}
				v, err := matrix.Gemm[float64](matrix.NoTrans, matrix.Trans, 1, m1, w, 0, nil)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = v
			}
		})
	}
}

func BenchmarkAllClose(b *testing.B) {
	b.ReportAllocs()
	n := benchSizes[1]
	A := RandFilledDense(b, n, n, 3)
	B := A.Clone()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ok, err := matrix.AllClose[float64](A, B, 1e-12, 1e-12)
		if err != nil {
			b.Fatal(err)
		}
		sinkB = ok
	}
}
