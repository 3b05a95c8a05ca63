// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvstats/internal/dataset"
	"github.com/katalvlaran/lvstats/matrix"
	"github.com/katalvlaran/lvstats/stats"
	"github.com/katalvlaran/lvstats/status"
)

func newDescribeCmd(a *app) *cobra.Command {
	var (
		csvPath   string
		precision int
	)
	c := &cobra.Command{
		Use:   "describe",
		Short: "Mean, population and sample standard deviation per asset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := dataset.LoadReturnsFile(csvPath)
			if err != nil {
				return err
			}

			return a.withEngine(func(e *stats.Engine) error {
				switch precision {
				case 32:
					return describe(cmd.OutOrStdout(), e, r.Names, toFloat32Sets(r.Series))
				case 64:
					return describe(cmd.OutOrStdout(), e, r.Names, r.Series)
				default:
					return fmt.Errorf("--precision %d: want 32 or 64: %w", precision, status.ErrInvalidInput)
				}
			})
		},
	}
	c.Flags().StringVar(&csvPath, "csv", "", "return series CSV (header of asset names)")
	c.Flags().IntVar(&precision, "precision", 64, "element precision: 32 or 64")
	_ = c.MarkFlagRequired("csv")

	return c
}

func describe[T matrix.Float](w io.Writer, e *stats.Engine, names []string, series [][]T) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "asset\tn\tmean\tstddev\tsample_stddev")
	for i, xs := range series {
		s := stats.NewSample(xs)
		mean, err := stats.Mean(xs)
		if err != nil {
			return fmt.Errorf("%s: %w", names[i], err)
		}
		s = s.WithMean(T(mean))
		pop, err := stats.StandardDeviation(e, s)
		if err != nil {
			return fmt.Errorf("%s: %w", names[i], err)
		}
		smp := "-"
		if sd, err := stats.SampleStandardDeviation(e, s); err == nil {
			smp = fmt.Sprintf("%.6g", sd)
		}
		fmt.Fprintf(tw, "%s\t%d\t%.6g\t%.6g\t%s\n", names[i], len(xs), mean, pop, smp)
	}

	return tw.Flush()
}

func toFloat32Sets(series [][]float64) [][]float32 {
	out := make([][]float32, len(series))
	for i, xs := range series {
		out[i] = make([]float32, len(xs))
		for j, v := range xs {
			out[i][j] = float32(v)
		}
	}

	return out
}
