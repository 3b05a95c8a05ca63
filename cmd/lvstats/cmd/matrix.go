// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvstats/internal/dataset"
	"github.com/katalvlaran/lvstats/matrix"
	"github.com/katalvlaran/lvstats/stats"
	"github.com/katalvlaran/lvstats/status"
)

func newMatrixCmd(a *app) *cobra.Command {
	var csvPath, kind string
	c := &cobra.Command{
		Use:   "matrix",
		Short: "Covariance or correlation matrix of the return series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := dataset.LoadReturnsFile(csvPath)
			if err != nil {
				return err
			}

			return a.withEngine(func(e *stats.Engine) error {
				var m *matrix.Dense[float64]
				switch strings.ToLower(kind) {
				case "cov", "covariance":
					m, err = stats.CovarianceMatrix(e, r.Series)
				case "corr", "correlation":
					m, err = stats.CorrelationMatrix(e, r.Series)
				default:
					return fmt.Errorf("--kind %q: want cov or corr: %w", kind, status.ErrInvalidInput)
				}
				if m != nil {
					if perr := printMatrix(cmd.OutOrStdout(), r.Names, m); perr != nil {
						return perr
					}
				}

				return err
			})
		},
	}
	c.Flags().StringVar(&csvPath, "csv", "", "return series CSV (header of asset names)")
	c.Flags().StringVar(&kind, "kind", "corr", "cov or corr")
	_ = c.MarkFlagRequired("csv")

	return c
}

// printMatrix writes m as a labeled table. Under the fill-all policy a partial
// matrix is printed before its error is returned.
func printMatrix(w io.Writer, names []string, m *matrix.Dense[float64]) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "\t%s\t\n", strings.Join(names, "\t"))
	for i, row := range m.ToRows() {
		fmt.Fprintf(tw, "%s", names[i])
		for _, v := range row {
			fmt.Fprintf(tw, "\t%.6g", v)
		}
		fmt.Fprintln(tw, "\t")
	}

	return tw.Flush()
}
