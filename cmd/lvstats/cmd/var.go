// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvstats/internal/dataset"
	"github.com/katalvlaran/lvstats/matrix"
	"github.com/katalvlaran/lvstats/risk"
	"github.com/katalvlaran/lvstats/stats"
	"github.com/katalvlaran/lvstats/status"
)

func newVarCmd(a *app) *cobra.Command {
	var (
		portfolioPath string
		csvPath       string
		weightsFlag   string
		confidence    float64
		period        int
		savePath      string
	)
	c := &cobra.Command{
		Use:   "var",
		Short: "Portfolio Value-at-Risk: sqrt(w·Σ·wᵀ) · confidence · sqrt(period)",
		Long: `Value-at-Risk of a portfolio.

The covariance comes from the portfolio file or, when the file has none or
--csv is given, from the population covariance matrix of the return series.
With --csv, a portfolio that names its assets takes those CSV columns in
portfolio order; otherwise every column is used.
--save-portfolio writes the resolved portfolio, covariance included, as YAML.
--confidence is a z-score (1.645 ≈ 95% one-sided), not a probability.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := &dataset.Portfolio{Confidence: dataset.DefaultConfidence, Period: dataset.DefaultPeriod}
			if portfolioPath != "" {
				var err error
				if p, err = dataset.LoadPortfolioFile(portfolioPath); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("weights") {
				w, err := parseWeights(weightsFlag)
				if err != nil {
					return err
				}
				p.Weights = w
			}
			if cmd.Flags().Changed("confidence") {
				p.Confidence = confidence
			}
			if cmd.Flags().Changed("period") {
				p.Period = period
			}
			if len(p.Weights) == 0 {
				return fmt.Errorf("no weights: use --portfolio or --weights: %w", status.ErrInvalidInput)
			}

			cov, err := p.CovarianceMatrix()
			if err != nil {
				return err
			}
			var returns *dataset.Returns
			if csvPath != "" {
				if returns, err = dataset.LoadReturnsFile(csvPath); err != nil {
					return err
				}
			}
			if cov == nil && returns == nil {
				return fmt.Errorf("no covariance: portfolio has none and --csv is unset: %w", status.ErrInvalidInput)
			}

			var series [][]float64
			if returns != nil {
				if series, err = selectSeries(returns, p.Assets); err != nil {
					return err
				}
			}

			return a.withEngine(func(e *stats.Engine) error {
				if series != nil {
					if cov, err = stats.CovarianceMatrix(e, series); err != nil {
						return err
					}
				}
				calc := risk.NewCalculator[float64](stats.NewComposer[float64](e), a.log)
				if err := printVaR(cmd, calc, p, cov); err != nil {
					return err
				}
				if savePath == "" {
					return nil
				}

				return savePortfolio(savePath, p, cov)
			})
		},
	}
	c.Flags().StringVar(&portfolioPath, "portfolio", "", "portfolio YAML (weights, covariance, confidence, period)")
	c.Flags().StringVar(&csvPath, "csv", "", "return series CSV to derive the covariance from")
	c.Flags().StringVar(&weightsFlag, "weights", "", "comma separated invested amounts, e.g. 100,200")
	c.Flags().Float64Var(&confidence, "confidence", dataset.DefaultConfidence, "confidence z-score")
	c.Flags().IntVar(&period, "period", dataset.DefaultPeriod, "time period count (square-root-of-time scaling)")
	c.Flags().StringVar(&savePath, "save-portfolio", "", "write the resolved portfolio YAML to this file")

	return c
}

func printVaR(cmd *cobra.Command, calc *risk.Calculator[float64], p *dataset.Portfolio, cov *matrix.Dense[float64]) error {
	variance, err := calc.Variance(p.Weights, cov)
	if err != nil {
		return err
	}
	v, err := calc.VaR(p.Weights, cov, p.Confidence, p.Period)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "variance\t%.6f\n", variance)
	fmt.Fprintf(out, "var\t%.6f\n", v)

	return nil
}

// selectSeries picks the CSV columns named by assets, in that order. No
// assets means every column.
func selectSeries(r *dataset.Returns, assets []string) ([][]float64, error) {
	if len(assets) == 0 {
		return r.Series, nil
	}
	out := make([][]float64, len(assets))
	for i, name := range assets {
		col, err := r.Column(name)
		if err != nil {
			return nil, err
		}
		out[i] = col
	}

	return out, nil
}

func savePortfolio(path string, p *dataset.Portfolio, cov *matrix.Dense[float64]) error {
	p.Covariance = cov.ToRows()
	data, err := p.Marshal()
	if err != nil {
		return fmt.Errorf("save portfolio: %w", err)
	}
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save portfolio: %w", err)
	}

	return nil
}

func parseWeights(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("--weights %q: %w", part, status.ErrInvalidInput)
		}
		out = append(out, v)
	}

	return out, nil
}
