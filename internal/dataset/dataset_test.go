// SPDX-License-Identifier: MIT
package dataset_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvstats/internal/dataset"
	"github.com/katalvlaran/lvstats/matrix"
	"github.com/katalvlaran/lvstats/status"
)

func TestReadReturns(t *testing.T) {
	t.Parallel()

	in := "# daily returns\nAAA, BBB ,CCC\n0.01,0.02,1\n-0.02,0.04,2\n0.03,,\n"
	r, err := dataset.ReadReturns(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []string{"AAA", "BBB", "CCC"}, r.Names)
	require.Equal(t, []float64{0.01, -0.02, 0.03}, r.Series[0])
	require.Equal(t, []float64{0.02, 0.04}, r.Series[1])
	require.Equal(t, []float64{1, 2}, r.Series[2])

	col, err := r.Column("BBB")
	require.NoError(t, err)
	require.Len(t, col, 2)
	_, err = r.Column("ZZZ")
	require.ErrorIs(t, err, dataset.ErrUnknownAsset)
}

func TestReadReturns_Errors(t *testing.T) {
	t.Parallel()

	_, err := dataset.ReadReturns(strings.NewReader(""))
	require.ErrorIs(t, err, dataset.ErrNoColumns)

	_, err = dataset.ReadReturns(strings.NewReader("A,B\n1,x\n"))
	require.ErrorIs(t, err, dataset.ErrBadValue)
	require.Contains(t, err.Error(), `line 2 column "B"`)

	_, err = dataset.ReadReturns(strings.NewReader("A\n1,2\n"))
	require.Equal(t, status.DimensionMismatch, status.Of(err))
}

func TestReadReturns_ColumnsStayRowAligned(t *testing.T) {
	t.Parallel()

	// B ends early, as a trailing blank cell and as a missing field.
	r, err := dataset.ReadReturns(strings.NewReader("A,B,C\n1,10,5\n2,20,\n3\n"))
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3}, r.Series[0])
	require.Equal(t, []float64{10, 20}, r.Series[1])
	require.Equal(t, []float64{5}, r.Series[2])

	// A value after a blank would pair A's third row with B's second.
	_, err = dataset.ReadReturns(strings.NewReader("A,B\n1,10\n,20\n3,30\n4,\n"))
	require.ErrorIs(t, err, dataset.ErrBadValue)
	require.Equal(t, status.InvalidInput, status.Of(err))
	require.Contains(t, err.Error(), `line 4 column "A": value after blank cell on line 3`)
}

func TestLoadReturnsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "r.csv")
	require.NoError(t, os.WriteFile(path, []byte("X\n1\n2\n"), 0o600))
	r, err := dataset.LoadReturnsFile(path)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2}, r.Series[0])

	_, err = dataset.LoadReturnsFile(filepath.Join(t.TempDir(), "none.csv"))
	require.Error(t, err)
}

func TestParsePortfolio(t *testing.T) {
	t.Parallel()

	p, err := dataset.ParsePortfolio([]byte(`
assets: [AAA, BBB]
weights: [100, 200]
covariance:
  - [0.04, 0.01]
  - [0.01, 0.09]
`))
	require.NoError(t, err)
	require.Equal(t, dataset.DefaultConfidence, p.Confidence)
	require.Equal(t, dataset.DefaultPeriod, p.Period)

	cov, err := p.CovarianceMatrix()
	require.NoError(t, err)
	v, err := cov.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 0.09, v)

	out, err := p.Marshal()
	require.NoError(t, err)
	again, err := dataset.ParsePortfolio(out)
	require.NoError(t, err)
	require.Equal(t, p, again)
}

func TestParsePortfolio_Errors(t *testing.T) {
	t.Parallel()

	_, err := dataset.ParsePortfolio([]byte("weights: []\n"))
	require.ErrorIs(t, err, dataset.ErrNoColumns)

	_, err = dataset.ParsePortfolio([]byte("assets: [A]\nweights: [1, 2]\n"))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = dataset.ParsePortfolio([]byte("weights: [1, 2\n"))
	require.Error(t, err)

	p, err := dataset.ParsePortfolio([]byte("weights: [1]\ncovariance: [[1, 2], [3]]\n"))
	require.NoError(t, err)
	_, err = p.CovarianceMatrix()
	require.ErrorIs(t, err, matrix.ErrRagged)

	p, err = dataset.ParsePortfolio([]byte("weights: [1]\n"))
	require.NoError(t, err)
	cov, err := p.CovarianceMatrix()
	require.NoError(t, err)
	require.Nil(t, cov)
}
