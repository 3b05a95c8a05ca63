// SPDX-License-Identifier: MIT

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvstats/status"
)

var (
	// ErrNoColumns indicates a CSV without a header row.
	ErrNoColumns = status.Sentinel(status.ErrInvalidInput, "dataset: no columns")
	// ErrBadValue indicates a cell that does not parse as a float.
	ErrBadValue = status.Sentinel(status.ErrInvalidInput, "dataset: bad value")
	// ErrUnknownAsset indicates a column name that is not in the file.
	ErrUnknownAsset = status.Sentinel(status.ErrInvalidInput, "dataset: unknown asset")
)

// Returns holds one series per asset.
type Returns struct {
	Names  []string
	Series [][]float64
}

// LoadReturnsFile opens path and reads it with ReadReturns.
func LoadReturnsFile(path string) (*Returns, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadReturns(f)
}

// ReadReturns parses a header plus float rows. A column may end early: its
// trailing cells may be blank or missing, so series differ in length. A value
// after a blank in the same column fails with ErrBadValue. Errors carry the
// 1-based line and the column name.
func ReadReturns(r io.Reader) (*Returns, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoColumns
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: header: %w", err)
	}
	out := &Returns{Names: make([]string, len(header)), Series: make([][]float64, len(header))}
	for i, h := range header {
		out.Names[i] = strings.TrimSpace(h)
	}

	ended := make([]int, len(header)) // line of the first blank cell, 0 while the column runs
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: %w", err)
		}
		line++
		if len(record) > len(header) {
			return nil, fmt.Errorf("dataset: line %d has %d fields, header has %d: %w", line, len(record), len(header), status.ErrDimensionMismatch)
		}
		for j := range header {
			cell := ""
			if j < len(record) {
				cell = strings.TrimSpace(record[j])
			}
			if cell == "" {
				if ended[j] == 0 {
					ended[j] = line
				}
				continue
			}
			if ended[j] != 0 {
				return nil, fmt.Errorf("dataset: line %d column %q: value after blank cell on line %d: %w", line, out.Names[j], ended[j], ErrBadValue)
			}
			v, perr := strconv.ParseFloat(cell, 64)
			if perr != nil {
				return nil, fmt.Errorf("dataset: line %d column %q: %q: %w", line, out.Names[j], cell, ErrBadValue)
			}
			out.Series[j] = append(out.Series[j], v)
		}
	}

	return out, nil
}

// Column returns the series of the asset called name.
func (r *Returns) Column(name string) ([]float64, error) {
	for i, n := range r.Names {
		if n == name {
			return r.Series[i], nil
		}
	}

	return nil, fmt.Errorf("%q: %w", name, ErrUnknownAsset)
}
