// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvstats/matrix"
)

// Portfolio is the YAML portfolio description.
type Portfolio struct {
	Assets     []string    `yaml:"assets"`
	Weights    []float64   `yaml:"weights"`
	Covariance [][]float64 `yaml:"covariance,omitempty"`
	Confidence float64     `yaml:"confidence,omitempty"`
	Period     int         `yaml:"period,omitempty"`
}

// Defaults applied by ParsePortfolio when the file leaves them out.
const (
	DefaultConfidence = 1.645
	DefaultPeriod     = 1
)

// LoadPortfolioFile reads and parses a portfolio file.
func LoadPortfolioFile(path string) (*Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParsePortfolio(data)
}

// ParsePortfolio decodes YAML and fills defaults. Assets, when present, must
// match the weights in length.
func ParsePortfolio(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("dataset: portfolio: %w", err)
	}
	if len(p.Weights) == 0 {
		return nil, fmt.Errorf("dataset: portfolio has no weights: %w", ErrNoColumns)
	}
	if len(p.Assets) > 0 && len(p.Assets) != len(p.Weights) {
		return nil, fmt.Errorf("dataset: %d assets, %d weights: %w", len(p.Assets), len(p.Weights), matrix.ErrDimensionMismatch)
	}
	if p.Confidence == 0 {
		p.Confidence = DefaultConfidence
	}
	if p.Period == 0 {
		p.Period = DefaultPeriod
	}

	return &p, nil
}

// CovarianceMatrix converts the YAML covariance rows into a matrix.
// Returns (nil, nil) when the file carries none.
func (p *Portfolio) CovarianceMatrix() (*matrix.Dense[float64], error) {
	if len(p.Covariance) == 0 {
		return nil, nil
	}
	m, err := matrix.FromRows(p.Covariance)
	if err != nil {
		return nil, fmt.Errorf("dataset: covariance: %w", err)
	}

	return m, nil
}

// Marshal encodes p back to YAML.
func (p *Portfolio) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}
