// SPDX-License-Identifier: MIT

// Command lvstats computes dispersion, association and portfolio risk
// statistics from CSV return series and YAML portfolios.
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/lvstats/cmd/lvstats/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "lvstats: %v\n", err)
		os.Exit(cmd.ExitCode(err))
	}
}
