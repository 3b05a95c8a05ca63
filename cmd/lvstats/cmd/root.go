// SPDX-License-Identifier: MIT

// Package cmd holds the cobra command tree of lvstats.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvstats/accel/cpu"
	"github.com/katalvlaran/lvstats/config"
	"github.com/katalvlaran/lvstats/internal/logging"
	"github.com/katalvlaran/lvstats/stats"
	"github.com/katalvlaran/lvstats/status"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

// app is the state shared by the commands of one invocation.
type app struct {
	cfgFile     string
	metricsFile string
	devices     int

	v        *viper.Viper
	cfg      config.Config
	log      *zap.Logger
	registry *prometheus.Registry
}

// NewRootCmd builds a fresh command tree writing results to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	a := &app{v: viper.New(), devices: 1}

	root := &cobra.Command{
		Use:   "lvstats",
		Short: "Statistics and portfolio risk on an accelerator backend",
		Long: `lvstats computes standard deviations, covariances, correlations,
covariance/correlation matrices and portfolio Value-at-Risk.

Commands:
  describe - per-asset mean and standard deviations of a return CSV
  matrix   - covariance or correlation matrix of a return CSV
  var      - Value-at-Risk of a portfolio
  version  - print the version`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.teardown()
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (yaml, toml or json)")
	flags.Int("device", 0, "device ordinal")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.StringVar(&a.metricsFile, "metrics-file", "", "write backend metrics in text exposition format to this file")
	flags.IntVar(&a.devices, "devices", 1, "number of host device ordinals")
	_ = a.v.BindPFlag("device.id", flags.Lookup("device"))
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))

	root.AddCommand(
		newDescribeCmd(a),
		newMatrixCmd(a),
		newVarCmd(a),
		newVersionCmd(),
	)

	return root
}

// Execute runs the command tree on os.Args.
func Execute() error {
	return NewRootCmd(os.Stdout).Execute()
}

// ExitCode maps an error onto the process exit status by status class.
func ExitCode(err error) int {
	switch status.Of(err) {
	case status.Success:
		return 0
	case status.InvalidInput:
		return 2
	case status.DimensionMismatch:
		return 3
	case status.BackendFailure:
		return 4
	default:
		return 1
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}
	cfg, err := config.LoadWith(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	a.cfg, a.log, a.registry = cfg, log, prometheus.NewRegistry()

	return nil
}

func (a *app) teardown() error {
	if a.log != nil {
		_ = a.log.Sync()
	}

	return nil
}

// writeMetrics dumps the registry to --metrics-file, if set.
func (a *app) writeMetrics() error {
	if a.metricsFile == "" || a.registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.metricsFile, a.registry); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	return nil
}

// withEngine runs fn on an engine built from the loaded configuration. The
// metrics file is written once the engine is released, whatever fn returned.
func (a *app) withEngine(fn func(*stats.Engine) error) error {
	opts, err := a.cfg.EngineOptions(a.log, a.registry)
	if err != nil {
		return err
	}
	err = stats.With(cpu.New(cpu.WithDevices(a.devices)), a.cfg.AccelDevice(), fn, opts...)
	if merr := a.writeMetrics(); merr != nil && err == nil {
		err = merr
	}

	return err
}
