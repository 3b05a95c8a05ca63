// SPDX-License-Identifier: MIT
package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvstats/accel"
	"github.com/katalvlaran/lvstats/accel/cpu"
	"github.com/katalvlaran/lvstats/config"
	"github.com/katalvlaran/lvstats/stats"
	"github.com/katalvlaran/lvstats/status"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := config.Load("")
	require.NoError(t, err)

	require.Equal(t, accel.Device{ID: 0, AllocationSize: 256 << 20}, c.AccelDevice())
	require.Equal(t, "info", c.Log.Level)
	require.Equal(t, "json", c.Log.Format)
	require.Equal(t, "fail-fast", c.Matrix.Policy)
	require.Equal(t, "lvstats", c.Metrics.Namespace)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LVSTATS_DEVICE_ID", "2")
	t.Setenv("LVSTATS_MATRIX_POLICY", "fill-all")
	t.Setenv("LVSTATS_LOG_LEVEL", "debug")

	c, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, 2, c.Device.ID)
	require.Equal(t, "fill-all", c.Matrix.Policy)
	require.Equal(t, "debug", c.Log.Level)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lvstats.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
device:
  id: 1
  allocation_size: 4096
log:
  format: console
metrics:
  namespace: risk_batch
`), 0o600))

	c, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, c.Device.ID)
	require.Equal(t, int64(4096), c.Device.AllocationSize)
	require.Equal(t, "console", c.Log.Format)
	require.Equal(t, "info", c.Log.Level, "unset keys keep defaults")
	require.Equal(t, "risk_batch", c.Metrics.Namespace)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	t.Setenv("LVSTATS_MATRIX_POLICY", "retry")
	_, err = config.Load("")
	require.ErrorIs(t, err, stats.ErrUnknownPolicy)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	good := config.Config{
		Device:  config.DeviceConfig{ID: 0, AllocationSize: 1},
		Log:     config.LogConfig{Level: "info", Format: "json"},
		Matrix:  config.MatrixConfig{Policy: "fill-all"},
		Metrics: config.MetricsConfig{Namespace: "x"},
	}
	require.NoError(t, good.Validate())

	for name, mutate := range map[string]func(*config.Config){
		"negative device": func(c *config.Config) { c.Device.ID = -1 },
		"zero budget":     func(c *config.Config) { c.Device.AllocationSize = 0 },
		"bad level":       func(c *config.Config) { c.Log.Level = "loud" },
		"bad format":      func(c *config.Config) { c.Log.Format = "xml" },
		"no namespace":    func(c *config.Config) { c.Metrics.Namespace = "" },
	} {
		c := good
		mutate(&c)
		err := c.Validate()
		require.ErrorIs(t, err, config.ErrInvalid, name)
		require.Equal(t, status.InvalidInput, status.Of(err), name)
	}
}

func TestEngineOptions(t *testing.T) {
	t.Parallel()

	c := config.Config{
		Device:  config.DeviceConfig{AllocationSize: 1 << 20},
		Log:     config.LogConfig{Level: "info", Format: "json"},
		Matrix:  config.MatrixConfig{Policy: "fill-all"},
		Metrics: config.MetricsConfig{Namespace: "t_config"},
	}
	reg := prometheus.NewRegistry()
	opts, err := c.EngineOptions(zap.NewNop(), reg)
	require.NoError(t, err)

	e, err := stats.New(cpu.New(), c.AccelDevice(), opts...)
	require.NoError(t, err)
	require.Equal(t, stats.FillAll, e.Policy())
	require.NoError(t, e.Close())

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
	require.Contains(t, families[0].GetName(), "t_config_")

	c.Matrix.Policy = "bogus"
	_, err = c.EngineOptions(nil, nil)
	require.ErrorIs(t, err, stats.ErrUnknownPolicy)
}
