// SPDX-License-Identifier: MIT

// Package config loads lvstats settings from a file and LVSTATS_* environment
// variables through viper, and maps them onto engine options.
//
// Keys and defaults:
//
//	device.id               0
//	device.allocation_size  268435456 (256 MiB)
//	log.level               info
//	log.format              json
//	matrix.policy           fail-fast
//	metrics.namespace       lvstats
//
// Environment variables replace dots with underscores: LVSTATS_DEVICE_ID,
// LVSTATS_MATRIX_POLICY, ...
package config

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvstats/accel"
	"github.com/katalvlaran/lvstats/stats"
	"github.com/katalvlaran/lvstats/status"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LVSTATS"

// ErrInvalid marks a configuration value outside its domain.
var ErrInvalid = status.Sentinel(status.ErrInvalidInput, "config: invalid value")

// Config is the full lvstats configuration.
type Config struct {
	Device  DeviceConfig  `mapstructure:"device"`
	Log     LogConfig     `mapstructure:"log"`
	Matrix  MatrixConfig  `mapstructure:"matrix"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// DeviceConfig selects the accelerator device and its working-set budget.
type DeviceConfig struct {
	ID             int   `mapstructure:"id"`
	AllocationSize int64 `mapstructure:"allocation_size"`
}

// LogConfig configures internal/logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MatrixConfig configures the covariance/correlation matrix builders.
type MatrixConfig struct {
	Policy string `mapstructure:"policy"`
}

// MetricsConfig configures the prometheus collectors.
type MetricsConfig struct {
	Namespace string `mapstructure:"namespace"`
}

// SetDefaults installs the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("device.id", 0)
	v.SetDefault("device.allocation_size", int64(256<<20))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("matrix.policy", stats.FailFast.String())
	v.SetDefault("metrics.namespace", accel.DefaultNamespace)
}

// Load reads path (optional: "" means defaults plus environment) into a
// validated Config.
func Load(path string) (Config, error) {
	return LoadWith(viper.New(), path)
}

// LoadWith is Load on a caller-provided viper instance, so flag bindings made
// by the caller take part in resolution.
func LoadWith(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks every value against its domain.
func (c Config) Validate() error {
	if c.Device.ID < 0 {
		return fmt.Errorf("device.id=%d: %w", c.Device.ID, ErrInvalid)
	}
	if c.Device.AllocationSize <= 0 {
		return fmt.Errorf("device.allocation_size=%d: %w", c.Device.AllocationSize, ErrInvalid)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level=%q: %w", c.Log.Level, ErrInvalid)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("log.format=%q: %w", c.Log.Format, ErrInvalid)
	}
	if _, err := stats.ParseMatrixPolicy(c.Matrix.Policy); err != nil {
		return fmt.Errorf("matrix.policy: %w", err)
	}
	if c.Metrics.Namespace == "" {
		return fmt.Errorf("metrics.namespace is empty: %w", ErrInvalid)
	}

	return nil
}

// AccelDevice returns the configured device.
func (c Config) AccelDevice() accel.Device {
	return accel.Device{ID: c.Device.ID, AllocationSize: c.Device.AllocationSize}
}

// EngineOptions maps the configuration onto stats options. A nil logger or
// registerer leaves the engine default in place.
func (c Config) EngineOptions(log *zap.Logger, reg prometheus.Registerer) ([]stats.Option, error) {
	policy, err := stats.ParseMatrixPolicy(c.Matrix.Policy)
	if err != nil {
		return nil, fmt.Errorf("matrix.policy: %w", err)
	}
	opts := []stats.Option{
		stats.WithMatrixPolicy(policy),
		stats.WithMetricsNamespace(c.Metrics.Namespace),
	}
	if log != nil {
		opts = append(opts, stats.WithLogger(log))
	}
	if reg != nil {
		opts = append(opts, stats.WithRegisterer(reg))
	}

	return opts, nil
}
