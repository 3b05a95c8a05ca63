// SPDX-License-Identifier: MIT

package accel

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every metric name unless NewMetrics is given another.
const DefaultNamespace = "lvstats"

// Metrics groups the collectors a Handle reports to.
//
//	<ns>_backend_calls_total{op,precision,status}
//	<ns>_backend_call_duration_seconds{op}
//	<ns>_handles_open
type Metrics struct {
	Calls       *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
	HandlesOpen prometheus.Gauge
}

// defaultMetrics is shared by handles acquired without WithMetrics. It is never
// registered, so nothing leaks into the global registry.
var defaultMetrics = NewMetrics(DefaultNamespace)

// NewMetrics builds an unregistered collector set under namespace.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	return &Metrics{
		Calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "backend_calls_total",
				Help:      "Total number of accelerator kernel calls by operation, precision and outcome",
			},
			[]string{"op", "precision", "status"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "backend_call_duration_seconds",
				Help:      "Latency in seconds of accelerator kernel calls",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
			},
			[]string{"op"},
		),
		HandlesOpen: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "handles_open",
				Help:      "Number of acquired and not yet released accelerator handles",
			},
		),
	}
}

// Register adds the collectors to reg and returns the set that is actually
// registered there. When an identical set is already present (a second engine
// on the same registry), the existing collectors are adopted. On error the
// collectors this call added are unregistered again.
func (m *Metrics) Register(reg prometheus.Registerer) (*Metrics, error) {
	var added []prometheus.Collector
	rollback := func(err error) (*Metrics, error) {
		for _, c := range added {
			reg.Unregister(c)
		}

		return nil, err
	}

	out := *m
	calls, ok, err := register(reg, m.Calls)
	if err != nil {
		return rollback(err)
	}
	if ok {
		added = append(added, calls)
	}
	dur, ok, err := register(reg, m.Duration)
	if err != nil {
		return rollback(err)
	}
	if ok {
		added = append(added, dur)
	}
	open, _, err := register(reg, m.HandlesOpen)
	if err != nil {
		return rollback(err)
	}
	out.Calls, out.Duration, out.HandlesOpen = calls, dur, open

	return &out, nil
}

// register returns the collector registered under c's descriptors and whether
// this call added it.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, bool, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, false, nil
			}
		}
		var zero C
		return zero, false, err
	}

	return c, true, nil
}
