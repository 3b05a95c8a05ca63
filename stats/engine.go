// SPDX-License-Identifier: MIT

package stats

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvstats/accel"
)

// MatrixPolicy decides what CovarianceMatrix and CorrelationMatrix do when a
// pairwise statistic fails.
type MatrixPolicy int

const (
	// FailFast stops at the first failing pair and returns no matrix.
	FailFast MatrixPolicy = iota
	// FillAll attempts every pair, leaves failed cells zero and returns the
	// partial matrix together with the last failure.
	FillAll
)

// String returns "fail-fast" or "fill-all".
func (p MatrixPolicy) String() string {
	if p == FillAll {
		return "fill-all"
	}

	return "fail-fast"
}

// ParseMatrixPolicy maps "fail-fast" / "fill-all" (case-insensitive) to a policy.
func ParseMatrixPolicy(s string) (MatrixPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fail-fast", "failfast", "":
		return FailFast, nil
	case "fill-all", "fillall":
		return FillAll, nil
	default:
		return FailFast, fmt.Errorf("%q: %w", s, ErrUnknownPolicy)
	}
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	logger     *zap.Logger
	registerer prometheus.Registerer
	namespace  string
	policy     MatrixPolicy
}

// WithLogger sets the engine and handle logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("stats: WithLogger(nil)")
	}

	return func(o *engineOptions) { o.logger = l }
}

// WithRegisterer registers the handle metrics on reg.
// Engines sharing a registry share the collectors.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *engineOptions) { o.registerer = reg }
}

// WithMetricsNamespace overrides the metric name prefix (default "lvstats").
func WithMetricsNamespace(ns string) Option {
	return func(o *engineOptions) { o.namespace = ns }
}

// WithMatrixPolicy sets the pairwise failure policy of the matrix builders.
func WithMatrixPolicy(p MatrixPolicy) Option {
	if p != FailFast && p != FillAll {
		panic(fmt.Sprintf("stats: WithMatrixPolicy(%d)", int(p)))
	}

	return func(o *engineOptions) { o.policy = p }
}

// Engine owns one accelerator handle. It is safe for concurrent use: calls are
// serialized by the handle.
type Engine struct {
	handle *accel.Handle
	log    *zap.Logger
	policy MatrixPolicy
}

// New acquires a handle on device through backend.
//
// Errors:
//   - accel.ErrNilBackend / accel.ErrInvalidDevice (InvalidInput).
//   - *accel.BackendError when the device refuses the session (BackendFailure).
//   - prometheus registration errors when WithRegisterer collides with foreign collectors.
func New(backend accel.Backend, device accel.Device, opts ...Option) (*Engine, error) {
	o := engineOptions{logger: zap.NewNop(), namespace: accel.DefaultNamespace}
	for _, opt := range opts {
		opt(&o)
	}

	metrics := accel.NewMetrics(o.namespace)
	if o.registerer != nil {
		var err error
		if metrics, err = metrics.Register(o.registerer); err != nil {
			return nil, fmt.Errorf("stats: register metrics: %w", err)
		}
	}

	h, err := accel.Acquire(backend, device, accel.WithLogger(o.logger), accel.WithMetrics(metrics))
	if err != nil {
		return nil, err
	}

	return &Engine{
		handle: h,
		log:    o.logger.With(zap.String("component", "stats"), zap.String("handle", h.ID().String())),
		policy: o.policy,
	}, nil
}

// With runs fn on a fresh engine and releases it on every exit path, panics
// included. fn's error wins over a release error.
func With(backend accel.Backend, device accel.Device, fn func(*Engine) error, opts ...Option) (err error) {
	e, err := New(backend, device, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := e.Close(); err == nil {
			err = cerr
		}
	}()

	return fn(e)
}

// Close releases the handle. Safe to call more than once.
func (e *Engine) Close() error {
	if e == nil {
		return nil
	}

	return e.handle.Release()
}

// Device returns the device the engine is bound to.
func (e *Engine) Device() accel.Device { return e.handle.Device() }

// ID returns the handle identity.
func (e *Engine) ID() uuid.UUID { return e.handle.ID() }

// Policy returns the matrix policy.
func (e *Engine) Policy() MatrixPolicy { return e.policy }
