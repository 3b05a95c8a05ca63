// SPDX-License-Identifier: MIT

package accel

import "go.uber.org/zap"

// Option configures a Handle at Acquire time.
type Option func(*handleOptions)

type handleOptions struct {
	logger  *zap.Logger
	metrics *Metrics
}

// WithLogger sets the handle logger. A nil logger panics: it is a programmer error.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("accel: WithLogger(nil)")
	}

	return func(o *handleOptions) { o.logger = l }
}

// WithMetrics sets the collectors the handle reports to.
func WithMetrics(m *Metrics) Option {
	if m == nil {
		panic("accel: WithMetrics(nil)")
	}

	return func(o *handleOptions) { o.metrics = m }
}

func gatherOptions(opts ...Option) handleOptions {
	o := handleOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.metrics == nil {
		o.metrics = defaultMetrics
	}

	return o
}
