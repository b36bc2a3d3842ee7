// Package sclog wires structured logging through the set-cover library.
// Every component that can log (model validation warnings, Lagrangian
// numerical-issue warnings) accepts a *zap.Logger via a functional option
// and defaults to a no-op logger so the library stays silent unless a
// caller opts in, the same posture the teacher library takes by preferring
// sentinel errors over ad-hoc printing.
package sclog

import "go.uber.org/zap"

// Nop is the default logger used when no WithLogger option is supplied.
func Nop() *zap.Logger { return zap.NewNop() }

// Option configures a component's logger.
type Option func(*Config)

// Config holds the logger a component was constructed with.
type Config struct {
	Logger *zap.Logger
}

// NewConfig applies opts over a Nop-logging default.
func NewConfig(opts ...Option) *Config {
	c := &Config{Logger: Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithLogger injects a caller-supplied logger. Passing nil is equivalent to
// not calling the option at all (the Nop default is kept).
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}
