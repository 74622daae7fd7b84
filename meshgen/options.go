// SPDX-License-Identifier: MIT
// Package: uvkit/meshgen
//
// options.go - functional options for stochastic constructors.
//
// Option constructors validate and panic on nil inputs; constructors
// themselves return errors. Seeding is explicit through WithSeed or WithRand.

package meshgen

import "math/rand"

// Option customizes a stochastic constructor.
type Option func(*config)

// config aggregates the knobs used by constructors.
type config struct {
	rng *rand.Rand
}

// defaultSeed keeps Jitter reproducible when no RNG option is given.
const defaultSeed = 1

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(defaultSeed))
	}
	return c
}

// WithSeed creates a new *rand.Rand with the given seed.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("meshgen: WithRand(nil)")
	}
	return func(c *config) {
		c.rng = r
	}
}
