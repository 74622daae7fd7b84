// SPDX-License-Identifier: MIT

package abf

import (
	"fmt"
	"math"

	"github.com/katalvlaran/uvkit/mesh"
	"github.com/katalvlaran/uvkit/sparse"
)

// Defaults.
const (
	// DefaultMaxIterations bounds the Newton iteration.
	DefaultMaxIterations = 100

	// DefaultTolerance applies to both convergence tests.
	DefaultTolerance = 1e-6

	// DefaultPenalty is the initial constraint weight λ.
	DefaultPenalty = 0.1

	// PenaltyGrowth multiplies λ after a step that leaves too much violation.
	PenaltyGrowth = 10

	// MaxPenalty caps λ.
	MaxPenalty = 1e8

	// ViolationDecrease is the factor by which one step must cut the
	// largest constraint violation to keep λ unchanged.
	ViolationDecrease = 0.25

	// FeasibilityTolerance is the largest violation, in radians, accepted
	// as converged when the energy test stops the iteration.
	FeasibilityTolerance = 1e-4

	// AngleEpsilon keeps optimized angles inside (ε, π-ε).
	AngleEpsilon = 1e-6

	// NaturalAngleFloor is the smallest natural angle used as a weight.
	NaturalAngleFloor = 1e-8
)

// ErrOptionViolation is returned when an invalid Option is supplied.
var ErrOptionViolation = fmt.Errorf("abf: invalid option supplied: %w", mesh.ErrInvalidParameter)

// Options holds the optimizer settings.
type Options struct {
	MaxIterations int
	Tolerance     float64
	Penalty       float64
	Solver        []sparse.Option

	// Normalize maps the Unwrap layout into [0,1]² per axis. When false
	// the layout keeps the 3D edge lengths.
	Normalize bool

	err error
}

// Option configures Optimize and Unwrap.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
		Penalty:       DefaultPenalty,
		Normalize:     true,
	}
}

// WithMaxIterations sets the iteration budget; k must be positive.
func WithMaxIterations(k int) Option {
	return func(o *Options) {
		if k <= 0 {
			o.err = fmt.Errorf("%w: MaxIterations must be > 0 (%d)", ErrOptionViolation, k)
			return
		}
		o.MaxIterations = k
	}
}

// WithTolerance sets the convergence tolerance; tol must be positive.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if !(tol > 0) || math.IsInf(tol, 0) {
			o.err = fmt.Errorf("%w: Tolerance must be > 0 (%v)", ErrOptionViolation, tol)
			return
		}
		o.Tolerance = tol
	}
}

// WithPenalty sets the initial constraint weight λ; it must be positive.
func WithPenalty(lambda float64) Option {
	return func(o *Options) {
		if !(lambda > 0) || math.IsInf(lambda, 0) {
			o.err = fmt.Errorf("%w: Penalty must be > 0 (%v)", ErrOptionViolation, lambda)
			return
		}
		o.Penalty = lambda
	}
}

// WithNormalize chooses between the [0,1]² layout (the default) and the
// layout at surface scale.
func WithNormalize(on bool) Option {
	return func(o *Options) {
		o.Normalize = on
	}
}

// WithSolver passes options to sparse.Factorize.
func WithSolver(opts ...sparse.Option) Option {
	return func(o *Options) {
		o.Solver = append(o.Solver, opts...)
	}
}

func gatherOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o, o.err
}
