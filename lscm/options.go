// SPDX-License-Identifier: MIT

package lscm

import (
	"fmt"

	"github.com/katalvlaran/uvkit/mesh"
	"github.com/katalvlaran/uvkit/sparse"
)

// ErrOptionViolation is returned when an invalid Option is supplied.
var ErrOptionViolation = fmt.Errorf("lscm: invalid option supplied: %w", mesh.ErrInvalidParameter)

// DefaultRelaxIterations is the number of local/global rounds Relax runs
// when WithRelax is not given.
const DefaultRelaxIterations = 10

// ErrDegeneratePins is returned when both pins land on the same vertex.
var ErrDegeneratePins = fmt.Errorf("lscm: boundary needs two distinct pin vertices: %w", mesh.ErrInvalidParameter)

// Options holds the settings of one Unwrap call.
type Options struct {
	// Boundary, when non-empty, replaces the longest boundary loop as the
	// source of the two pinned vertices.
	Boundary []int

	// Solver configures the factorization of the normal equations and of
	// the relaxation system.
	Solver []sparse.Option

	// Normalize maps each UV axis into [0,1]. When false the layout keeps
	// the pins at (0,0) and (1,0).
	Normalize bool

	// Relax is the number of as-rigid-as-possible rounds applied after the
	// conformal solve. Unwrap runs none by default.
	Relax int

	err error
}

// Option configures Unwrap.
type Option func(*Options)

// WithBoundary pins Boundary[0] and Boundary[len/2] instead of vertices of
// the longest boundary loop. A single vertex is rejected.
func WithBoundary(vertices []int) Option {
	return func(o *Options) {
		if len(vertices) == 1 {
			o.err = fmt.Errorf("%w: boundary of one vertex", ErrOptionViolation)
			return
		}
		o.Boundary = append([]int(nil), vertices...)
	}
}

// WithSolver passes options to sparse.Factorize.
func WithSolver(opts ...sparse.Option) Option {
	return func(o *Options) {
		o.Solver = append(o.Solver, opts...)
	}
}

// WithNormalize toggles the per-axis mapping of the result into [0,1].
// Callers that rescale charts themselves pass false to keep the aspect
// ratio of the layout.
func WithNormalize(on bool) Option {
	return func(o *Options) {
		o.Normalize = on
	}
}

// WithRelax sets the number of as-rigid-as-possible rounds. Zero disables
// the relaxation in Unwrap; negative counts are rejected.
func WithRelax(iterations int) Option {
	return func(o *Options) {
		if iterations < 0 {
			o.err = fmt.Errorf("%w: relax iterations %d < 0", ErrOptionViolation, iterations)
			return
		}
		o.Relax = iterations
	}
}

func gatherOptions(opts []Option) (Options, error) {
	o := Options{Normalize: true}
	for _, fn := range opts {
		fn(&o)
	}
	return o, o.err
}
