// SPDX-License-Identifier: MIT

package geodesic

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/uvkit/mesh"
	"github.com/katalvlaran/uvkit/sparse"
)

const (
	// MinTimeStep is the lower bound of the diffusion time.
	MinTimeStep = 1e-7

	// DefaultRegularization is the mass weight added to the Poisson system.
	DefaultRegularization = 1e-8

	// GradientFloor is the per-face gradient norm below which the unit
	// field is set to zero.
	GradientFloor = 1e-12

	// DefaultTimeScale multiplies h̄² to obtain the diffusion time.
	DefaultTimeScale = 1.0
)

var (
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = fmt.Errorf("geodesic: invalid option supplied: %w", mesh.ErrInvalidParameter)

	// ErrBadTimeScale is returned for a time scale that is not a positive
	// finite number.
	ErrBadTimeScale = fmt.Errorf("geodesic: time scale must be > 0: %w", mesh.ErrInvalidParameter)

	// ErrNoSources is returned when Distance gets an empty source list.
	ErrNoSources = fmt.Errorf("geodesic: at least one source is required: %w", mesh.ErrInvalidParameter)

	// ErrFieldLength is returned when a distance field does not have one
	// value per vertex.
	ErrFieldLength = fmt.Errorf("geodesic: field length does not match vertex count: %w", mesh.ErrInvalidParameter)

	// ErrBadEpsilon is returned for a negative or NaN descent threshold.
	ErrBadEpsilon = fmt.Errorf("geodesic: epsilon must be >= 0: %w", mesh.ErrInvalidParameter)

	// ErrNilSolver is returned by methods called on a nil *Solver.
	ErrNilSolver = errors.New("geodesic: solver is nil")
)

// Options configures Prepare.
type Options struct {
	// Regularization weights M in the Poisson system.
	Regularization float64

	// Solver configures both factorizations.
	Solver []sparse.Option

	err error
}

// Option configures Prepare.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{Regularization: DefaultRegularization}
}

// WithRegularization overrides the Poisson regularization weight; eps must
// be positive.
func WithRegularization(eps float64) Option {
	return func(o *Options) {
		if !(eps > 0) || math.IsInf(eps, 0) {
			o.err = fmt.Errorf("%w: Regularization must be > 0 (%v)", ErrOptionViolation, eps)
			return
		}
		o.Regularization = eps
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
