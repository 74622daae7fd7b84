// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"
	"math"
	"strings"
)

// Method selects the factorization back end.
type Method int

const (
	// MethodAuto uses dense Cholesky up to the dense limit and CG above it.
	MethodAuto Method = iota

	// MethodDense always uses gonum's dense Cholesky.
	MethodDense

	// MethodCG always uses Jacobi-preconditioned conjugate gradients.
	MethodCG
)

// String implements fmt.Stringer.
func (m Method) String() string {
	switch m {
	case MethodAuto:
		return "auto"
	case MethodDense:
		return "dense-cholesky"
	case MethodCG:
		return "pcg"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod accepts the String form of a Method and the short aliases
// "dense" and "cg".
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return MethodAuto, nil
	case "dense", "dense-cholesky":
		return MethodDense, nil
	case "cg", "pcg":
		return MethodCG, nil
	}
	return 0, fmt.Errorf("%w: unknown method %q", ErrOptionViolation, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(b []byte) error {
	v, err := ParseMethod(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Defaults (single source of truth).
const (
	// DefaultDenseLimit is the largest dimension factorized densely under
	// MethodAuto. The dense step cannot be interrupted, so the limit also
	// bounds how long a cancelled Factorize may keep running.
	DefaultDenseLimit = 1000

	// DefaultMaxIterations bounds a single CG solve.
	DefaultMaxIterations = 20000

	// DefaultTolerance is the relative residual target of CG.
	DefaultTolerance = 1e-10

	// DefaultSymmetryEps is the relative tolerance of the symmetry check.
	DefaultSymmetryEps = 1e-9
)

// Option configures Factorize. Invalid values are recorded and returned as
// ErrOptionViolation by Factorize.
type Option func(*Options)

// Options holds the resolved factorization settings.
type Options struct {
	Method        Method
	DenseLimit    int
	MaxIterations int
	Tolerance     float64
	SymmetryEps   float64

	err error
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Method:        MethodAuto,
		DenseLimit:    DefaultDenseLimit,
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
		SymmetryEps:   DefaultSymmetryEps,
	}
}

// WithMethod forces a back end.
func WithMethod(m Method) Option {
	return func(o *Options) {
		if m < MethodAuto || m > MethodCG {
			o.err = fmt.Errorf("%w: unknown method %d", ErrOptionViolation, int(m))
			return
		}
		o.Method = m
	}
}

// WithDenseLimit sets the dimension threshold of MethodAuto (n > 0).
func WithDenseLimit(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: DenseLimit must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.DenseLimit = n
	}
}

// WithMaxIterations bounds each CG solve (k > 0).
func WithMaxIterations(k int) Option {
	return func(o *Options) {
		if k <= 0 {
			o.err = fmt.Errorf("%w: MaxIterations must be positive (%d)", ErrOptionViolation, k)
			return
		}
		o.MaxIterations = k
	}
}

// WithTolerance sets the CG relative residual target (finite, > 0).
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if !(tol > 0) || math.IsInf(tol, 0) {
			o.err = fmt.Errorf("%w: Tolerance must be finite and positive (%v)", ErrOptionViolation, tol)
			return
		}
		o.Tolerance = tol
	}
}

func gatherOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o, o.err
}
