// SPDX-License-Identifier: MIT

package atlas

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"strings"

	"github.com/katalvlaran/uvkit/abf"
	"github.com/katalvlaran/uvkit/lscm"
	"github.com/katalvlaran/uvkit/mesh"
	"github.com/katalvlaran/uvkit/segment"
	"github.com/katalvlaran/uvkit/sparse"
)

// Method selects the flattening algorithm applied to each island.
type Method int

const (
	// MethodAuto tries LSCM and falls back to ABF when LSCM yields no
	// usable layout.
	MethodAuto Method = iota

	// MethodLSCM uses least-squares conformal maps only.
	MethodLSCM

	// MethodABF uses angle-based flattening only.
	MethodABF
)

// String implements fmt.Stringer.
func (m Method) String() string {
	switch m {
	case MethodAuto:
		return "auto"
	case MethodLSCM:
		return "lscm"
	case MethodABF:
		return "abf"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod is the inverse of Method.String; matching ignores case.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return MethodAuto, nil
	case "lscm":
		return MethodLSCM, nil
	case "abf":
		return MethodABF, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if m < MethodAuto || m > MethodABF {
		return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(b []byte) error {
	v, err := ParseMethod(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Defaults.
const (
	// DefaultPadding is the chart gap as a fraction of the square root of
	// the surface area.
	DefaultPadding = 0.02

	// DefaultRelax is the number of as-rigid-as-possible rounds applied
	// to every chart.
	DefaultRelax = 3
)

var (
	// ErrUnavailable is returned by a strategy that cannot run in this
	// build, and by Select when no strategy can.
	ErrUnavailable = errors.New("atlas: generator unavailable")

	// ErrUnknownMethod is returned for an unrecognized Method.
	ErrUnknownMethod = fmt.Errorf("atlas: unknown method: %w", mesh.ErrInvalidParameter)

	// ErrOptionViolation is returned for invalid Options.
	ErrOptionViolation = fmt.Errorf("atlas: invalid options: %w", mesh.ErrInvalidParameter)
)

// Options configures Generate.
type Options struct {
	// FeatureAngle is the dihedral angle in degrees above which an edge
	// becomes a seam.
	FeatureAngle float64

	// Method flattens each island.
	Method Method

	// Padding is the gap between packed charts, relative to the square
	// root of the surface area.
	Padding float64

	// Workers bounds the goroutines of UnwrapIslands; zero means
	// runtime.GOMAXPROCS(0).
	Workers int

	// Relax is the number of lscm.Relax rounds run on every usable chart.
	// Zero keeps the raw flattening.
	Relax int

	// LSCM and ABF configure the respective method on every island.
	// Normalization is always disabled; charts are scaled by the packer.
	LSCM []lscm.Option
	ABF  []abf.Option

	// Solver is applied to every factorization before the method-specific
	// options, so a WithSolver inside LSCM or ABF takes precedence.
	Solver []sparse.Option
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		FeatureAngle: segment.DefaultFeatureAngle,
		Method:       MethodAuto,
		Padding:      DefaultPadding,
		Relax:        DefaultRelax,
	}
}

// Validate reports the first invalid field.
func (o Options) Validate() error {
	if !(o.FeatureAngle >= 0 && o.FeatureAngle <= 180) {
		return fmt.Errorf("%w: FeatureAngle=%v not in [0,180]", ErrOptionViolation, o.FeatureAngle)
	}
	if o.Method < MethodAuto || o.Method > MethodABF {
		return fmt.Errorf("%w: %v", ErrUnknownMethod, o.Method)
	}
	if !(o.Padding >= 0) || math.IsInf(o.Padding, 0) {
		return fmt.Errorf("%w: Padding=%v", ErrOptionViolation, o.Padding)
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: Workers=%d", ErrOptionViolation, o.Workers)
	}
	if o.Relax < 0 {
		return fmt.Errorf("%w: Relax=%d", ErrOptionViolation, o.Relax)
	}
	return nil
}

func workerCount(n int) int {
	if n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}
