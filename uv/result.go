// SPDX-License-Identifier: MIT

package uv

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/uvkit/mesh"
	"github.com/katalvlaran/uvkit/metrics"
)

// Status tags the quality of a Result.
type Status int

const (
	// StatusOK marks a complete result.
	StatusOK Status = iota

	// StatusDegraded marks a result produced despite a quality failure,
	// such as a missing boundary or an optimizer that ran out of iterations.
	// UV may be empty (no boundary) or a best-effort layout (non-convergence).
	StatusDegraded

	// StatusFailed marks a result that must not be used.
	StatusFailed
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDegraded:
		return "degraded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the outcome of one parameterization.
type Result struct {
	// UV has one coordinate per mesh vertex; vertices outside the
	// parameterized region stay at the origin. Empty when unusable.
	UV []r2.Vec

	// Distortion is the area distortion of UV rescaled to the surface
	// area (metrics.ScaledDistortion); +Inf when UV is empty.
	Distortion float64

	// Stretch holds the per-face edge stretch of UV.
	Stretch []float64

	Status Status

	// Reason explains a non-OK Status.
	Reason error
}

// Unusable returns the empty, infinitely distorted result tagged
// StatusDegraded with the given reason.
func Unusable(reason error) Result {
	return Result{
		Distortion: math.Inf(1),
		Status:     StatusDegraded,
		Reason:     reason,
	}
}

// Usable reports whether r carries a finite UV layout that may be consumed.
func (r Result) Usable() bool {
	return r.Status != StatusFailed && len(r.UV) > 0 && Finite(r.UV)
}

// Evaluate wraps coords in an OK Result with its metrics filled in.
func Evaluate(m *mesh.Mesh, coords []r2.Vec) (Result, error) {
	d, err := metrics.ScaledDistortion(m, coords)
	if err != nil {
		return Result{}, err
	}
	st, err := metrics.Stretch(m, coords)
	if err != nil {
		return Result{}, err
	}
	return Result{UV: coords, Distortion: d, Stretch: st, Status: StatusOK}, nil
}

// Finite reports whether every coordinate of uv is finite.
func Finite(uv []r2.Vec) bool {
	for _, p := range uv {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}
