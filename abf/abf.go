// SPDX-License-Identifier: MIT

package abf

import (
	"context"
	"fmt"

	"github.com/katalvlaran/uvkit/mesh"
	"github.com/katalvlaran/uvkit/uv"
	"github.com/katalvlaran/uvkit/uvlog"
)

// Unwrap flattens m by angle-based flattening: Optimize, Reconstruct,
// then uv.Normalize (unless WithNormalize(false)) and uv.Evaluate.
//
// A mesh without boundary cannot be flattened and returns
// uv.Unusable(mesh.ErrNoBoundaryFound) with a nil error. Angles that do
// not converge still yield a best-effort layout, tagged
// uv.StatusDegraded with a Reason wrapping mesh.ErrNonConvergence. A
// layout with non-finite coordinates is tagged uv.StatusFailed with a
// Reason wrapping mesh.ErrSolverFailure.
func Unwrap(ctx context.Context, m *mesh.Mesh, opts ...Option) (uv.Result, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return uv.Result{}, err
	}
	topo, err := mesh.NewTopology(m)
	if err != nil {
		return uv.Result{}, fmt.Errorf("abf: %w", err)
	}
	if len(topo.BoundaryEdges()) == 0 {
		uvlog.Logger().Warn("abf: mesh has no boundary", "vertices", len(m.Vertices), "faces", len(m.Faces))
		return uv.Unusable(fmt.Errorf("abf: %w", mesh.ErrNoBoundaryFound)), nil
	}
	angles, err := Optimize(ctx, topo, opts...)
	if err != nil {
		return uv.Result{}, err
	}
	coords, err := Reconstruct(topo, angles.Values)
	if err != nil {
		return uv.Result{}, err
	}
	if !uv.Finite(coords) {
		res := uv.Unusable(fmt.Errorf("abf: reconstruction produced non-finite coordinates: %w", mesh.ErrSolverFailure))
		res.Status = uv.StatusFailed
		uvlog.Logger().Warn("abf: non-finite layout", "faces", len(m.Faces))
		return res, nil
	}

	if o.Normalize {
		coords = uv.Normalize(coords)
	}
	res, err := uv.Evaluate(m, coords)
	if err != nil {
		return uv.Result{}, err
	}
	if !angles.Converged {
		res.Status = uv.StatusDegraded
		res.Reason = fmt.Errorf("abf: %d iterations, max violation %g: %w",
			angles.Iterations, angles.MaxViolation, mesh.ErrNonConvergence)
	}
	return res, nil
}
