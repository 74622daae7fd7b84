// SPDX-License-Identifier: MIT

package atlas

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/uvkit/abf"
	"github.com/katalvlaran/uvkit/lscm"
	"github.com/katalvlaran/uvkit/mesh"
	"github.com/katalvlaran/uvkit/segment"
	"github.com/katalvlaran/uvkit/uv"
	"github.com/katalvlaran/uvkit/uvlog"
)

// UnwrapIslands flattens every island with o.Method on at most o.Workers
// goroutines (zero means GOMAXPROCS) and returns one result per island,
// in island order. Layouts keep their own scale and are relaxed with
// o.Relax rounds of lscm.Relax.
//
// Each result mixes two index spaces: UV is sized to m and only the
// vertices of its island are set, while Stretch[k] belongs to face
// islands[i].Faces[k].
//
// The first structural error cancels the remaining work and is returned.
// Quality failures are reported per island through uv.Result.Status.
func UnwrapIslands(ctx context.Context, m *mesh.Mesh, islands []segment.UVIsland, o Options) ([]uv.Result, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("atlas: %w", err)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	out := make([]uv.Result, len(islands))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(o.Workers))
	for i := range islands {
		g.Go(func() error {
			res, err := unwrapIsland(gctx, m, islands[i], o)
			if err != nil {
				return fmt.Errorf("atlas: island %d: %w", i, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func unwrapIsland(ctx context.Context, m *mesh.Mesh, island segment.UVIsland, o Options) (uv.Result, error) {
	if err := ctx.Err(); err != nil {
		return uv.Result{}, err
	}
	sub, toGlobal, err := m.SubMesh(island.Faces)
	if err != nil {
		return uv.Result{}, fmt.Errorf("island: %w", err)
	}
	res, err := flatten(ctx, sub, o)
	if err != nil || !res.Usable() {
		return res, err
	}
	if res, err = relaxChart(ctx, sub, res, o); err != nil {
		return uv.Result{}, err
	}

	full := make([]r2.Vec, len(m.Vertices))
	for l, g := range toGlobal {
		full[g] = res.UV[l]
	}
	res.UV = full
	return res, nil
}

// flatten runs o.Method on one island sub-mesh. Both methods return the
// layout unnormalized so the packer can rescale it uniformly.
func flatten(ctx context.Context, sub *mesh.Mesh, o Options) (uv.Result, error) {
	lscmOpts := append(append([]lscm.Option{lscm.WithSolver(o.Solver...)}, o.LSCM...), lscm.WithNormalize(false))
	abfOpts := append(append([]abf.Option{abf.WithSolver(o.Solver...)}, o.ABF...), abf.WithNormalize(false))

	switch o.Method {
	case MethodLSCM:
		return lscm.Unwrap(ctx, sub, lscmOpts...)
	case MethodABF:
		return abf.Unwrap(ctx, sub, abfOpts...)
	}

	res, err := lscm.Unwrap(ctx, sub, lscmOpts...)
	if err == nil && res.Status == uv.StatusOK {
		return res, nil
	}
	if ctx.Err() != nil {
		return uv.Result{}, ctx.Err()
	}
	reason := err
	if reason == nil {
		reason = res.Reason
	}
	uvlog.Logger().Debug("atlas: lscm fallback to abf", "faces", len(sub.Faces), "reason", reason)
	return abf.Unwrap(ctx, sub, abfOpts...)
}

// relaxChart applies o.Relax rounds to a usable layout and re-evaluates
// it, keeping the status of the flattening. A singular relaxation system
// leaves the layout as it was.
func relaxChart(ctx context.Context, sub *mesh.Mesh, res uv.Result, o Options) (uv.Result, error) {
	if o.Relax == 0 {
		return res, nil
	}
	coords, err := lscm.Relax(ctx, sub, res.UV, lscm.WithRelax(o.Relax), lscm.WithSolver(o.Solver...))
	if errors.Is(err, mesh.ErrSolverFailure) {
		uvlog.Logger().Warn("atlas: relaxation skipped", "faces", len(sub.Faces), "err", err)
		return res, nil
	}
	if err != nil {
		return uv.Result{}, err
	}
	relaxed, err := uv.Evaluate(sub, coords)
	if err != nil {
		return uv.Result{}, err
	}
	relaxed.Status, relaxed.Reason = res.Status, res.Reason
	return relaxed, nil
}
