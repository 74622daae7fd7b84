// SPDX-License-Identifier: MIT

package lscm

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvkit/mesh"
	"github.com/katalvlaran/uvkit/segment"
	"github.com/katalvlaran/uvkit/sparse"
	"github.com/katalvlaran/uvkit/uv"
	"github.com/katalvlaran/uvkit/uvlog"
)

// anchors are the fixed positions of the two pinned vertices.
var anchors = [2]r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}}

// Unwrap flattens m with a least-squares conformal map.
//
// Implementation:
//   - Stage 1: pick the pins from WithBoundary or the longest boundary loop.
//   - Stage 2: assemble the 2F×2n conformal system, moving pinned columns
//     (and vertices used by no face) to the right-hand side.
//   - Stage 3: solve AᵀA·x = Aᵀb with sparse.Factorize under ctx.
//   - Stage 4: run WithRelax rounds of Relax, if any.
//   - Stage 5: normalize each axis into [0,1] unless WithNormalize(false),
//     then evaluate the metrics.
//
// Errors:
//   - ErrOptionViolation, ErrDegeneratePins (mesh.ErrInvalidParameter).
//   - mesh.ErrDegenerateMesh, mesh.ErrOutOfRange for bad input.
//   - mesh.ErrSolverFailure when the system is singular, for instance on
//     a mesh made of several disconnected pieces.
//
// A mesh without boundary returns uv.Unusable(mesh.ErrNoBoundaryFound)
// and a nil error.
func Unwrap(ctx context.Context, m *mesh.Mesh, opts ...Option) (uv.Result, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return uv.Result{}, err
	}
	topo, err := mesh.NewTopology(m)
	if err != nil {
		return uv.Result{}, fmt.Errorf("lscm: %w", err)
	}
	pins, err := choosePins(m, topo, o.Boundary)
	if errors.Is(err, mesh.ErrNoBoundaryFound) {
		uvlog.Logger().Warn("lscm: mesh has no boundary", "vertices", len(m.Vertices), "faces", len(m.Faces))
		return uv.Unusable(err), nil
	}
	if err != nil {
		return uv.Result{}, err
	}

	coords, err := solve(ctx, m, pins, o.Solver)
	if err != nil {
		return uv.Result{}, err
	}
	if o.Relax > 0 {
		if coords, err = relax(ctx, m, coords, o); err != nil {
			return uv.Result{}, err
		}
	}
	if o.Normalize {
		coords = uv.Normalize(coords)
	}
	res, err := uv.Evaluate(m, coords)
	if err != nil {
		return uv.Result{}, err
	}
	uvlog.Logger().Debug("lscm: unwrapped", "vertices", len(m.Vertices), "pins", pins, "distortion", res.Distortion)
	return res, nil
}

// choosePins returns the first and the middle vertex of the boundary.
func choosePins(m *mesh.Mesh, topo *mesh.Topology, boundary []int) ([2]int, error) {
	loop := boundary
	if len(loop) == 0 {
		var err error
		if loop, err = topo.LongestBoundaryLoop(); err != nil {
			return [2]int{}, fmt.Errorf("lscm: %w", err)
		}
	}
	for _, v := range loop {
		if err := m.CheckVertex(v); err != nil {
			return [2]int{}, fmt.Errorf("lscm: boundary: %w", err)
		}
	}
	pins := [2]int{loop[0], loop[len(loop)/2]}
	if pins[0] == pins[1] {
		return pins, fmt.Errorf("%w: vertex %d", ErrDegeneratePins, pins[0])
	}
	return pins, nil
}

// localFrame returns the corners of face f in an orthonormal frame of its
// own plane, with corner 0 at the origin and corner 1 on the +x axis, and
// twice the face area. ok is false for degenerate faces.
func localFrame(m *mesh.Mesh, f int) (x, y [3]float64, area2 float64, ok bool) {
	p0, p1, p2 := m.Corners(f)
	e1, e2 := r3.Sub(p1, p0), r3.Sub(p2, p0)
	n := r3.Cross(e1, e2)
	area2 = r3.Norm(n)
	l1 := r3.Norm(e1)
	if area2 <= 2*mesh.DegenerateArea || l1 == 0 {
		return x, y, 0, false
	}
	xh := r3.Scale(1/l1, e1)
	yh := r3.Unit(r3.Cross(n, e1))
	x = [3]float64{0, l1, r3.Dot(e2, xh)}
	y = [3]float64{0, 0, r3.Dot(e2, yh)}
	return x, y, area2, true
}

// solve assembles and solves the pinned conformal system and returns the
// raw (unnormalized) layout.
func solve(ctx context.Context, m *mesh.Mesh, pins [2]int, solverOpts []sparse.Option) ([]r2.Vec, error) {
	n := len(m.Vertices)

	// fixed[v] is set for pinned vertices and vertices no usable face touches.
	fixed := make([]bool, n)
	pos := make([]r2.Vec, n)
	used := make([]bool, n)
	for f, face := range m.Faces {
		if _, _, _, ok := localFrame(m, f); ok {
			used[face[0]], used[face[1]], used[face[2]] = true, true, true
		}
	}
	for v := range fixed {
		fixed[v] = !used[v]
	}
	for k, p := range pins {
		fixed[p] = true
		pos[p] = anchors[k]
	}

	// Unknown index of u_v is col[v], of v_v is col[v]+1.
	col := make([]int, n)
	free := 0
	for v := range col {
		col[v] = -1
		if !fixed[v] {
			col[v] = free
			free += 2
		}
	}
	if free == 0 {
		return pos, nil
	}

	rows := 2 * len(m.Faces)
	tr := sparse.NewTriplets(rows, free)
	tr.Reserve(12 * len(m.Faces))
	rhs := make([]float64, rows)
	put := func(row, v, axis int, c float64) {
		if fixed[v] {
			val := pos[v].X
			if axis == 1 {
				val = pos[v].Y
			}
			rhs[row] -= c * val
			return
		}
		tr.Add(row, col[v]+axis, c)
	}
	for f, face := range m.Faces {
		x, y, area2, ok := localFrame(m, f)
		if !ok {
			continue
		}
		s := 1 / math.Sqrt(area2)
		re, im := 2*f, 2*f+1
		for j := 0; j < 3; j++ {
			a := (x[(j+2)%3] - x[(j+1)%3]) * s
			b := (y[(j+2)%3] - y[(j+1)%3]) * s
			v := face[j]
			put(re, v, 0, a)
			put(re, v, 1, -b)
			put(im, v, 0, b)
			put(im, v, 1, a)
		}
	}

	a, err := tr.CSR()
	if err != nil {
		return nil, fmt.Errorf("lscm: %w", err)
	}
	atb, err := a.Transpose().MulVec(rhs)
	if err != nil {
		return nil, fmt.Errorf("lscm: %w", err)
	}
	uvlog.Logger().Debug("lscm: normal equations", "unknowns", free, "rows", rows, "nnz", a.NNZ())
	fac, err := sparse.Factorize(ctx, a.Gram(), solverOpts...)
	if err != nil {
		return nil, fmt.Errorf("lscm: %w", err)
	}
	sol, err := fac.Solve(atb)
	if err != nil {
		return nil, fmt.Errorf("lscm: %w", err)
	}
	for v := range pos {
		if !fixed[v] {
			pos[v] = r2.Vec{X: sol[col[v]], Y: sol[col[v]+1]}
		}
	}
	return pos, nil
}

// UnwrapIsland flattens the faces of one island and scatters the result
// into a UV array sized to the full mesh; vertices outside the island stay
// at the origin. Boundary vertices given with WithBoundary use the
// numbering of m.
//
// The two per-element fields use different index spaces: UV is indexed by
// the vertices of m, while Stretch[i] belongs to face island.Faces[i].
// Distortion covers the island faces only.
func UnwrapIsland(ctx context.Context, m *mesh.Mesh, island segment.UVIsland, opts ...Option) (uv.Result, error) {
	if err := m.Validate(); err != nil {
		return uv.Result{}, fmt.Errorf("lscm: %w", err)
	}
	sub, toGlobal, err := m.SubMesh(island.Faces)
	if err != nil {
		return uv.Result{}, fmt.Errorf("lscm: island: %w", err)
	}
	o, err := gatherOptions(opts)
	if err != nil {
		return uv.Result{}, err
	}
	if len(o.Boundary) > 0 {
		toLocal := make(map[int]int, len(toGlobal))
		for l, g := range toGlobal {
			toLocal[g] = l
		}
		local := make([]int, len(o.Boundary))
		for i, g := range o.Boundary {
			l, ok := toLocal[g]
			if !ok {
				return uv.Result{}, fmt.Errorf("lscm: boundary vertex %d not in island: %w", g, mesh.ErrOutOfRange)
			}
			local[i] = l
		}
		opts = append(opts, WithBoundary(local))
	}

	res, err := Unwrap(ctx, sub, opts...)
	if err != nil || !res.Usable() {
		return res, err
	}
	full := make([]r2.Vec, len(m.Vertices))
	for l, g := range toGlobal {
		full[g] = res.UV[l]
	}
	res.UV = full
	return res, nil
}
