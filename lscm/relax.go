// SPDX-License-Identifier: MIT

package lscm

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvkit/bfs"
	"github.com/katalvlaran/uvkit/ddg"
	"github.com/katalvlaran/uvkit/mesh"
	"github.com/katalvlaran/uvkit/sparse"
	"github.com/katalvlaran/uvkit/uvlog"
)

// cotEps is the |cross| below which a corner cotangent is treated as zero;
// it matches the weights of ddg.CotanLaplacian.
const cotEps = 1e-12

// rot2 is a 2×2 rotation stored row-major.
type rot2 [4]float64

func (r rot2) apply(p r2.Vec) r2.Vec {
	return r2.Vec{X: r[0]*p.X + r[1]*p.Y, Y: r[2]*p.X + r[3]*p.Y}
}

// arapFace is the rest state of one triangle: its corners in an isometric
// frame of its own plane and the half-cotangent weight of the edge
// opposite each corner.
type arapFace struct {
	rest [3]r2.Vec
	w    [3]float64
}

// Relax lowers the isometric distortion of coords with local/global
// as-rigid-as-possible rounds and returns the relaxed layout in the scale
// of the surface. coords is not modified.
//
// Implementation:
//   - Stage 1: pin the first vertex of every connected piece (and every
//     vertex no face uses) at its current position.
//   - Stage 2: factorize the reduced ddg.CotanLaplacian once with
//     sparse.Factorize.
//   - Stage 3: per round, fit the closest rotation of every face with a
//     2×2 SVD, then solve for both UV axes with the prepared factor.
//
// WithRelax sets the number of rounds (DefaultRelaxIterations when
// absent) and WithSolver configures the factorization. WithBoundary and
// WithNormalize are ignored.
//
// Errors:
//   - ErrOptionViolation (mesh.ErrInvalidParameter).
//   - mesh.ErrDegenerateMesh, mesh.ErrOutOfRange for bad input or a
//     coordinate count that differs from the vertex count.
//   - mesh.ErrSolverFailure when the reduced system is singular.
//   - the context error when ctx is cancelled between rounds.
func Relax(ctx context.Context, m *mesh.Mesh, coords []r2.Vec, opts ...Option) ([]r2.Vec, error) {
	o, err := gatherOptions(append([]Option{WithRelax(DefaultRelaxIterations)}, opts...))
	if err != nil {
		return nil, err
	}
	return relax(ctx, m, coords, o)
}

func relax(ctx context.Context, m *mesh.Mesh, coords []r2.Vec, o Options) ([]r2.Vec, error) {
	topo, err := mesh.NewTopology(m)
	if err != nil {
		return nil, fmt.Errorf("lscm: relax: %w", err)
	}
	n := len(m.Vertices)
	if len(coords) != n {
		return nil, fmt.Errorf("lscm: relax: %d coordinates for %d vertices: %w", len(coords), n, mesh.ErrOutOfRange)
	}
	out := append([]r2.Vec(nil), coords...)
	if o.Relax == 0 || len(m.Faces) == 0 {
		return out, nil
	}

	used := make([]bool, n)
	for _, face := range m.Faces {
		used[face[0]], used[face[1]], used[face[2]] = true, true, true
	}
	comps, err := bfs.Components(n, func(v int) []int { return topo.Adjacency[v] }, func(v int) bool { return used[v] })
	if err != nil {
		return nil, fmt.Errorf("lscm: relax: %w", err)
	}
	fixed := make([]bool, n)
	for v := range fixed {
		fixed[v] = !used[v]
	}
	for _, comp := range comps {
		fixed[comp[0]] = true
	}
	col := make([]int, n)
	free := 0
	for v := range col {
		col[v] = -1
		if !fixed[v] {
			col[v] = free
			free++
		}
	}
	if free == 0 {
		return out, nil
	}

	lap, err := ddg.CotanLaplacian(m)
	if err != nil {
		return nil, fmt.Errorf("lscm: relax: %w", err)
	}
	tr := sparse.NewTriplets(free, free)
	tr.Reserve(lap.NNZ())
	// base holds the pull of pinned neighbors, identical in every round.
	baseU, baseV := make([]float64, free), make([]float64, free)
	lap.Do(func(i, j int, v float64) {
		if fixed[i] {
			return
		}
		if fixed[j] {
			baseU[col[i]] -= v * out[j].X
			baseV[col[i]] -= v * out[j].Y
			return
		}
		tr.Add(col[i], col[j], v)
	})
	sys, err := tr.CSR()
	if err != nil {
		return nil, fmt.Errorf("lscm: relax: %w", err)
	}
	fac, err := sparse.Factorize(ctx, sys, o.Solver...)
	if err != nil {
		return nil, fmt.Errorf("lscm: relax: %w", err)
	}

	faces := make([]arapFace, len(m.Faces))
	for f := range m.Faces {
		faces[f] = restFace(m, f)
	}
	rots := make([]rot2, len(m.Faces))
	bu, bv := make([]float64, free), make([]float64, free)
	for it := 0; it < o.Relax; it++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("lscm: relax: %w", err)
		}
		for f, face := range m.Faces {
			rots[f] = fitRotation(face, faces[f], out)
		}

		copy(bu, baseU)
		copy(bv, baseV)
		for f, face := range m.Faces {
			af := faces[f]
			for k := 0; k < 3; k++ {
				a, b := (k+1)%3, (k+2)%3
				d := r2.Scale(af.w[k], rots[f].apply(r2.Sub(af.rest[a], af.rest[b])))
				if i := face[a]; !fixed[i] {
					bu[col[i]] += d.X
					bv[col[i]] += d.Y
				}
				if j := face[b]; !fixed[j] {
					bu[col[j]] -= d.X
					bv[col[j]] -= d.Y
				}
			}
		}
		su, err := fac.Solve(bu)
		if err != nil {
			return nil, fmt.Errorf("lscm: relax: %w", err)
		}
		sv, err := fac.Solve(bv)
		if err != nil {
			return nil, fmt.Errorf("lscm: relax: %w", err)
		}
		for v := range out {
			if !fixed[v] {
				out[v] = r2.Vec{X: su[col[v]], Y: sv[col[v]]}
			}
		}
	}
	uvlog.Logger().Debug("lscm: relaxed", "vertices", n, "free", free, "pieces", len(comps), "rounds", o.Relax)
	return out, nil
}

// restFace lays face f out isometrically in its own plane. Degenerate
// faces collapse onto a line or a point and keep zero weights where
// ddg.CotanLaplacian does.
func restFace(m *mesh.Mesh, f int) arapFace {
	p := [3]r3.Vec{}
	p[0], p[1], p[2] = m.Corners(f)
	e1, e2 := r3.Sub(p[1], p[0]), r3.Sub(p[2], p[0])
	var xh, yh r3.Vec
	switch {
	case r3.Norm(e1) > 0:
		xh = r3.Unit(e1)
	case r3.Norm(e2) > 0:
		xh = r3.Unit(e2)
	}
	if c := r3.Cross(xh, e2); r3.Norm(c) > 0 {
		yh = r3.Unit(r3.Cross(c, xh))
	}

	var af arapFace
	for k := 0; k < 3; k++ {
		d := r3.Sub(p[k], p[0])
		af.rest[k] = r2.Vec{X: r3.Dot(d, xh), Y: r3.Dot(d, yh)}

		a, b := r3.Sub(p[(k+1)%3], p[k]), r3.Sub(p[(k+2)%3], p[k])
		if s := r3.Norm(r3.Cross(a, b)); s >= cotEps {
			af.w[k] = 0.5 * r3.Dot(a, b) / s
		}
	}
	return af
}

// fitRotation returns the rotation closest to the map from the rest
// triangle to its current UV image, the polar factor of
// S = Σ w·(u_a - u_b)(x_a - x_b)ᵀ. Reflections are turned into the nearest
// rotation by flipping the weakest singular direction.
func fitRotation(face [3]int, af arapFace, coords []r2.Vec) rot2 {
	var s [4]float64
	for k := 0; k < 3; k++ {
		a, b := (k+1)%3, (k+2)%3
		e := r2.Sub(coords[face[a]], coords[face[b]])
		d := r2.Sub(af.rest[a], af.rest[b])
		w := af.w[k]
		s[0] += w * e.X * d.X
		s[1] += w * e.X * d.Y
		s[2] += w * e.Y * d.X
		s[3] += w * e.Y * d.Y
	}

	var svd mat.SVD
	if !svd.Factorize(mat.NewDense(2, 2, s[:]), mat.SVDFull) {
		return rot2{1, 0, 0, 1}
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	if mat.Det(&u)*mat.Det(&v) < 0 {
		u.Set(0, 1, -u.At(0, 1))
		u.Set(1, 1, -u.At(1, 1))
	}
	var r mat.Dense
	r.Mul(&u, v.T())
	return rot2{r.At(0, 0), r.At(0, 1), r.At(1, 0), r.At(1, 1)}
}
