// SPDX-License-Identifier: MIT

package abf_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvkit/abf"
	"github.com/katalvlaran/uvkit/mesh"
	"github.com/katalvlaran/uvkit/meshgen"
	"github.com/katalvlaran/uvkit/metrics"
	"github.com/katalvlaran/uvkit/sparse"
	"github.com/katalvlaran/uvkit/uv"
)

func flatJittered(t *testing.T) *mesh.Mesh {
	t.Helper()
	g, err := meshgen.Grid(4, 4, 1, 1)
	require.NoError(t, err)
	m, err := meshgen.Jitter(g, 0.04, meshgen.WithSeed(5))
	require.NoError(t, err)
	for i := range m.Vertices {
		m.Vertices[i].Z = 0
	}
	return m
}

func newTopology(t *testing.T, m *mesh.Mesh) *mesh.Topology {
	t.Helper()
	topo, err := mesh.NewTopology(m)
	require.NoError(t, err)
	return topo
}

func TestReconstruct_NaturalAnglesAreIsometric(t *testing.T) {
	m := flatJittered(t)
	topo := newTopology(t, m)
	coords, err := abf.Reconstruct(topo, abf.NaturalAngles(m))
	require.NoError(t, err)

	st, err := metrics.Stretch(m, coords)
	require.NoError(t, err)
	for f, s := range st {
		assert.InDelta(t, 1, s, 1e-9, "face %d", f)
	}
	d, err := metrics.Distortion(m, coords)
	require.NoError(t, err)
	assert.InDelta(t, 0, d, 1e-9)

	// Seed face sits at the origin along +x.
	first := m.Faces[0]
	assert.Zero(t, coords[first[0]])
	assert.InDelta(t, 0, coords[first[1]].Y, 1e-15)
	assert.Greater(t, coords[first[1]].X, 0.0)
}

func TestReconstruct_ComponentsSideBySide(t *testing.T) {
	m := &mesh.Mesh{
		Vertices: []r3.Vec{{}, {X: 1}, {Y: 1}, {X: 5}, {X: 6}, {X: 5, Y: 1}},
		Faces:    [][3]int{{0, 1, 2}, {3, 4, 5}},
	}
	topo := newTopology(t, m)
	coords, err := abf.Reconstruct(topo, abf.NaturalAngles(m))
	require.NoError(t, err)
	left := math.Max(coords[0].X, math.Max(coords[1].X, coords[2].X))
	right := math.Min(coords[3].X, math.Min(coords[4].X, coords[5].X))
	assert.Greater(t, right, left)

	st, err := metrics.Stretch(m, coords)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1}, st, 1e-9)
}

func TestReconstruct_Errors(t *testing.T) {
	m := meshgen.UnitSquare()
	topo := newTopology(t, m)
	_, err := abf.Reconstruct(topo, make([]float64, 5))
	require.ErrorIs(t, err, abf.ErrAngleCount)
	assert.ErrorIs(t, err, mesh.ErrInvalidParameter)

	_, err = abf.Reconstruct(nil, nil)
	assert.ErrorIs(t, err, mesh.ErrInvalidParameter)
}

func TestOptimize_FlatMeshIsAlreadyFeasible(t *testing.T) {
	m := flatJittered(t)
	a, err := abf.Optimize(context.Background(), newTopology(t, m))
	require.NoError(t, err)
	assert.True(t, a.Converged)
	assert.Zero(t, a.Iterations)
	assert.Equal(t, a.Natural, a.Values)
	assert.Zero(t, a.Energy)
	assert.Less(t, a.MaxViolation, 1e-9)
}

func TestOptimize_CurvedPatch(t *testing.T) {
	m, err := meshgen.Hemisphere(8, 3, 1)
	require.NoError(t, err)
	topo := newTopology(t, m)
	onBoundary := topo.BoundaryVertices()

	for _, method := range []sparse.Method{sparse.MethodDense, sparse.MethodCG} {
		t.Run(method.String(), func(t *testing.T) {
			a, err := abf.Optimize(context.Background(), topo, abf.WithSolver(sparse.WithMethod(method)))
			require.NoError(t, err)
			require.True(t, a.Converged)
			assert.Greater(t, a.Iterations, 1)
			assert.Less(t, a.Iterations, 30)
			assert.Less(t, a.MaxViolation, abf.DefaultTolerance)
			assert.Greater(t, a.Energy, 0.0)
			assert.GreaterOrEqual(t, a.Penalty, abf.DefaultPenalty)

			sums := make([]float64, len(m.Vertices))
			for f, face := range m.Faces {
				var fs float64
				for j, v := range face {
					x := a.Values[3*f+j]
					assert.Greater(t, x, abf.AngleEpsilon/2)
					assert.Less(t, x, math.Pi-abf.AngleEpsilon/2)
					fs += x
					sums[v] += x
				}
				assert.InDelta(t, math.Pi, fs, 1e-5, "face %d", f)
			}
			for v, sum := range sums {
				if !onBoundary[v] {
					assert.InDelta(t, 2*math.Pi, sum, 1e-5, "vertex %d", v)
				}
			}
		})
	}
}

func TestOptimize_LooseToleranceStopsBeforeFirstStep(t *testing.T) {
	m := meshgen.Triangle(r3.Vec{}, r3.Vec{X: 2}, r3.Vec{X: 0.5, Y: 1})
	a, err := abf.Optimize(context.Background(), newTopology(t, m), abf.WithTolerance(10))
	require.NoError(t, err)
	assert.True(t, a.Converged)
	assert.Zero(t, a.Iterations)
	assert.Equal(t, a.Natural, a.Values)
	assert.Zero(t, a.Energy)
	assert.InDelta(t, math.Pi, a.Natural[0]+a.Natural[1]+a.Natural[2], 1e-12)
}

func TestOptimize_ClosedMeshIsInfeasible(t *testing.T) {
	m, err := meshgen.Platonic(meshgen.Octahedron)
	require.NoError(t, err)
	a, err := abf.Optimize(context.Background(), newTopology(t, m))
	require.NoError(t, err)
	assert.False(t, a.Converged)
	assert.Greater(t, a.MaxViolation, 0.1)
	assert.Less(t, a.Iterations, abf.DefaultMaxIterations)
	for _, v := range a.Values {
		assert.False(t, math.IsNaN(v))
	}
}

func TestOptimize_Errors(t *testing.T) {
	topo := newTopology(t, meshgen.UnitSquare())
	ctx := context.Background()
	for name, opt := range map[string]abf.Option{
		"iterations": abf.WithMaxIterations(0),
		"tolerance":  abf.WithTolerance(math.NaN()),
		"penalty":    abf.WithPenalty(-1),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := abf.Optimize(ctx, topo, opt)
			require.ErrorIs(t, err, abf.ErrOptionViolation)
			assert.ErrorIs(t, err, mesh.ErrInvalidParameter)
		})
	}

	_, err := abf.Optimize(ctx, nil)
	assert.ErrorIs(t, err, mesh.ErrInvalidParameter)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = abf.Optimize(cancelled, topo)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnwrap_FlatGrid(t *testing.T) {
	m := flatJittered(t)
	res, err := abf.Unwrap(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, uv.StatusOK, res.Status, "reason: %v", res.Reason)
	require.True(t, res.Usable())
	require.Len(t, res.UV, len(m.Vertices))
	require.Len(t, res.Stretch, len(m.Faces))
	for _, p := range res.UV {
		assert.True(t, p.X >= 0 && p.X <= 1 && p.Y >= 0 && p.Y <= 1)
	}
	for _, s := range res.Stretch {
		assert.False(t, math.IsInf(s, 0))
		assert.GreaterOrEqual(t, s, 1.0)
	}
	assert.False(t, math.IsInf(res.Distortion, 0))
}

func TestUnwrap_SurfaceScale(t *testing.T) {
	m, err := meshgen.Hemisphere(8, 3, 1)
	require.NoError(t, err)
	res, err := abf.Unwrap(context.Background(), m, abf.WithNormalize(false))
	require.NoError(t, err)
	require.Equal(t, uv.StatusOK, res.Status, "reason: %v", res.Reason)
	require.True(t, res.Usable())
	for _, s := range res.Stretch {
		assert.GreaterOrEqual(t, s, 1.0)
		assert.False(t, math.IsInf(s, 0))
	}

	// The seed edge keeps its 3D length.
	f := m.Faces[0]
	want := r3.Norm(r3.Sub(m.Vertices[f[1]], m.Vertices[f[0]]))
	got := r2.Norm(r2.Sub(res.UV[f[1]], res.UV[f[0]]))
	assert.InDelta(t, want, got, 1e-12)
}

func TestUnwrap_NonConvergenceIsDegraded(t *testing.T) {
	m, err := meshgen.Hemisphere(8, 3, 1)
	require.NoError(t, err)
	res, err := abf.Unwrap(context.Background(), m, abf.WithMaxIterations(1))
	require.NoError(t, err)
	assert.Equal(t, uv.StatusDegraded, res.Status)
	assert.ErrorIs(t, res.Reason, mesh.ErrNonConvergence)
	assert.Len(t, res.UV, len(m.Vertices), "best-effort layout is kept")
	assert.True(t, res.Usable())
}

func TestUnwrap_ClosedMeshHasNoBoundary(t *testing.T) {
	m, err := meshgen.Platonic(meshgen.Tetrahedron)
	require.NoError(t, err)
	res, err := abf.Unwrap(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, uv.StatusDegraded, res.Status)
	assert.ErrorIs(t, res.Reason, mesh.ErrNoBoundaryFound)
	assert.Empty(t, res.UV)
	assert.True(t, math.IsInf(res.Distortion, 1))
	assert.False(t, res.Usable())
}

func TestUnwrap_Errors(t *testing.T) {
	_, err := abf.Unwrap(context.Background(), &mesh.Mesh{})
	assert.ErrorIs(t, err, mesh.ErrDegenerateMesh)

	_, err = abf.Unwrap(context.Background(), meshgen.UnitSquare(), abf.WithPenalty(0))
	assert.ErrorIs(t, err, mesh.ErrInvalidParameter)
}
