// SPDX-License-Identifier: MIT

package lscm_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvkit/lscm"
	"github.com/katalvlaran/uvkit/mesh"
	"github.com/katalvlaran/uvkit/meshgen"
	"github.com/katalvlaran/uvkit/metrics"
	"github.com/katalvlaran/uvkit/segment"
	"github.com/katalvlaran/uvkit/sparse"
	"github.com/katalvlaran/uvkit/uv"
)

// assertSimilar checks that uv is a uniformly scaled copy of the 3D layout.
func assertSimilar(t *testing.T, m *mesh.Mesh, coords []r2.Vec) {
	t.Helper()
	ratio := r2.Norm(r2.Sub(coords[1], coords[0])) / r3.Norm(r3.Sub(m.Vertices[1], m.Vertices[0]))
	for i := range coords {
		for j := i + 1; j < len(coords); j++ {
			d3 := r3.Norm(r3.Sub(m.Vertices[i], m.Vertices[j]))
			d2 := r2.Norm(r2.Sub(coords[i], coords[j]))
			assert.InDelta(t, ratio*d3, d2, 1e-8, "pair %d-%d", i, j)
		}
	}
}

func TestUnwrap_UnitSquare(t *testing.T) {
	m := meshgen.UnitSquare()
	res, err := lscm.Unwrap(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, uv.StatusOK, res.Status)
	require.True(t, res.Usable())
	require.Len(t, res.UV, 4)

	// Pins are loop[0] = 0 and loop[2] = 3: the square turns into a diamond.
	want := []r2.Vec{{X: 0, Y: 0.5}, {X: 0.5, Y: 0}, {X: 0.5, Y: 1}, {X: 1, Y: 0.5}}
	for i := range want {
		assert.InDelta(t, want[i].X, res.UV[i].X, 1e-9)
		assert.InDelta(t, want[i].Y, res.UV[i].Y, 1e-9)
	}
	assertSimilar(t, m, res.UV)
	assert.InDelta(t, 0, res.Distortion, 1e-9)
	for _, s := range res.Stretch {
		assert.InDelta(t, 1, s, 1e-9)
	}
}

func TestUnwrap_ClosedMeshIsDegraded(t *testing.T) {
	m, err := meshgen.Platonic(meshgen.Tetrahedron)
	require.NoError(t, err)
	res, err := lscm.Unwrap(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, uv.StatusDegraded, res.Status)
	assert.ErrorIs(t, res.Reason, mesh.ErrNoBoundaryFound)
	assert.Empty(t, res.UV)
	assert.True(t, math.IsInf(res.Distortion, 1))
	assert.False(t, res.Usable())
}

func TestUnwrap_FlatGridIsConformal(t *testing.T) {
	m, err := meshgen.Grid(4, 4, 1, 1)
	require.NoError(t, err)
	res, err := lscm.Unwrap(context.Background(), m)
	require.NoError(t, err)
	require.True(t, res.Usable())
	assertSimilar(t, m, res.UV)
	assert.InDelta(t, 0, res.Distortion, 1e-8)
	for _, s := range res.Stretch {
		assert.InDelta(t, 1, s, 1e-8)
	}
}

func TestUnwrap_CurvedSurface(t *testing.T) {
	m, err := meshgen.Hemisphere(12, 4, 1)
	require.NoError(t, err)
	dense, err := lscm.Unwrap(context.Background(), m)
	require.NoError(t, err)
	require.True(t, dense.Usable())
	for _, p := range dense.UV {
		assert.True(t, p.X >= -1e-12 && p.X <= 1+1e-12 && p.Y >= -1e-12 && p.Y <= 1+1e-12)
	}
	for _, s := range dense.Stretch {
		assert.GreaterOrEqual(t, s, 1.0)
	}

	cg, err := lscm.Unwrap(context.Background(), m, lscm.WithSolver(sparse.WithMethod(sparse.MethodCG)))
	require.NoError(t, err)
	for i := range dense.UV {
		assert.InDelta(t, dense.UV[i].X, cg.UV[i].X, 1e-6)
		assert.InDelta(t, dense.UV[i].Y, cg.UV[i].Y, 1e-6)
	}
}

func TestUnwrap_Errors(t *testing.T) {
	m := meshgen.UnitSquare()
	ctx := context.Background()

	_, err := lscm.Unwrap(ctx, m, lscm.WithBoundary([]int{0, 9}))
	assert.ErrorIs(t, err, mesh.ErrOutOfRange)

	_, err = lscm.Unwrap(ctx, m, lscm.WithBoundary([]int{1}))
	assert.ErrorIs(t, err, lscm.ErrOptionViolation)

	_, err = lscm.Unwrap(ctx, m, lscm.WithBoundary([]int{3, 3}))
	assert.ErrorIs(t, err, lscm.ErrDegeneratePins)
	assert.ErrorIs(t, err, mesh.ErrInvalidParameter)

	_, err = lscm.Unwrap(ctx, &mesh.Mesh{})
	assert.ErrorIs(t, err, mesh.ErrDegenerateMesh)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = lscm.Unwrap(cancelled, m)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnwrap_ExplicitBoundary(t *testing.T) {
	m := meshgen.UnitSquare()
	res, err := lscm.Unwrap(context.Background(), m, lscm.WithBoundary([]int{0, 1}))
	require.NoError(t, err)
	require.True(t, res.Usable())
	// Pins 0 and 1 keep the square axis-aligned.
	assert.InDelta(t, 0, res.UV[0].X, 1e-9)
	assert.InDelta(t, 0, res.UV[0].Y, 1e-9)
	assert.InDelta(t, 1, res.UV[3].X, 1e-9)
	assert.InDelta(t, 1, res.UV[3].Y, 1e-9)
}

func TestUnwrapIsland(t *testing.T) {
	m, err := meshgen.Grid(2, 1, 2, 1)
	require.NoError(t, err)
	island := segment.NewIsland(m, []int{2, 3}, nil)

	res, err := lscm.UnwrapIsland(context.Background(), m, island)
	require.NoError(t, err)
	require.True(t, res.Usable())
	require.Len(t, res.UV, len(m.Vertices))
	assert.Len(t, res.Stretch, 2)
	assert.Equal(t, r2.Vec{}, res.UV[0])
	assert.Equal(t, r2.Vec{}, res.UV[3])
	lo, hi := uv.Bounds([]r2.Vec{res.UV[1], res.UV[2], res.UV[4], res.UV[5]})
	assert.InDelta(t, 0, lo.X, 1e-9)
	assert.InDelta(t, 1, hi.Y, 1e-9)

	_, err = lscm.UnwrapIsland(context.Background(), m, island, lscm.WithBoundary([]int{0, 1}))
	assert.ErrorIs(t, err, mesh.ErrOutOfRange)

	_, err = lscm.UnwrapIsland(context.Background(), m, segment.UVIsland{})
	assert.ErrorIs(t, err, mesh.ErrDegenerateMesh)
}

func TestUnwrapIsland_StretchFollowsIslandFaces(t *testing.T) {
	m, err := meshgen.Hemisphere(8, 3, 1)
	require.NoError(t, err)
	faces := []int{2, 3, 12, 13, 14, 15}
	island := segment.NewIsland(m, faces, nil)

	res, err := lscm.UnwrapIsland(context.Background(), m, island)
	require.NoError(t, err)
	require.True(t, res.Usable())
	require.Len(t, res.UV, len(m.Vertices))
	require.Len(t, res.Stretch, len(island.Faces))

	full, err := metrics.Stretch(m, res.UV)
	require.NoError(t, err)
	for i, f := range island.Faces {
		assert.InDelta(t, full[f], res.Stretch[i], 1e-12, "island face %d", f)
	}
}

func TestUnwrap_RawLayoutKeepsPins(t *testing.T) {
	m := meshgen.UnitSquare()
	res, err := lscm.Unwrap(context.Background(), m, lscm.WithNormalize(false))
	require.NoError(t, err)
	require.True(t, res.Usable())
	assert.InDelta(t, 0, res.UV[0].X, 1e-12)
	assert.InDelta(t, 0, res.UV[0].Y, 1e-12)
	assert.InDelta(t, 1, res.UV[3].X, 1e-12)
	assert.InDelta(t, 0, res.UV[3].Y, 1e-12)
	assertSimilar(t, m, res.UV)
}

func TestUnwrap_WithRelaxKeepsSurfaceScale(t *testing.T) {
	m, err := meshgen.Hemisphere(12, 4, 1)
	require.NoError(t, err)
	res, err := lscm.Unwrap(context.Background(), m, lscm.WithNormalize(false), lscm.WithRelax(5))
	require.NoError(t, err)
	require.Equal(t, uv.StatusOK, res.Status, "reason: %v", res.Reason)

	var a2 float64
	for _, face := range m.Faces {
		e1 := r2.Sub(res.UV[face[1]], res.UV[face[0]])
		e2 := r2.Sub(res.UV[face[2]], res.UV[face[0]])
		a2 += 0.5 * r2.Cross(e1, e2)
	}
	var a3 float64
	for _, a := range m.FaceAreas() {
		a3 += a
	}
	assert.InDelta(t, 1, a2/a3, 0.2)
}

func TestRelax_SimilarityBecomesIsometry(t *testing.T) {
	m, err := meshgen.Grid(4, 3, 2, 1.5)
	require.NoError(t, err)
	c, s := 0.5*math.Cos(0.7), 0.5*math.Sin(0.7)
	start := make([]r2.Vec, len(m.Vertices))
	for i, p := range m.Vertices {
		start[i] = r2.Vec{X: c*p.X - s*p.Y + 3, Y: s*p.X + c*p.Y - 1}
	}

	out, err := lscm.Relax(context.Background(), m, start)
	require.NoError(t, err)
	require.Len(t, out, len(m.Vertices))
	assert.Equal(t, start[0], out[0], "first vertex is pinned")
	assert.NotEqual(t, start[1], out[1], "input is not modified in place")
	assertIsometric(t, m, out)
}

func TestRelax_CurvedPatch(t *testing.T) {
	m, err := meshgen.Hemisphere(12, 4, 1)
	require.NoError(t, err)
	// The top view squeezes the faces near the equator.
	start := make([]r2.Vec, len(m.Vertices))
	for i, p := range m.Vertices {
		start[i] = r2.Vec{X: p.X, Y: p.Y}
	}
	before := evaluate(t, m, start)

	for _, method := range []sparse.Method{sparse.MethodDense, sparse.MethodCG} {
		t.Run(method.String(), func(t *testing.T) {
			out, err := lscm.Relax(context.Background(), m, start, lscm.WithRelax(5), lscm.WithSolver(sparse.WithMethod(method)))
			require.NoError(t, err)
			after := evaluate(t, m, out)
			assert.Less(t, after.MaxStretch, before.MaxStretch/2)
			assert.Less(t, after.Distortion, before.Distortion/4)
			assert.Equal(t, r2.Vec{}, out[0])
		})
	}
}

func TestRelax_ZeroRoundsCopies(t *testing.T) {
	m := meshgen.UnitSquare()
	start := []r2.Vec{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 1}, {X: 2, Y: 1}}
	out, err := lscm.Relax(context.Background(), m, start, lscm.WithRelax(0))
	require.NoError(t, err)
	assert.Equal(t, start, out)
	out[0].X = 9
	assert.Zero(t, start[0].X)
}

func TestRelax_Errors(t *testing.T) {
	m := meshgen.UnitSquare()
	start := make([]r2.Vec, len(m.Vertices))
	ctx := context.Background()

	_, err := lscm.Relax(ctx, m, start[:2])
	assert.ErrorIs(t, err, mesh.ErrOutOfRange)

	_, err = lscm.Relax(ctx, m, start, lscm.WithRelax(-1))
	assert.ErrorIs(t, err, lscm.ErrOptionViolation)

	_, err = lscm.Relax(ctx, &mesh.Mesh{}, nil)
	assert.ErrorIs(t, err, mesh.ErrDegenerateMesh)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = lscm.Relax(cancelled, m, start)
	assert.ErrorIs(t, err, context.Canceled)
}

type quality struct {
	MaxStretch float64
	Distortion float64
}

func evaluate(t *testing.T, m *mesh.Mesh, coords []r2.Vec) quality {
	t.Helper()
	st, err := metrics.Stretch(m, coords)
	require.NoError(t, err)
	d, err := metrics.ScaledDistortion(m, coords)
	require.NoError(t, err)
	var q quality
	q.Distortion = d
	for _, s := range st {
		q.MaxStretch = math.Max(q.MaxStretch, s)
	}
	return q
}

// assertIsometric checks that every edge keeps its 3D length.
func assertIsometric(t *testing.T, m *mesh.Mesh, coords []r2.Vec) {
	t.Helper()
	for f, face := range m.Faces {
		for j := 0; j < 3; j++ {
			a, b := face[j], face[(j+1)%3]
			d3 := r3.Norm(r3.Sub(m.Vertices[b], m.Vertices[a]))
			d2 := r2.Norm(r2.Sub(coords[b], coords[a]))
			assert.InDelta(t, d3, d2, 1e-8, "face %d edge %d", f, j)
		}
	}
}
