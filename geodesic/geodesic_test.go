// SPDX-License-Identifier: MIT

package geodesic_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvkit/geodesic"
	"github.com/katalvlaran/uvkit/mesh"
	"github.com/katalvlaran/uvkit/meshgen"
	"github.com/katalvlaran/uvkit/sparse"
)

func rightTriangle() *mesh.Mesh {
	return meshgen.Triangle(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Y: 1})
}

func TestSingleTriangle(t *testing.T) {
	m := rightTriangle()
	s, err := geodesic.Prepare(context.Background(), m, 1)
	require.NoError(t, err)
	h := (2 + math.Sqrt2) / 3
	assert.InDelta(t, h*h, s.TimeStep(), 1e-12)
	assert.Same(t, m, s.Mesh())

	d, err := s.Distance([]int{0})
	require.NoError(t, err)
	require.Len(t, d, 3)
	assert.InDelta(t, 0, d[0], 1e-12)
	assert.Greater(t, d[1], 0.0)
	assert.Greater(t, d[2], 0.0)
	assert.InDelta(t, d[1], d[2], 1e-9, "symmetric about the diagonal")
	assert.Less(t, math.Abs(d[1]-1), 0.5)

	p, err := s.TracePath(d, 0, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, p.Vertices)
	assert.True(t, p.Reached)
	assert.Equal(t, d[1], p.Length)
	assert.InDelta(t, 1, p.PolylineLength, 1e-12)
	assert.Equal(t, []r3.Vec{m.Vertices[0], m.Vertices[1]}, p.Polyline)
}

func TestTimeStepFloor(t *testing.T) {
	s, err := geodesic.Prepare(context.Background(), rightTriangle(), 1e-12)
	require.NoError(t, err)
	assert.Equal(t, geodesic.MinTimeStep, s.TimeStep())
}

func TestFlatGridApproximatesEuclidean(t *testing.T) {
	m, err := meshgen.Grid(10, 10, 1, 1)
	require.NoError(t, err)
	s, err := geodesic.Prepare(context.Background(), m, 1)
	require.NoError(t, err)
	d, err := s.Distance([]int{0})
	require.NoError(t, err)
	assert.InDelta(t, 0, d[0], 1e-12)

	graph, err := geodesic.EdgeGraphDistance(s.Topology(), []int{0})
	require.NoError(t, err)
	for v, p := range m.Vertices {
		euclid := math.Hypot(p.X, p.Y)
		if euclid < 0.3 {
			continue
		}
		assert.InEpsilon(t, euclid, d[v], 0.25, "vertex %d", v)
		assert.LessOrEqual(t, euclid, graph[v]+1e-12, "vertex %d", v)
	}
}

func TestMultipleSources(t *testing.T) {
	m, err := meshgen.Grid(8, 2, 4, 1)
	require.NoError(t, err)
	s, err := geodesic.Prepare(context.Background(), m, 1)
	require.NoError(t, err)
	left, right := 0, 8
	d, err := s.Distance([]int{left, right, right})
	require.NoError(t, err)
	far := 0.0
	for _, x := range d {
		assert.GreaterOrEqual(t, x, 0.0)
		far = math.Max(far, x)
	}
	assert.Less(t, d[left], 0.1*far)
	assert.Less(t, d[right], 0.1*far)
	// The middle column is farther than either source.
	assert.Greater(t, d[4], d[left])
	assert.Greater(t, d[4], d[right])
}

func TestDenseAndCGAgree(t *testing.T) {
	m, err := meshgen.Hemisphere(12, 4, 1)
	require.NoError(t, err)
	ctx := context.Background()
	dense, err := geodesic.Prepare(ctx, m, 1, geodesic.WithSolver(sparse.WithMethod(sparse.MethodDense)))
	require.NoError(t, err)
	cg, err := geodesic.Prepare(ctx, m, 1, geodesic.WithSolver(
		sparse.WithMethod(sparse.MethodCG), sparse.WithTolerance(1e-10), sparse.WithMaxIterations(10000)))
	require.NoError(t, err)

	a, err := dense.Distance([]int{0})
	require.NoError(t, err)
	b, err := cg.Distance([]int{0})
	require.NoError(t, err)
	assert.InDeltaSlice(t, a, b, 1e-6)

	// Pole to equator is a quarter great circle.
	for v := len(m.Vertices) - 12; v < len(m.Vertices); v++ {
		assert.InEpsilon(t, math.Pi/2, a[v], 0.25, "vertex %d", v)
	}
}

func TestConcurrentDistance(t *testing.T) {
	m, err := meshgen.Grid(6, 6, 1, 1)
	require.NoError(t, err)
	s, err := geodesic.Prepare(context.Background(), m, 1)
	require.NoError(t, err)
	want, err := s.Distance([]int{3})
	require.NoError(t, err)

	var g errgroup.Group
	got := make([][]float64, 8)
	for i := range got {
		i := i
		g.Go(func() error {
			d, err := s.Distance([]int{3})
			got[i] = d
			return err
		})
	}
	require.NoError(t, g.Wait())
	for _, d := range got {
		assert.Equal(t, want, d)
	}
}

func TestTracePath_Stall(t *testing.T) {
	m, err := meshgen.Grid(3, 1, 3, 1)
	require.NoError(t, err)
	s, err := geodesic.Prepare(context.Background(), m, 1)
	require.NoError(t, err)
	flat := make([]float64, len(m.Vertices))
	p, err := s.TracePath(flat, 0, 3, 0)
	require.NoError(t, err)
	assert.False(t, p.Reached)
	assert.Equal(t, []int{0, 3}, p.Vertices)
	assert.Zero(t, p.Length)
	assert.InDelta(t, 3, p.PolylineLength, 1e-12)

	// eps larger than any improvement stalls as well.
	d, err := s.Distance([]int{0})
	require.NoError(t, err)
	p, err = s.TracePath(d, 0, 3, 100)
	require.NoError(t, err)
	assert.False(t, p.Reached)
	assert.Equal(t, 0, p.Vertices[0])
}

func TestEdgeGraph(t *testing.T) {
	m, err := meshgen.Grid(3, 3, 3, 3)
	require.NoError(t, err)
	topo, err := mesh.NewTopology(m)
	require.NoError(t, err)
	d, err := geodesic.EdgeGraphDistance(topo, []int{0})
	require.NoError(t, err)
	assert.InDelta(t, 3, d[3], 1e-12)
	assert.InDelta(t, math.Sqrt2, d[5], 1e-12)

	p, err := geodesic.EdgePath(topo, d, 0, 15, 0)
	require.NoError(t, err)
	assert.True(t, p.Reached)
	assert.Equal(t, []int{0, 5, 10, 15}, p.Vertices)
	assert.Equal(t, d[15], p.Length)
	assert.InDelta(t, 3*math.Sqrt2, p.PolylineLength, 1e-12)

	_, err = geodesic.EdgeGraphDistance(topo, nil)
	assert.ErrorIs(t, err, geodesic.ErrNoSources)
	_, err = geodesic.EdgeGraphDistance(topo, []int{99})
	assert.ErrorIs(t, err, mesh.ErrOutOfRange)
	_, err = geodesic.EdgeGraphDistance(nil, []int{0})
	assert.ErrorIs(t, err, mesh.ErrInvalidParameter)
}

func TestErrors(t *testing.T) {
	ctx := context.Background()
	m := rightTriangle()
	for _, scale := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := geodesic.Prepare(ctx, m, scale)
		require.ErrorIs(t, err, geodesic.ErrBadTimeScale)
		assert.ErrorIs(t, err, mesh.ErrInvalidParameter)
	}
	_, err := geodesic.Prepare(ctx, m, 1, geodesic.WithRegularization(0))
	assert.ErrorIs(t, err, geodesic.ErrOptionViolation)

	_, err = geodesic.Prepare(ctx, &mesh.Mesh{}, 1)
	assert.ErrorIs(t, err, mesh.ErrDegenerateMesh)

	// A vertex outside every face has no mass.
	isolated := rightTriangle()
	isolated.Vertices = append(isolated.Vertices, r3.Vec{X: 5, Y: 5})
	_, err = geodesic.Prepare(ctx, isolated, 1)
	assert.ErrorIs(t, err, mesh.ErrSolverFailure)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = geodesic.Prepare(cancelled, m, 1)
	assert.ErrorIs(t, err, context.Canceled)

	s, err := geodesic.Prepare(ctx, m, 1)
	require.NoError(t, err)
	_, err = s.Distance(nil)
	assert.ErrorIs(t, err, geodesic.ErrNoSources)
	_, err = s.Distance([]int{3})
	assert.ErrorIs(t, err, mesh.ErrOutOfRange)

	_, err = s.TracePath([]float64{0}, 0, 1, 0)
	assert.ErrorIs(t, err, geodesic.ErrFieldLength)
	_, err = s.TracePath(make([]float64, 3), 0, 7, 0)
	assert.ErrorIs(t, err, mesh.ErrOutOfRange)
	_, err = s.TracePath(make([]float64, 3), 0, 1, -1)
	assert.ErrorIs(t, err, geodesic.ErrBadEpsilon)

	var nilSolver *geodesic.Solver
	_, err = nilSolver.Distance([]int{0})
	assert.ErrorIs(t, err, geodesic.ErrNilSolver)
}
