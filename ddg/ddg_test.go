// SPDX-License-Identifier: MIT

package ddg_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvkit/ddg"
	"github.com/katalvlaran/uvkit/mesh"
	"github.com/katalvlaran/uvkit/meshgen"
	"github.com/katalvlaran/uvkit/sparse"
)

func TestCotanLaplacian_RowsSumToZeroAndSymmetric(t *testing.T) {
	m, err := meshgen.Grid(3, 3, 1, 1)
	require.NoError(t, err)
	l, err := ddg.CotanLaplacian(m)
	require.NoError(t, err)
	assert.True(t, l.IsSymmetric(1e-12))

	ones := make([]float64, len(m.Vertices))
	for i := range ones {
		ones[i] = 1
	}
	r, err := l.MulVec(ones)
	require.NoError(t, err)
	for _, v := range r {
		assert.InDelta(t, 0, v, 1e-12)
	}
	for _, d := range l.Diagonal() {
		assert.Greater(t, d, 0.0)
	}
}

func TestCotanLaplacian_LinearFunctionIsHarmonicInside(t *testing.T) {
	m, err := meshgen.Grid(4, 4, 1, 1)
	require.NoError(t, err)
	topo, err := mesh.NewTopology(m)
	require.NoError(t, err)
	l, err := ddg.CotanLaplacian(m)
	require.NoError(t, err)

	u := make([]float64, len(m.Vertices))
	for i, p := range m.Vertices {
		u[i] = 2*p.X - 3*p.Y
	}
	lu, err := l.MulVec(u)
	require.NoError(t, err)
	onBoundary := topo.BoundaryVertices()
	for i, v := range lu {
		if !onBoundary[i] {
			assert.InDelta(t, 0, v, 1e-10, "vertex %d", i)
		}
	}
}

func TestGradient_LinearField(t *testing.T) {
	m, err := meshgen.Jitter(meshgen.UnitSquare(), 0.05, meshgen.WithSeed(3))
	require.NoError(t, err)
	for i := range m.Vertices {
		m.Vertices[i].Z = 0
	}
	g, err := ddg.Gradient(m)
	require.NoError(t, err)
	assert.Equal(t, 3*len(m.Faces), g.Rows())

	u := make([]float64, len(m.Vertices))
	for i, p := range m.Vertices {
		u[i] = 2*p.X - 3*p.Y
	}
	gu, err := g.MulVec(u)
	require.NoError(t, err)
	for _, v := range ddg.FaceVectors(gu) {
		assert.InDelta(t, 2, v.X, 1e-10)
		assert.InDelta(t, -3, v.Y, 1e-10)
		assert.InDelta(t, 0, v.Z, 1e-10)
	}
}

func TestLaplacianMatchesGradientAndDivergence(t *testing.T) {
	m, err := meshgen.Hemisphere(8, 3, 1)
	require.NoError(t, err)
	l, err := ddg.CotanLaplacian(m)
	require.NoError(t, err)
	g, err := ddg.Gradient(m)
	require.NoError(t, err)

	u := make([]float64, len(m.Vertices))
	for i, p := range m.Vertices {
		u[i] = p.X*p.Y + p.Z
	}
	gu, err := g.MulVec(u)
	require.NoError(t, err)
	div, err := ddg.Divergence(m, g, ddg.FaceVectors(gu))
	require.NoError(t, err)
	lu, err := l.MulVec(u)
	require.NoError(t, err)
	for i := range lu {
		assert.InDelta(t, -lu[i], div[i], 1e-9)
	}

	_, err = ddg.Divergence(m, g, nil)
	assert.ErrorIs(t, err, sparse.ErrDimensionMismatch)
}

func TestMassMatrix_TotalArea(t *testing.T) {
	m, err := meshgen.Grid(2, 5, 2, 1)
	require.NoError(t, err)
	mm, err := ddg.MassMatrix(m)
	require.NoError(t, err)
	var total float64
	for _, d := range mm.Diagonal() {
		total += d
	}
	assert.InDelta(t, 2.0, total, 1e-12)

	_, err = ddg.MassMatrix(&mesh.Mesh{})
	assert.ErrorIs(t, err, mesh.ErrDegenerateMesh)
}

func TestGaussianCurvature(t *testing.T) {
	flat, err := meshgen.Grid(3, 3, 1, 1)
	require.NoError(t, err)
	topo, err := mesh.NewTopology(flat)
	require.NoError(t, err)
	for v, k := range ddg.GaussianCurvature(flat, topo) {
		p := flat.Vertices[v]
		corner := (p.X == 0 || p.X == 1) && (p.Y == 0 || p.Y == 1)
		if corner {
			// The rim turns by π/2 at a sheet corner.
			assert.Greater(t, k, 0.0)
			continue
		}
		assert.InDelta(t, 0, k, 1e-9, "vertex %d", v)
	}

	// Gauss-Bonnet: total defect of a closed genus-0 surface is 4π.
	ico, err := meshgen.Platonic(meshgen.Icosahedron)
	require.NoError(t, err)
	topo, err = mesh.NewTopology(ico)
	require.NoError(t, err)
	k := ddg.GaussianCurvature(ico, topo)
	areas := ddg.VertexAreas(ico)
	var total float64
	for i := range k {
		assert.Greater(t, k[i], 0.0)
		total += k[i] * areas[i]
	}
	assert.InDelta(t, 4*math.Pi, total, 1e-9)
}

func TestMeanCurvature_Errors(t *testing.T) {
	_, err := ddg.MeanCurvature(&mesh.Mesh{})
	assert.ErrorIs(t, err, mesh.ErrDegenerateMesh)

	bad := meshgen.UnitSquare()
	bad.Faces = append(bad.Faces, [3]int{0, 1, 9})
	_, err = ddg.MeanCurvature(bad)
	assert.ErrorIs(t, err, mesh.ErrOutOfRange)
}

func TestMeanAndPrincipalCurvature(t *testing.T) {
	flat, err := meshgen.Grid(3, 3, 1, 1)
	require.NoError(t, err)
	h, err := ddg.MeanCurvature(flat)
	require.NoError(t, err)
	for _, v := range h {
		assert.InDelta(t, 0, v, 1e-9)
	}

	ico, err := meshgen.Platonic(meshgen.Icosahedron)
	require.NoError(t, err)
	topo, err := mesh.NewTopology(ico)
	require.NoError(t, err)
	h, err = ddg.MeanCurvature(ico)
	require.NoError(t, err)
	kmin, kmax, err := ddg.PrincipalCurvatures(ico, topo)
	require.NoError(t, err)
	radius := r3.Norm(ico.Vertices[0])
	for i := range h {
		// A coarse sphere: positive, same order as 1/R.
		assert.Greater(t, h[i], 0.0)
		assert.InDelta(t, 1/radius, h[i], 0.5/radius)
		assert.LessOrEqual(t, kmin[i], kmax[i])
		assert.InDelta(t, h[i], 0.5*(kmin[i]+kmax[i]), 1e-12)
	}
}
