// SPDX-License-Identifier: MIT

package ddg

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvkit/mesh"
	"github.com/katalvlaran/uvkit/sparse"
)

// cotEps is the |cross| below which a corner cotangent is treated as zero.
const cotEps = 1e-12

// cot returns the cotangent of the angle between a and b, or 0 when they
// are (nearly) parallel.
func cot(a, b r3.Vec) float64 {
	s := r3.Norm(r3.Cross(a, b))
	if s < cotEps {
		return 0
	}
	return r3.Dot(a, b) / s
}

// CotanLaplacian returns the n×n positive semi-definite cotangent Laplacian
//
//	L_ij = -½(cot α_ij + cot β_ij),   L_ii = -Σ_j L_ij,
//
// where α_ij, β_ij are the angles opposite edge ij. Rows sum to zero.
// Degenerate corners contribute nothing.
//
// Complexity: O(F log F).
func CotanLaplacian(m *mesh.Mesh) (*sparse.CSR, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	n := len(m.Vertices)
	t := sparse.NewTriplets(n, n)
	t.Reserve(12 * len(m.Faces))

	var k int
	for _, f := range m.Faces {
		for k = 0; k < 3; k++ {
			i, j, o := f[(k+1)%3], f[(k+2)%3], f[k]
			po := m.Vertices[o]
			w := 0.5 * cot(r3.Sub(m.Vertices[i], po), r3.Sub(m.Vertices[j], po))
			t.Add(i, j, -w)
			t.Add(j, i, -w)
			t.Add(i, i, w)
			t.Add(j, j, w)
		}
	}

	return t.CSR()
}

// VertexAreas returns the barycentric area of each vertex (one third of
// every incident face area).
func VertexAreas(m *mesh.Mesh) []float64 {
	out := make([]float64, len(m.Vertices))
	for fi, f := range m.Faces {
		a := m.FaceArea(fi) / 3
		out[f[0]] += a
		out[f[1]] += a
		out[f[2]] += a
	}
	return out
}

// MassMatrix returns the lumped (diagonal) barycentric mass matrix.
func MassMatrix(m *mesh.Mesh) (*sparse.CSR, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return sparse.Diag(VertexAreas(m)), nil
}

// Gradient returns the 3F×n operator mapping a per-vertex scalar field to
// its per-face gradient. Rows 3f, 3f+1, 3f+2 hold the x, y, z components
// for face f. Degenerate faces (area below mesh.DegenerateArea) get zero rows.
//
// The hat-function gradient of corner i is N×e_i / (2A), with e_i the edge
// opposite i taken counter-clockwise and N the unit face normal.
func Gradient(m *mesh.Mesh) (*sparse.CSR, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	nf, n := len(m.Faces), len(m.Vertices)
	t := sparse.NewTriplets(3*nf, n)
	t.Reserve(9 * nf)

	for fi, f := range m.Faces {
		normal := m.FaceNormal(fi)
		dbl := r3.Norm(normal)
		if dbl < 2*mesh.DegenerateArea {
			continue
		}
		unit := r3.Scale(1/dbl, normal)
		for k := 0; k < 3; k++ {
			e := r3.Sub(m.Vertices[f[(k+2)%3]], m.Vertices[f[(k+1)%3]])
			g := r3.Scale(1/dbl, r3.Cross(unit, e))
			t.Add(3*fi, f[k], g.X)
			t.Add(3*fi+1, f[k], g.Y)
			t.Add(3*fi+2, f[k], g.Z)
		}
	}

	return t.CSR()
}

// FaceVectors unpacks a stacked 3F vector produced by the Gradient operator.
func FaceVectors(stacked []float64) []r3.Vec {
	out := make([]r3.Vec, len(stacked)/3)
	for f := range out {
		out[f] = r3.Vec{X: stacked[3*f], Y: stacked[3*f+1], Z: stacked[3*f+2]}
	}
	return out
}

// Divergence returns the integrated per-vertex divergence of a per-face
// vector field, -Gᵀ·(A ⊙ X), where grad is the operator from Gradient and
// A the face areas. For a gradient field X = G·u this equals -L·u.
func Divergence(m *mesh.Mesh, grad *sparse.CSR, field []r3.Vec) ([]float64, error) {
	if len(field) != len(m.Faces) || grad.Rows() != 3*len(m.Faces) {
		return nil, fmt.Errorf("ddg: Divergence: %d vectors, %d faces, %d rows: %w",
			len(field), len(m.Faces), grad.Rows(), sparse.ErrDimensionMismatch)
	}
	w := make([]float64, 3*len(field))
	for f, x := range field {
		a := m.FaceArea(f)
		w[3*f] = -a * x.X
		w[3*f+1] = -a * x.Y
		w[3*f+2] = -a * x.Z
	}
	return grad.Transpose().MulVec(w)
}

// VertexNormals returns area-weighted unit vertex normals; isolated or
// degenerate neighborhoods get the zero vector.
func VertexNormals(m *mesh.Mesh) []r3.Vec {
	out := make([]r3.Vec, len(m.Vertices))
	for fi, f := range m.Faces {
		n := m.FaceNormal(fi)
		for _, v := range f {
			out[v] = r3.Add(out[v], n)
		}
	}
	for v, n := range out {
		if l := r3.Norm(n); l > mesh.DegenerateArea {
			out[v] = r3.Scale(1/l, n)
		} else {
			out[v] = r3.Vec{}
		}
	}
	return out
}
