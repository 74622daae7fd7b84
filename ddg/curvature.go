// SPDX-License-Identifier: MIT

package ddg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvkit/mesh"
)

// AngleSums returns, per vertex, the sum of incident corner angles.
func AngleSums(m *mesh.Mesh) []float64 {
	out := make([]float64, len(m.Vertices))
	for fi, f := range m.Faces {
		ang := m.CornerAngles(fi)
		out[f[0]] += ang[0]
		out[f[1]] += ang[1]
		out[f[2]] += ang[2]
	}
	return out
}

// GaussianCurvature returns the per-vertex angle defect divided by the
// barycentric vertex area. The defect is 2π-Σθ at interior vertices and
// π-Σθ at boundary vertices, so a flat sheet has zero curvature on its rim
// as well. Vertices whose area is at most mesh.DegenerateArea keep the raw
// defect.
func GaussianCurvature(m *mesh.Mesh, topo *mesh.Topology) []float64 {
	sums := AngleSums(m)
	areas := VertexAreas(m)
	onBoundary := topo.BoundaryVertices()

	out := make([]float64, len(sums))
	for v, s := range sums {
		full := 2 * math.Pi
		if onBoundary[v] {
			full = math.Pi
		}
		k := full - s
		if areas[v] > mesh.DegenerateArea {
			k /= areas[v]
		}
		out[v] = k
	}
	return out
}

// MeanCurvature returns the signed per-vertex mean curvature
//
//	H_i = (L·x)_i · n_i / (2 A_i),
//
// the projection of the cotangent mean-curvature normal on the area-weighted
// vertex normal. Convex regions are positive for outward-facing normals.
// Vertices with degenerate area get 0.
func MeanCurvature(m *mesh.Mesh) ([]float64, error) {
	l, err := CotanLaplacian(m)
	if err != nil {
		return nil, err
	}
	n := len(m.Vertices)
	xs, ys, zs := make([]float64, n), make([]float64, n), make([]float64, n)
	for i, p := range m.Vertices {
		xs[i], ys[i], zs[i] = p.X, p.Y, p.Z
	}
	var lxyz [3][]float64
	for k, c := range [3][]float64{xs, ys, zs} {
		if lxyz[k], err = l.MulVec(c); err != nil {
			return nil, fmt.Errorf("ddg: mean curvature: %w", err)
		}
	}
	lx, ly, lz := lxyz[0], lxyz[1], lxyz[2]

	normals := VertexNormals(m)
	areas := VertexAreas(m)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if areas[i] <= mesh.DegenerateArea {
			continue
		}
		hn := r3.Vec{X: lx[i], Y: ly[i], Z: lz[i]}
		out[i] = r3.Dot(hn, normals[i]) / (2 * areas[i])
	}
	return out, nil
}

// PrincipalCurvatures returns per-vertex (kmin, kmax) from the mean and
// Gaussian curvature estimates: k = H ± sqrt(max(H²-K, 0)).
func PrincipalCurvatures(m *mesh.Mesh, topo *mesh.Topology) (kmin, kmax []float64, err error) {
	h, err := MeanCurvature(m)
	if err != nil {
		return nil, nil, err
	}
	k := GaussianCurvature(m, topo)
	kmin = make([]float64, len(h))
	kmax = make([]float64, len(h))
	for i := range h {
		d := math.Sqrt(math.Max(h[i]*h[i]-k[i], 0))
		kmin[i] = h[i] - d
		kmax[i] = h[i] + d
	}
	return kmin, kmax, nil
}
