// SPDX-License-Identifier: MIT

package mesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DegenerateArea is the area below which a triangle is treated as degenerate.
const DegenerateArea = 1e-10

// Corners returns the three positions of face f.
func (m *Mesh) Corners(f int) (p0, p1, p2 r3.Vec) {
	face := m.Faces[f]
	return m.Vertices[face[0]], m.Vertices[face[1]], m.Vertices[face[2]]
}

// FaceNormal returns the unnormalized normal (p1-p0)×(p2-p0) of face f.
// Its length is twice the face area.
func (m *Mesh) FaceNormal(f int) r3.Vec {
	p0, p1, p2 := m.Corners(f)
	return r3.Cross(r3.Sub(p1, p0), r3.Sub(p2, p0))
}

// UnitFaceNormal returns the unit normal of face f and false when the face
// is degenerate (normal length below 1e-10).
func (m *Mesh) UnitFaceNormal(f int) (r3.Vec, bool) {
	n := m.FaceNormal(f)
	l := r3.Norm(n)
	if l < DegenerateArea {
		return r3.Vec{}, false
	}
	return r3.Scale(1/l, n), true
}

// FaceArea returns the area of face f.
func (m *Mesh) FaceArea(f int) float64 {
	return 0.5 * r3.Norm(m.FaceNormal(f))
}

// FaceAreas returns the area of every face.
func (m *Mesh) FaceAreas() []float64 {
	out := make([]float64, len(m.Faces))
	for f := range m.Faces {
		out[f] = m.FaceArea(f)
	}
	return out
}

// FaceCentroid returns the barycenter of face f.
func (m *Mesh) FaceCentroid(f int) r3.Vec {
	p0, p1, p2 := m.Corners(f)
	return r3.Scale(1.0/3.0, r3.Add(r3.Add(p0, p1), p2))
}

// EdgeLength returns the 3D length of e.
func (m *Mesh) EdgeLength(e Edge) float64 {
	return r3.Norm(r3.Sub(m.Vertices[e.V1], m.Vertices[e.V0]))
}

// CornerAngles returns the interior angle at each corner of face f.
// Angle j sits at vertex Faces[f][j]. Each angle is the arccosine of the dot
// product of the two normalized edge vectors, clamped to [-1, 1]. A corner
// with a zero-length edge gets angle 0.
func (m *Mesh) CornerAngles(f int) [3]float64 {
	face := m.Faces[f]
	var out [3]float64
	for j := 0; j < 3; j++ {
		p := m.Vertices[face[j]]
		e1 := r3.Sub(m.Vertices[face[(j+1)%3]], p)
		e2 := r3.Sub(m.Vertices[face[(j+2)%3]], p)
		out[j] = angleBetween(e1, e2)
	}
	return out
}

// angleBetween returns the angle between a and b in [0, π], or 0 when
// either vector has zero length.
func angleBetween(a, b r3.Vec) float64 {
	la, lb := r3.Norm(a), r3.Norm(b)
	if la == 0 || lb == 0 {
		return 0
	}
	c := r3.Dot(a, b) / (la * lb)
	return math.Acos(clamp(c, -1, 1))
}

// MeanEdgeLength returns the mean length over the 3F face edges (shared
// edges counted once per incident face). A zero mean is ErrDegenerateMesh.
func (m *Mesh) MeanEdgeLength() (float64, error) {
	if len(m.Faces) == 0 {
		return 0, fmt.Errorf("mesh: mean edge length of empty mesh: %w", ErrDegenerateMesh)
	}
	var total float64
	for _, face := range m.Faces {
		for j := 0; j < 3; j++ {
			total += r3.Norm(r3.Sub(m.Vertices[face[(j+1)%3]], m.Vertices[face[j]]))
		}
	}
	mean := total / float64(3*len(m.Faces))
	if mean == 0 || math.IsNaN(mean) {
		return 0, fmt.Errorf("mesh: mean edge length is %v: %w", mean, ErrDegenerateMesh)
	}
	return mean, nil
}

// AreaWeightedCentroid returns the total area of faces and their
// area-weighted centroid. A zero-area selection yields the plain mean of
// the face barycenters.
func (m *Mesh) AreaWeightedCentroid(faces []int) (r3.Vec, float64) {
	var (
		sum   r3.Vec
		plain r3.Vec
		area  float64
	)
	for _, f := range faces {
		a := m.FaceArea(f)
		c := m.FaceCentroid(f)
		sum = r3.Add(sum, r3.Scale(a, c))
		plain = r3.Add(plain, c)
		area += a
	}
	if area > 0 {
		return r3.Scale(1/area, sum), area
	}
	if len(faces) > 0 {
		return r3.Scale(1/float64(len(faces)), plain), 0
	}
	return r3.Vec{}, 0
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
