// SPDX-License-Identifier: MIT

package segment

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvkit/mesh"
)

// DefaultSymmetryTolerance is the distance below which a vertex is
// considered on the symmetry plane.
const DefaultSymmetryTolerance = 1e-3

// Plane is the set of points p with Normal·p + Offset = 0.
type Plane struct {
	Normal r3.Vec
	Offset float64
}

// unit rescales the plane equation so that Normal has length 1.
func (pl Plane) unit() (Plane, error) {
	l := r3.Norm(pl.Normal)
	if !(l > 0) || math.IsInf(l, 0) || math.IsNaN(pl.Offset) || math.IsInf(pl.Offset, 0) {
		return Plane{}, ErrBadPlane
	}
	return Plane{Normal: r3.Scale(1/l, pl.Normal), Offset: pl.Offset / l}, nil
}

// Side classifies p: -1 below the plane, +1 above, 0 within tol of it.
// The distance is measured after normalizing the plane equation.
func (pl Plane) Side(p r3.Vec, tol float64) int {
	u, err := pl.unit()
	if err != nil {
		return 0
	}
	return u.side(p, tol)
}

func (pl Plane) side(p r3.Vec, tol float64) int {
	d := r3.Dot(pl.Normal, p) + pl.Offset
	switch {
	case math.Abs(d) < tol:
		return 0
	case d > 0:
		return 1
	default:
		return -1
	}
}

// SymmetryEdges returns the edges whose endpoints lie on different sides
// of plane or that touch it.
func SymmetryEdges(topo *mesh.Topology, plane Plane, tol float64) (mesh.EdgeSet, error) {
	if err := checkTopology(topo); err != nil {
		return nil, fmt.Errorf("%s: %w", methodSymmetry, err)
	}
	if !validThreshold(tol) {
		return nil, fmt.Errorf("%s: tolerance=%v: %w", methodSymmetry, tol, ErrBadThreshold)
	}
	u, err := plane.unit()
	if err != nil {
		return nil, fmt.Errorf("%s: normal=%v: %w", methodSymmetry, plane.Normal, err)
	}
	m := topo.Mesh()
	side := make([]int, len(m.Vertices))
	for i, p := range m.Vertices {
		side[i] = u.side(p, tol)
	}
	out := mesh.NewEdgeSet()
	for e := range topo.EdgeFaces {
		s0, s1 := side[e.V0], side[e.V1]
		if s0 != s1 || s0 == 0 {
			out.Add(e)
		}
	}
	return out, nil
}

// SymmetryLoops traces the symmetry edges into ordered loops, each walk
// bounded by the vertex count.
func SymmetryLoops(topo *mesh.Topology, plane Plane, tol float64) ([]Loop, error) {
	edges, err := SymmetryEdges(topo, plane, tol)
	if err != nil {
		return nil, err
	}
	return TraceLoops(edges.Sorted(), topo.Mesh().NumVertices()), nil
}

// SegmentBySymmetry splits the mesh along plane. On a mesh mirrored about
// the plane with no vertex on it, the result is one island per side.
func SegmentBySymmetry(topo *mesh.Topology, plane Plane, tol float64) ([]UVIsland, error) {
	loops, err := SymmetryLoops(topo, plane, tol)
	if err != nil {
		return nil, err
	}
	return SegmentByEdgeLoops(topo, loops)
}
