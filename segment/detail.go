// SPDX-License-Identifier: MIT

package segment

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvkit/mesh"
)

// DefaultTextureFlowAngle is the deviation difference, in degrees, that
// separates two texture-flow regions.
const DefaultTextureFlowAngle = 45.0

// FlowDeviation returns, per face, the smallest angle in degrees between
// dir projected onto the face plane and any face edge (as an undirected
// line). Degenerate faces, and faces whose plane is orthogonal to dir,
// report 0.
func FlowDeviation(m *mesh.Mesh, dir r3.Vec) []float64 {
	dir = r3.Unit(dir)
	out := make([]float64, len(m.Faces))
	for f, face := range m.Faces {
		n, ok := m.UnitFaceNormal(f)
		if !ok {
			continue
		}
		t, ok := tangent(dir, n)
		if !ok {
			continue
		}
		best := 90.0
		for j := 0; j < 3; j++ {
			e, ok := tangent(r3.Sub(m.Vertices[face[(j+1)%3]], m.Vertices[face[j]]), n)
			if !ok {
				continue
			}
			c := math.Min(1, math.Abs(r3.Dot(e, t)))
			best = math.Min(best, math.Acos(c)*180/math.Pi)
		}
		out[f] = best
	}
	return out
}

// tangent projects v onto the plane with unit normal n and normalizes it.
func tangent(v, n r3.Vec) (r3.Vec, bool) {
	p := r3.Sub(v, r3.Scale(r3.Dot(v, n), n))
	l := r3.Norm(p)
	if l < mesh.DegenerateArea {
		return r3.Vec{}, false
	}
	return r3.Scale(1/l, p), true
}

// TextureFlowEdges returns the interior edges between faces whose flow
// deviations differ by more than angleDeg.
func TextureFlowEdges(topo *mesh.Topology, dir r3.Vec, angleDeg float64) (mesh.EdgeSet, error) {
	if err := checkTopology(topo); err != nil {
		return nil, fmt.Errorf("%s: %w", methodTextureFlow, err)
	}
	if l := r3.Norm(dir); !(l > 0) || math.IsInf(l, 0) {
		return nil, fmt.Errorf("%s: dir=%v: %w", methodTextureFlow, dir, ErrBadDirection)
	}
	if !validAngle(angleDeg) {
		return nil, fmt.Errorf("%s: angle=%v: %w", methodTextureFlow, angleDeg, ErrBadAngle)
	}
	dev := FlowDeviation(topo.Mesh(), dir)
	out := mesh.NewEdgeSet()
	for e, fs := range topo.EdgeFaces {
	pairs:
		for i := 0; i < len(fs); i++ {
			for j := i + 1; j < len(fs); j++ {
				if math.Abs(dev[fs[i]]-dev[fs[j]]) > angleDeg {
					out.Add(e)
					break pairs
				}
			}
		}
	}
	return out, nil
}

// SegmentByTextureFlow separates regions where a directional texture runs
// at different angles to the mesh edges. Without any such edge the whole
// mesh is one island.
func SegmentByTextureFlow(topo *mesh.Topology, dir r3.Vec, angleDeg float64) ([]UVIsland, error) {
	edges, err := TextureFlowEdges(topo, dir, angleDeg)
	if err != nil {
		return nil, err
	}
	if edges.Len() == 0 {
		return Whole(topo.Mesh()), nil
	}
	loops := TraceLoops(edges.Sorted(), topo.Mesh().NumVertices())
	return SegmentByEdgeLoops(topo, loops)
}

// SegmentByDetailIsolation returns the detail faces as one island and the
// remaining faces as a second one, whatever their connectivity. Both
// islands share the boundary between the two regions. Duplicate face
// indices are ignored; an empty detail set gives a single island.
func SegmentByDetailIsolation(topo *mesh.Topology, detailFaces []int) ([]UVIsland, error) {
	if err := checkTopology(topo); err != nil {
		return nil, fmt.Errorf("%s: %w", methodDetailIsolation, err)
	}
	m := topo.Mesh()
	inDetail := make([]bool, len(m.Faces))
	var detail []int
	for _, f := range detailFaces {
		if err := m.CheckFace(f); err != nil {
			return nil, fmt.Errorf("%s: %w", methodDetailIsolation, err)
		}
		if !inDetail[f] {
			inDetail[f] = true
			detail = append(detail, f)
		}
	}
	if len(detail) == 0 {
		return Whole(m), nil
	}
	sort.Ints(detail)

	var rest []int
	for f := range m.Faces {
		if !inDetail[f] {
			rest = append(rest, f)
		}
	}

	boundary := mesh.NewEdgeSet()
	for e, fs := range topo.EdgeFaces {
		var in, out bool
		for _, f := range fs {
			if inDetail[f] {
				in = true
			} else {
				out = true
			}
		}
		if in && out {
			boundary.Add(e)
		}
	}
	seam := boundary.Sorted()

	islands := []UVIsland{NewIsland(m, detail, seam)}
	if len(rest) > 0 {
		islands = append(islands, NewIsland(m, rest, seam))
		if rest[0] < detail[0] {
			islands[0], islands[1] = islands[1], islands[0]
		}
	}
	return islands, nil
}
