// SPDX-License-Identifier: MIT

package segment

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvkit/mesh"
)

// DefaultFeatureAngle is the dihedral angle, in degrees, above which an
// interior edge is a feature edge.
const DefaultFeatureAngle = 30.0

// DihedralAngle returns the angle in degrees between the unit normals of
// faces f and g. A degenerate face gives 0.
func DihedralAngle(m *mesh.Mesh, f, g int) float64 {
	n1, ok1 := m.UnitFaceNormal(f)
	n2, ok2 := m.UnitFaceNormal(g)
	if !ok1 || !ok2 {
		return 0
	}
	c := math.Max(-1, math.Min(1, r3.Dot(n1, n2)))
	return math.Acos(c) * 180 / math.Pi
}

// FeatureEdges returns the boundary edges of the mesh together with every
// interior edge whose dihedral angle exceeds angleDeg. A non-manifold edge
// compares its first two incident faces.
func FeatureEdges(topo *mesh.Topology, angleDeg float64) (mesh.EdgeSet, error) {
	if err := checkTopology(topo); err != nil {
		return nil, fmt.Errorf("%s: %w", methodFeatureEdges, err)
	}
	if !validAngle(angleDeg) {
		return nil, fmt.Errorf("%s: angle=%v: %w", methodFeatureEdges, angleDeg, ErrBadAngle)
	}
	m := topo.Mesh()
	out := mesh.NewEdgeSet()
	for e, fs := range topo.EdgeFaces {
		switch {
		case len(fs) == 1:
			out.Add(e)
		case DihedralAngle(m, fs[0], fs[1]) > angleDeg:
			out.Add(e)
		}
	}
	return out, nil
}

// DetectEdgeLoops traces the feature edges of the mesh into ordered loops.
// Walks are bounded by the vertex count.
func DetectEdgeLoops(topo *mesh.Topology, angleDeg float64) ([]Loop, error) {
	edges, err := FeatureEdges(topo, angleDeg)
	if err != nil {
		return nil, err
	}
	return TraceLoops(edges.Sorted(), topo.Mesh().NumVertices()), nil
}

// SegmentByFeatures cuts along the feature edges of the mesh.
func SegmentByFeatures(topo *mesh.Topology, angleDeg float64) ([]UVIsland, error) {
	edges, err := FeatureEdges(topo, angleDeg)
	if err != nil {
		return nil, err
	}
	return Partition(topo, edges)
}
