// SPDX-License-Identifier: MIT

package segment

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvkit/bfs"
	"github.com/katalvlaran/uvkit/mesh"
	"github.com/katalvlaran/uvkit/uvlog"
)

// UVIsland is a set of faces parameterized as one chart.
//
// Centroid and Area are derived from Faces by NewIsland; build a new island
// rather than editing Faces in place.
type UVIsland struct {
	// Faces lists face indices in ascending order.
	Faces []int

	// Boundary holds the cut edges touching Faces, sorted.
	Boundary []mesh.Edge

	// Centroid is the area-weighted centroid of Faces.
	Centroid r3.Vec

	// Area is the total 3D area of Faces.
	Area float64
}

// NewIsland returns the island over faces with the given boundary,
// computing its area and centroid from m. faces and boundary are copied
// and sorted.
func NewIsland(m *mesh.Mesh, faces []int, boundary []mesh.Edge) UVIsland {
	fs := append([]int(nil), faces...)
	sort.Ints(fs)
	bs := append([]mesh.Edge(nil), boundary...)
	mesh.SortEdges(bs)
	c, a := m.AreaWeightedCentroid(fs)
	return UVIsland{Faces: fs, Boundary: bs, Centroid: c, Area: a}
}

// Whole returns the single island covering every face of m.
func Whole(m *mesh.Mesh) []UVIsland {
	faces := make([]int, len(m.Faces))
	for i := range faces {
		faces[i] = i
	}
	return []UVIsland{NewIsland(m, faces, nil)}
}

// Partition splits the faces of topo's mesh into islands: two faces share
// an island when they are connected through edges not in cuts.
//
// An empty cut set yields exactly one island covering the whole mesh, even
// when the mesh itself is disconnected. Each island's Boundary is the set
// of cut edges touching its faces.
//
// Complexity: O(F + E) plus sorting.
func Partition(topo *mesh.Topology, cuts mesh.EdgeSet) ([]UVIsland, error) {
	if err := checkTopology(topo); err != nil {
		return nil, fmt.Errorf("%s: %w", methodPartition, err)
	}
	m := topo.Mesh()
	if cuts.Len() == 0 {
		return Whole(m), nil
	}

	comps, err := bfs.Components(len(m.Faces), func(f int) []int {
		return topo.FaceNeighbors(f, cuts.Has)
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodPartition, err)
	}

	islands := make([]UVIsland, 0, len(comps))
	for _, faces := range comps {
		boundary := mesh.NewEdgeSet()
		for _, f := range faces {
			for _, e := range topo.FaceEdges(f) {
				if cuts.Has(e) {
					boundary.Add(e)
				}
			}
		}
		islands = append(islands, NewIsland(m, faces, boundary.Sorted()))
	}
	uvlog.Logger().Debug("segment: partition", "faces", len(m.Faces), "cuts", cuts.Len(), "islands", len(islands))

	return islands, nil
}

// VerifyPartition checks that islands are pairwise disjoint, reference
// only faces in [0, numFaces) and together cover all of them.
func VerifyPartition(numFaces int, islands []UVIsland) error {
	owner := make([]int, numFaces)
	for i := range owner {
		owner[i] = -1
	}
	for k, isl := range islands {
		for _, f := range isl.Faces {
			if f < 0 || f >= numFaces {
				return fmt.Errorf("island %d: face %d: %w", k, f, ErrNotPartition)
			}
			if owner[f] >= 0 {
				return fmt.Errorf("face %d in islands %d and %d: %w", f, owner[f], k, ErrNotPartition)
			}
			owner[f] = k
		}
	}
	for f, k := range owner {
		if k < 0 {
			return fmt.Errorf("face %d in no island: %w", f, ErrNotPartition)
		}
	}
	return nil
}
