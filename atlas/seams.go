// SPDX-License-Identifier: MIT

package atlas

import (
	"fmt"

	"github.com/katalvlaran/uvkit/mesh"
	"github.com/katalvlaran/uvkit/segment"
)

// seamSplit is m with every island owning its own copy of the vertices it
// touches. Faces keep their order, so per-face data of m and of the split
// mesh line up.
type seamSplit struct {
	mesh *mesh.Mesh

	// original maps a split vertex to its vertex in m.
	original []int

	// first[i] is the split index of the first vertex of island i; the
	// island's vertices follow in sub-mesh order.
	first []int

	// local[i] maps the sub-mesh vertices of island i to m.
	local [][]int
}

// splitSeams duplicates every vertex shared by several islands. Vertices
// no face references are appended after the last island.
func splitSeams(m *mesh.Mesh, islands []segment.UVIsland) (seamSplit, error) {
	s := seamSplit{
		mesh:  &mesh.Mesh{Faces: make([][3]int, len(m.Faces))},
		first: make([]int, len(islands)),
		local: make([][]int, len(islands)),
	}
	owned := make([]bool, len(m.Faces))
	referenced := make([]bool, len(m.Vertices))
	for i, island := range islands {
		sub, toGlobal, err := m.SubMesh(island.Faces)
		if err != nil {
			return seamSplit{}, fmt.Errorf("atlas: island %d: %w", i, err)
		}
		base := len(s.original)
		s.first[i], s.local[i] = base, toGlobal
		for _, g := range toGlobal {
			s.original = append(s.original, g)
			s.mesh.Vertices = append(s.mesh.Vertices, m.Vertices[g])
			referenced[g] = true
		}
		for k, f := range island.Faces {
			if owned[f] {
				return seamSplit{}, fmt.Errorf("atlas: face %d in two islands: %w", f, mesh.ErrInvalidParameter)
			}
			owned[f] = true
			lf := sub.Faces[k]
			s.mesh.Faces[f] = [3]int{base + lf[0], base + lf[1], base + lf[2]}
		}
	}
	for f, ok := range owned {
		if !ok {
			return seamSplit{}, fmt.Errorf("atlas: face %d in no island: %w", f, mesh.ErrInvalidParameter)
		}
	}
	for v, ok := range referenced {
		if !ok {
			s.original = append(s.original, v)
			s.mesh.Vertices = append(s.mesh.Vertices, m.Vertices[v])
		}
	}
	return s, nil
}
