// SPDX-License-Identifier: MIT

package mesh

import (
	"sort"

	"github.com/katalvlaran/uvkit/uvlog"
)

// Topology is the edge→faces and vertex adjacency index of one Mesh.
// It is immutable after NewTopology and safe for concurrent reads.
type Topology struct {
	mesh *Mesh

	// EdgeFaces maps each canonical edge to its incident faces in ascending order.
	EdgeFaces map[Edge][]int

	// Adjacency[v] lists the vertices sharing an edge with v, sorted and deduplicated.
	Adjacency [][]int

	// VertexFaces[v] lists the faces touching v in ascending order.
	VertexFaces [][]int
}

// NewTopology validates m and builds its index.
//
// Complexity: O(F) expected time; the edge map is reserved to 3F entries.
func NewTopology(m *Mesh) (*Topology, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	nv, nf := len(m.Vertices), len(m.Faces)
	t := &Topology{
		mesh:        m,
		EdgeFaces:   make(map[Edge][]int, 3*nf),
		Adjacency:   make([][]int, nv),
		VertexFaces: make([][]int, nv),
	}

	var fi, j int
	for fi = 0; fi < nf; fi++ {
		f := m.Faces[fi]
		for j = 0; j < 3; j++ {
			a, b := f[j], f[(j+1)%3]
			e := MakeEdge(a, b)
			t.EdgeFaces[e] = append(t.EdgeFaces[e], fi)
			t.Adjacency[a] = append(t.Adjacency[a], b)
			t.Adjacency[b] = append(t.Adjacency[b], a)
			t.VertexFaces[f[j]] = append(t.VertexFaces[f[j]], fi)
		}
	}

	for v := range t.Adjacency {
		t.Adjacency[v] = sortUnique(t.Adjacency[v])
		t.VertexFaces[v] = sortUnique(t.VertexFaces[v])
	}
	// A degenerate face (repeated vertex) may list itself twice on one edge.
	for e, fs := range t.EdgeFaces {
		t.EdgeFaces[e] = sortUnique(fs)
	}

	if nm := t.NonManifoldEdges(); len(nm) > 0 {
		uvlog.Logger().Warn("mesh: non-manifold edges treated as interior", "count", len(nm))
	}

	return t, nil
}

// Mesh returns the indexed mesh.
func (t *Topology) Mesh() *Mesh { return t.mesh }

// NumEdges returns the number of distinct edges.
func (t *Topology) NumEdges() int { return len(t.EdgeFaces) }

// Edges returns every distinct edge in ascending order.
func (t *Topology) Edges() []Edge {
	out := make([]Edge, 0, len(t.EdgeFaces))
	for e := range t.EdgeFaces {
		out = append(out, e)
	}
	SortEdges(out)
	return out
}

// HasEdge reports whether {a, b} is an edge of the mesh.
func (t *Topology) HasEdge(a, b int) bool {
	_, ok := t.EdgeFaces[MakeEdge(a, b)]
	return ok
}

// IsBoundary reports whether e has exactly one incident face.
func (t *Topology) IsBoundary(e Edge) bool {
	return len(t.EdgeFaces[e]) == 1
}

// BoundaryEdges returns all edges with one incident face, sorted.
func (t *Topology) BoundaryEdges() []Edge {
	var out []Edge
	for e, fs := range t.EdgeFaces {
		if len(fs) == 1 {
			out = append(out, e)
		}
	}
	SortEdges(out)
	return out
}

// NonManifoldEdges returns edges shared by more than two faces, sorted.
func (t *Topology) NonManifoldEdges() []Edge {
	var out []Edge
	for e, fs := range t.EdgeFaces {
		if len(fs) > 2 {
			out = append(out, e)
		}
	}
	SortEdges(out)
	return out
}

// BoundaryVertices returns a membership mask of vertices on a boundary edge.
func (t *Topology) BoundaryVertices() []bool {
	mask := make([]bool, len(t.Adjacency))
	for e, fs := range t.EdgeFaces {
		if len(fs) == 1 {
			mask[e.V0] = true
			mask[e.V1] = true
		}
	}
	return mask
}

// FaceNeighbors returns the faces sharing an edge with face f, skipping any
// edge for which cut returns true. A nil cut skips nothing. The result is
// ascending and free of duplicates.
func (t *Topology) FaceNeighbors(f int, cut func(Edge) bool) []int {
	face := t.mesh.Faces[f]
	var out []int
	for j := 0; j < 3; j++ {
		e := MakeEdge(face[j], face[(j+1)%3])
		if cut != nil && cut(e) {
			continue
		}
		for _, g := range t.EdgeFaces[e] {
			if g != f {
				out = append(out, g)
			}
		}
	}
	return sortUnique(out)
}

// FaceEdges returns the three canonical edges of face f in corner order
// (v0v1, v1v2, v2v0).
func (t *Topology) FaceEdges(f int) [3]Edge {
	face := t.mesh.Faces[f]
	return [3]Edge{
		MakeEdge(face[0], face[1]),
		MakeEdge(face[1], face[2]),
		MakeEdge(face[2], face[0]),
	}
}

// sortUnique sorts s in place and drops repeated values.
func sortUnique(s []int) []int {
	if len(s) < 2 {
		return s
	}
	sort.Ints(s)
	w := 1
	for r := 1; r < len(s); r++ {
		if s[r] != s[w-1] {
			s[w] = s[r]
			w++
		}
	}
	return s[:w]
}
