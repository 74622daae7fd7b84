// SPDX-License-Identifier: MIT

package mesh

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an indexed triangle mesh.
//
// Vertices holds 3D positions; Faces holds counter-clockwise index triples
// into Vertices. The zero value is an empty (degenerate) mesh.
type Mesh struct {
	Vertices []r3.Vec
	Faces    [][3]int
}

// New wraps vertices and faces into a validated Mesh.
// The slices are not copied; the caller must not mutate them afterwards.
func New(vertices []r3.Vec, faces [][3]int) (*Mesh, error) {
	m := &Mesh{Vertices: vertices, Faces: faces}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate checks that the mesh is non-empty and every face index is in range.
func (m *Mesh) Validate() error {
	if m == nil || len(m.Vertices) == 0 || len(m.Faces) == 0 {
		return fmt.Errorf("mesh: %d vertices, %d faces: %w", m.NumVertices(), m.NumFaces(), ErrDegenerateMesh)
	}
	n := len(m.Vertices)
	for fi, f := range m.Faces {
		for _, v := range f {
			if v < 0 || v >= n {
				return fmt.Errorf("mesh: face %d references vertex %d (have %d): %w", fi, v, n, ErrOutOfRange)
			}
		}
	}

	return nil
}

// NumVertices returns len(Vertices); nil-safe.
func (m *Mesh) NumVertices() int {
	if m == nil {
		return 0
	}
	return len(m.Vertices)
}

// NumFaces returns len(Faces); nil-safe.
func (m *Mesh) NumFaces() int {
	if m == nil {
		return 0
	}
	return len(m.Faces)
}

// CheckVertex returns ErrOutOfRange unless 0 <= v < NumVertices().
func (m *Mesh) CheckVertex(v int) error {
	if v < 0 || v >= m.NumVertices() {
		return fmt.Errorf("mesh: vertex %d (have %d): %w", v, m.NumVertices(), ErrOutOfRange)
	}
	return nil
}

// CheckFace returns ErrOutOfRange unless 0 <= f < NumFaces().
func (m *Mesh) CheckFace(f int) error {
	if f < 0 || f >= m.NumFaces() {
		return fmt.Errorf("mesh: face %d (have %d): %w", f, m.NumFaces(), ErrOutOfRange)
	}
	return nil
}

// Edge is an undirected vertex pair stored as (min, max) so it can be used
// directly as a map key.
type Edge struct {
	V0, V1 int
}

// MakeEdge returns the canonical Edge for the pair {a, b}.
func MakeEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{V0: a, V1: b}
}

// Less orders edges lexicographically by (V0, V1).
func (e Edge) Less(o Edge) bool {
	return e.V0 < o.V0 || (e.V0 == o.V0 && e.V1 < o.V1)
}

// Other returns the endpoint opposite to v, or -1 when v is not on e.
func (e Edge) Other(v int) int {
	switch v {
	case e.V0:
		return e.V1
	case e.V1:
		return e.V0
	default:
		return -1
	}
}

// String formats the edge as "(v0,v1)".
func (e Edge) String() string { return fmt.Sprintf("(%d,%d)", e.V0, e.V1) }

// EdgeSet is a set of canonical edges.
type EdgeSet map[Edge]struct{}

// NewEdgeSet returns a set holding the given edges.
func NewEdgeSet(edges ...Edge) EdgeSet {
	s := make(EdgeSet, len(edges))
	for _, e := range edges {
		s[e] = struct{}{}
	}
	return s
}

// Add inserts e.
func (s EdgeSet) Add(e Edge) { s[e] = struct{}{} }

// Has reports whether e is in the set. A nil set contains nothing.
func (s EdgeSet) Has(e Edge) bool {
	_, ok := s[e]
	return ok
}

// Len returns the number of edges.
func (s EdgeSet) Len() int { return len(s) }

// Sorted returns the edges in ascending (V0, V1) order.
func (s EdgeSet) Sorted() []Edge {
	out := make([]Edge, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	SortEdges(out)
	return out
}

// SortEdges sorts edges in place by (V0, V1).
func SortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool { return edges[i].Less(edges[j]) })
}
