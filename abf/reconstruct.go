// SPDX-License-Identifier: MIT

package abf

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/uvkit/bfs"
	"github.com/katalvlaran/uvkit/mesh"
)

// ErrAngleCount is returned when the angle array does not hold three
// entries per face.
var ErrAngleCount = fmt.Errorf("abf: angle count must be 3 per face: %w", mesh.ErrInvalidParameter)

// Reconstruct lays out the vertices of the mesh behind topo from corner
// angles indexed like Angles.Values.
//
// Each connected face component is seeded at its smallest face: corner 0
// at the origin, corner 1 on +x at its 3D distance, corner 2 by the law of
// sines. Faces are then visited breadth-first; each one has exactly one
// vertex left to place, found by turning the shared edge counter-clockwise
// by the optimized angle at its first vertex. Components are laid side by
// side along +x. A vertex shared by two components keeps the position from
// the later one.
//
// Complexity: O(F + V).
func Reconstruct(topo *mesh.Topology, angles []float64) ([]r2.Vec, error) {
	if topo == nil {
		return nil, fmt.Errorf("abf: nil topology: %w", mesh.ErrInvalidParameter)
	}
	m := topo.Mesh()
	if len(angles) != 3*len(m.Faces) {
		return nil, fmt.Errorf("%w: got %d for %d faces", ErrAngleCount, len(angles), len(m.Faces))
	}
	neighbors := func(f int) []int { return topo.FaceNeighbors(f, nil) }
	comps, err := bfs.Components(len(m.Faces), neighbors, nil)
	if err != nil {
		return nil, fmt.Errorf("abf: %w", err)
	}

	gap, err := m.MeanEdgeLength()
	if err != nil {
		gap = 0
	}
	pos := make([]r2.Vec, len(m.Vertices))
	stamp := make([]int, len(m.Vertices))
	var right float64
	for ci, comp := range comps {
		id := ci + 1
		placeSeed(m, comp[0], angles, pos)
		for _, v := range m.Faces[comp[0]] {
			stamp[v] = id
		}
		place := func(f, _ int) error {
			placeFace(m, f, angles, pos, stamp, id)
			return nil
		}
		if _, err := bfs.Walk(len(m.Faces), comp[0], neighbors, bfs.WithOnVisit(place)); err != nil {
			return nil, fmt.Errorf("abf: %w", err)
		}

		verts := m.FaceVertices(comp)
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, v := range verts {
			lo, hi = math.Min(lo, pos[v].X), math.Max(hi, pos[v].X)
		}
		if ci > 0 {
			shift := right + gap - lo
			for _, v := range verts {
				pos[v].X += shift
			}
			hi += shift
		}
		right = hi
	}
	return pos, nil
}

// placeSeed lays out face f in its own frame.
func placeSeed(m *mesh.Mesh, f int, angles []float64, pos []r2.Vec) {
	face := m.Faces[f]
	l01 := m.EdgeLength(mesh.MakeEdge(face[0], face[1]))
	a0, a1 := angles[3*f], angles[3*f+1]
	l02 := m.EdgeLength(mesh.MakeEdge(face[0], face[2]))
	if s := math.Sin(a0 + a1); s > 1e-12 {
		l02 = l01 * math.Sin(a1) / s
	}
	pos[face[0]] = r2.Vec{}
	pos[face[1]] = r2.Vec{X: l01}
	pos[face[2]] = r2.Vec{X: l02 * math.Cos(a0), Y: l02 * math.Sin(a0)}
}

// placeFace positions the single vertex of f not yet stamped with id.
func placeFace(m *mesh.Mesh, f int, angles []float64, pos []r2.Vec, stamp []int, id int) {
	face := m.Faces[f]
	k := -1
	for j, v := range face {
		if stamp[v] != id {
			if k >= 0 {
				return
			}
			k = j
		}
	}
	if k < 0 {
		return
	}
	p, q, v := face[(k+1)%3], face[(k+2)%3], face[k]
	dir := r2.Sub(pos[q], pos[p])
	if n := r2.Norm(dir); n > 0 {
		dir = r2.Scale(1/n, dir)
	} else {
		dir = r2.Vec{X: 1}
	}
	theta := angles[3*f+(k+1)%3]
	rot := r2.Vec{
		X: dir.X*math.Cos(theta) - dir.Y*math.Sin(theta),
		Y: dir.X*math.Sin(theta) + dir.Y*math.Cos(theta),
	}
	pos[v] = r2.Add(pos[p], r2.Scale(m.EdgeLength(mesh.MakeEdge(p, v)), rot))
	stamp[v] = id
}
