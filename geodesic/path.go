// SPDX-License-Identifier: MIT

package geodesic

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvkit/mesh"
)

// Path is a vertex path over mesh edges.
type Path struct {
	// Vertices runs from the source to the target.
	Vertices []int

	// Polyline holds the 3D positions of Vertices.
	Polyline []r3.Vec

	// Length is the field value at the target, the distance the path
	// stands for.
	Length float64

	// PolylineLength is the 3D length of Polyline.
	PolylineLength float64

	// Reached is false when the descent stalled before the source; the
	// source is still the first vertex.
	Reached bool
}

// TracePath walks from target down the field towards source, always to
// the neighbor with the lowest value, provided it improves on the current
// value by more than eps. The walk stops at source, at a vertex with no
// improving neighbor, or after 2·V steps. The path is returned
// source-first; when the walk stalls the source is prepended so that the
// path still starts there.
func (s *Solver) TracePath(field []float64, source, target int, eps float64) (Path, error) {
	if s == nil {
		return Path{}, ErrNilSolver
	}
	return tracePath(s.mesh, s.topo, field, source, target, eps)
}

func tracePath(m *mesh.Mesh, topo *mesh.Topology, field []float64, source, target int, eps float64) (Path, error) {
	if len(field) != len(m.Vertices) {
		return Path{}, fmt.Errorf("%w: %d values, %d vertices", ErrFieldLength, len(field), len(m.Vertices))
	}
	if err := m.CheckVertex(source); err != nil {
		return Path{}, fmt.Errorf("geodesic: source: %w", err)
	}
	if err := m.CheckVertex(target); err != nil {
		return Path{}, fmt.Errorf("geodesic: target: %w", err)
	}
	if !(eps >= 0) {
		return Path{}, fmt.Errorf("%w (%v)", ErrBadEpsilon, eps)
	}

	walk := []int{target}
	cur := target
	for steps := 0; cur != source && steps < 2*len(m.Vertices); steps++ {
		next, best := -1, field[cur]-eps
		for _, nb := range topo.Adjacency[cur] {
			if field[nb] < best {
				next, best = nb, field[nb]
			}
		}
		if next < 0 {
			break
		}
		walk = append(walk, next)
		cur = next
	}

	p := Path{Length: field[target], Reached: cur == source}
	if !p.Reached {
		walk = append(walk, source)
	}
	p.Vertices = make([]int, len(walk))
	p.Polyline = make([]r3.Vec, len(walk))
	for i, v := range walk {
		j := len(walk) - 1 - i
		p.Vertices[j] = v
		p.Polyline[j] = m.Vertices[v]
	}
	for i := 1; i < len(p.Polyline); i++ {
		p.PolylineLength += r3.Norm(r3.Sub(p.Polyline[i], p.Polyline[i-1]))
	}
	return p, nil
}
