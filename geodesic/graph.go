// SPDX-License-Identifier: MIT

package geodesic

import (
	"fmt"

	"github.com/katalvlaran/uvkit/dijkstra"
	"github.com/katalvlaran/uvkit/mesh"
)

// EdgeGraphDistance returns the shortest distance along mesh edges from
// the nearest of sources to every vertex, weighting each edge by its 3D
// length. Unreachable vertices get +Inf.
//
// Complexity: O((V + E) log V).
func EdgeGraphDistance(topo *mesh.Topology, sources []int) ([]float64, error) {
	if topo == nil {
		return nil, fmt.Errorf("geodesic: nil topology: %w", mesh.ErrInvalidParameter)
	}
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	m := topo.Mesh()
	arcs := func(v int) []dijkstra.Arc {
		out := make([]dijkstra.Arc, len(topo.Adjacency[v]))
		for i, w := range topo.Adjacency[v] {
			out[i] = dijkstra.Arc{To: w, Weight: m.EdgeLength(mesh.MakeEdge(v, w))}
		}
		return out
	}
	res, err := dijkstra.ShortestPaths(len(m.Vertices), arcs, sources)
	if err != nil {
		return nil, fmt.Errorf("geodesic: %w", err)
	}
	return res.Dist, nil
}

// EdgePath traces the descent path of an EdgeGraphDistance-style field
// computed on topo without a prepared Solver.
func EdgePath(topo *mesh.Topology, field []float64, source, target int, eps float64) (Path, error) {
	if topo == nil {
		return Path{}, fmt.Errorf("geodesic: nil topology: %w", mesh.ErrInvalidParameter)
	}
	return tracePath(topo.Mesh(), topo, field, source, target, eps)
}
