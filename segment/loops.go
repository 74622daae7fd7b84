// SPDX-License-Identifier: MIT

package segment

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/uvkit/mesh"
)

// Loop is an ordered walk over cut edges. A closed loop does not repeat
// its first vertex; its last vertex connects back to the first.
type Loop struct {
	Vertices []int
	Closed   bool
}

// Edges returns the edges walked by l: consecutive vertex pairs, plus the
// closing pair when l is closed.
func (l Loop) Edges() []mesh.Edge {
	n := len(l.Vertices)
	if n < 2 {
		return nil
	}
	out := make([]mesh.Edge, 0, n)
	for i := 0; i+1 < n; i++ {
		out = append(out, mesh.MakeEdge(l.Vertices[i], l.Vertices[i+1]))
	}
	if l.Closed && n > 2 {
		out = append(out, mesh.MakeEdge(l.Vertices[n-1], l.Vertices[0]))
	}
	return out
}

// LoopEdges collects the edges of every loop.
func LoopEdges(loops []Loop) mesh.EdgeSet {
	s := mesh.NewEdgeSet()
	for _, l := range loops {
		for _, e := range l.Edges() {
			s.Add(e)
		}
	}
	return s
}

// TraceLoops walks edges into loops. Starting from each unvisited edge in
// the given order, the walk repeatedly leaves the current vertex through
// its first unvisited incident edge, and stops when it returns to its
// start vertex (closed loop), finds no unvisited edge (open loop), or has
// taken maxSteps steps. maxSteps <= 0 means no bound beyond the edge count.
//
// Every input edge ends up in exactly one loop, so LoopEdges of the result
// equals the input set.
//
// Complexity: O(E·d) for maximum vertex degree d in the edge set.
func TraceLoops(edges []mesh.Edge, maxSteps int) []Loop {
	if len(edges) == 0 {
		return nil
	}
	incident := make(map[int][]int, 2*len(edges))
	for i, e := range edges {
		incident[e.V0] = append(incident[e.V0], i)
		incident[e.V1] = append(incident[e.V1], i)
	}
	visited := make([]bool, len(edges))

	var loops []Loop
	for i, e := range edges {
		if visited[i] {
			continue
		}
		visited[i] = true
		start, cur := e.V0, e.V1
		l := Loop{Vertices: []int{start}}
		for steps := 1; ; steps++ {
			if cur == start {
				l.Closed = true
				break
			}
			l.Vertices = append(l.Vertices, cur)
			if maxSteps > 0 && steps >= maxSteps {
				break
			}
			next := -1
			for _, j := range incident[cur] {
				if !visited[j] {
					next = j
					break
				}
			}
			if next < 0 {
				break
			}
			visited[next] = true
			cur = edges[next].Other(cur)
		}
		loops = append(loops, l)
	}

	return loops
}

// FeatureVertexSet returns the sorted vertices touched by edges. It is the
// unordered fallback of DetectEdgeLoops for consumers that need only the
// seam vertices.
func FeatureVertexSet(edges mesh.EdgeSet) []int {
	seen := make(map[int]struct{}, 2*edges.Len())
	for e := range edges {
		seen[e.V0] = struct{}{}
		seen[e.V1] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// SegmentByEdgeLoops cuts along every edge walked by loops and partitions
// the mesh. Loop pairs that are not mesh edges are ignored. No loops gives
// a single island.
func SegmentByEdgeLoops(topo *mesh.Topology, loops []Loop) ([]UVIsland, error) {
	if err := checkTopology(topo); err != nil {
		return nil, fmt.Errorf("%s: %w", methodEdgeLoops, err)
	}
	m := topo.Mesh()
	for k, l := range loops {
		for _, v := range l.Vertices {
			if err := m.CheckVertex(v); err != nil {
				return nil, fmt.Errorf("%s: loop %d: %w", methodEdgeLoops, k, err)
			}
		}
	}
	return Partition(topo, LoopEdges(loops))
}
