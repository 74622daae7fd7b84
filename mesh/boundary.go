// SPDX-License-Identifier: MIT

package mesh

import "sort"

// BoundaryLoops returns every boundary loop as an ordered cycle of vertex
// indices. Each loop follows the orientation of its incident faces and does
// not repeat its first vertex at the end. Loops are ordered by their first
// directed boundary edge, so the output is deterministic for a given mesh.
//
// On a closed mesh the result is empty.
//
// Complexity: O(B log B) for B boundary edges.
func (t *Topology) BoundaryLoops() [][]int {
	type halfEdge struct{ from, to int }

	var half []halfEdge
	for e, fs := range t.EdgeFaces {
		if len(fs) != 1 {
			continue
		}
		face := t.mesh.Faces[fs[0]]
		for j := 0; j < 3; j++ {
			a, b := face[j], face[(j+1)%3]
			if MakeEdge(a, b) == e {
				half = append(half, halfEdge{from: a, to: b})
				break
			}
		}
	}
	if len(half) == 0 {
		return nil
	}
	sort.Slice(half, func(i, j int) bool {
		if half[i].from != half[j].from {
			return half[i].from < half[j].from
		}
		return half[i].to < half[j].to
	})

	// outgoing[v] holds indices into half, in sorted order.
	outgoing := make(map[int][]int, len(half))
	for i, h := range half {
		outgoing[h.from] = append(outgoing[h.from], i)
	}
	used := make([]bool, len(half))

	next := func(v int) int {
		for _, i := range outgoing[v] {
			if !used[i] {
				used[i] = true
				return half[i].to
			}
		}
		return -1
	}

	var loops [][]int
	for i, h := range half {
		if used[i] {
			continue
		}
		used[i] = true
		loop := []int{h.from}
		cur := h.to
		for steps := 0; cur != h.from && cur >= 0 && steps < len(half); steps++ {
			loop = append(loop, cur)
			cur = next(cur)
		}
		loops = append(loops, loop)
	}

	return loops
}

// LongestBoundaryLoop returns the boundary loop with the most vertices; ties
// go to the first loop. It returns ErrNoBoundaryFound on a closed mesh.
func (t *Topology) LongestBoundaryLoop() ([]int, error) {
	loops := t.BoundaryLoops()
	if len(loops) == 0 {
		return nil, ErrNoBoundaryFound
	}
	best := loops[0]
	for _, l := range loops[1:] {
		if len(l) > len(best) {
			best = l
		}
	}
	return best, nil
}
