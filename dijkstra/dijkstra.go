// SPDX-License-Identifier: MIT

package dijkstra

import (
	"container/heap"
	"fmt"
	"math"
)

// ShortestPaths computes shortest distances from the nearest of sources to
// every node in [0, n).
//
// Preconditions and validation (in order):
//  1. arcs must be non-nil (ErrNilArcs).
//  2. Options must be valid (ErrBadMaxDistance, ErrBadInfThreshold).
//  3. sources must be non-empty and in range (ErrNoSources, ErrSourceOutOfRange).
//  4. Every relaxed arc must have a non-negative weight (ErrNegativeWeight).
//
// Complexity:
//
//   - Time:  O((n + E) log n)
//   - Space: O(n + E) with lazy decrease-key.
func ShortestPaths(n int, arcs ArcFunc, sources []int, opts ...Option) (*Result, error) {
	if arcs == nil {
		return nil, ErrNilArcs
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	for _, s := range sources {
		if s < 0 || s >= n {
			return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrSourceOutOfRange, s, n)
		}
	}

	r := &runner{
		arcs:    arcs,
		options: cfg,
		res: &Result{
			Dist: make([]float64, n),
			Prev: make([]int, n),
		},
		visited: make([]bool, n),
		pq:      make(nodePQ, 0, n),
	}
	r.init(sources)
	if err := r.process(); err != nil {
		return nil, err
	}

	return r.res, nil
}

// runner holds the mutable state for a single execution.
type runner struct {
	arcs    ArcFunc
	options Options
	res     *Result
	visited []bool
	pq      nodePQ
}

// init sets every distance to +Inf and seeds the heap with the sources at 0.
func (r *runner) init(sources []int) {
	for v := range r.res.Dist {
		r.res.Dist[v] = math.Inf(1)
		r.res.Prev[v] = -1
	}
	heap.Init(&r.pq)
	for _, s := range sources {
		if r.res.Dist[s] == 0 {
			continue
		}
		r.res.Dist[s] = 0
		heap.Push(&r.pq, &nodeItem{id: s, dist: 0})
	}
}

// process repeatedly extracts the closest unfinalized node and relaxes its
// arcs, stopping when the heap empties or MaxDistance is exceeded.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id
		// stale entry
		if r.visited[u] {
			continue
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.visited[u] = true
		if err := r.relax(u); err != nil {
			return err
		}
	}

	return nil
}

// relax examines each arc leaving u. Arcs at or above InfEdgeThreshold
// are walls.
func (r *runner) relax(u int) error {
	n := len(r.res.Dist)
	for _, a := range r.arcs(u) {
		if a.To < 0 || a.To >= n {
			continue
		}
		if !(a.Weight >= 0) {
			return fmt.Errorf("%w: arc %d→%d weight=%v", ErrNegativeWeight, u, a.To, a.Weight)
		}
		if a.Weight >= r.options.InfEdgeThreshold {
			continue
		}
		nd := r.res.Dist[u] + a.Weight
		if nd > r.options.MaxDistance || nd >= r.res.Dist[a.To] {
			continue
		}
		r.res.Dist[a.To] = nd
		r.res.Prev[a.To] = u
		heap.Push(&r.pq, &nodeItem{id: a.To, dist: nd})
	}

	return nil
}

// nodeItem is a heap entry: a node and its tentative distance.
type nodeItem struct {
	id   int
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by dist, ties by id.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].id < pq[j].id
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
