// SPDX-License-Identifier: MIT

package bfs

import (
	"fmt"
	"sort"
)

// walker encapsulates mutable BFS state. depth doubles as the visited set
// so Components can reuse one walker across seeds.
type walker struct {
	n         int
	neighbors NeighborFunc
	opts      Options
	queue     []int
	res       *Result
}

func newWalker(n int, neighbors NeighborFunc, o Options) *walker {
	w := &walker{
		n:         n,
		neighbors: neighbors,
		opts:      o,
		queue:     make([]int, 0, n),
		res: &Result{
			Order:  make([]int, 0, n),
			Depth:  make([]int, n),
			Parent: make([]int, n),
		},
	}
	for v := 0; v < n; v++ {
		w.res.Depth[v] = -1
		w.res.Parent[v] = -1
	}
	return w
}

// Walk runs breadth-first search over nodes [0, n) from start.
//
// Neighbors are enqueued in the order the NeighborFunc returns them, so the
// visit sequence is reproducible for a deterministic NeighborFunc.
//
// Errors: ErrNilNeighbors, ErrStartOutOfRange, ErrOptionViolation,
// ctx.Err() on cancellation, or a wrapped OnVisit error.
//
// Complexity: O(n + E) time, O(n) memory.
func Walk(n, start int, neighbors NeighborFunc, opts ...Option) (*Result, error) {
	if neighbors == nil {
		return nil, ErrNilNeighbors
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if start < 0 || start >= n {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrStartOutOfRange, start, n)
	}

	w := newWalker(n, neighbors, o)
	w.enqueue(start, 0, -1)

	return w.res, w.loop()
}

// Components partitions the nodes accepted by include (nil accepts all)
// into connected components. Each component is sorted ascending and the
// components are ordered by their smallest node. Neighbors rejected by
// include are not crossed.
//
// Complexity: O(n + E).
func Components(n int, neighbors NeighborFunc, include func(v int) bool) ([][]int, error) {
	if neighbors == nil {
		return nil, ErrNilNeighbors
	}
	if include == nil {
		include = func(int) bool { return true }
	}
	o := DefaultOptions()
	o.FilterNeighbor = func(_, nbr int) bool { return include(nbr) }
	w := newWalker(n, neighbors, o)

	var comps [][]int
	for seed := 0; seed < n; seed++ {
		if w.res.Depth[seed] >= 0 || !include(seed) {
			continue
		}
		from := len(w.res.Order)
		w.enqueue(seed, 0, -1)
		if err := w.loop(); err != nil {
			return nil, err
		}
		comp := append([]int(nil), w.res.Order[from:]...)
		sort.Ints(comp)
		comps = append(comps, comp)
	}

	return comps, nil
}

// enqueue marks v visited at depth d, calls OnEnqueue, records its parent,
// and adds it to the queue.
func (w *walker) enqueue(v, d, parent int) {
	w.res.Depth[v] = d
	w.res.Parent[v] = parent
	w.opts.OnEnqueue(v, d)
	w.queue = append(w.queue, v)
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		v := w.queue[0]
		w.queue = w.queue[1:]
		d := w.res.Depth[v]
		w.res.Order = append(w.res.Order, v)
		if err := w.opts.OnVisit(v, d); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %d: %w", v, err)
		}
		w.enqueueNeighbors(v, d)
	}
	return nil
}

// enqueueNeighbors applies filtering and MaxDepth, and enqueues each unseen neighbor.
func (w *walker) enqueueNeighbors(v, d int) {
	next := d + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return
	}
	for _, nbr := range w.neighbors(v) {
		if nbr < 0 || nbr >= w.n || w.res.Depth[nbr] >= 0 {
			continue
		}
		if !w.opts.FilterNeighbor(v, nbr) {
			continue
		}
		w.enqueue(nbr, next, v)
	}
}
