// SPDX-License-Identifier: MIT

// Package dijkstra implements multi-source Dijkstra shortest paths over an
// int-indexed graph with non-negative float64 arc weights.
//
// It processes nodes in order of increasing distance using a min-heap with
// lazy decrease-key: improved distances are pushed as new entries and stale
// entries are skipped on pop.
//
// Within uvkit it provides the edge-graph geodesic baseline: distances along
// mesh edges, an upper bound of the true surface geodesic that the heat
// method is checked against.
//
// Complexity:
//
//   - Time:  O((n + E) log n)
//   - Space: O(n + E)
//
// Options:
//
//   - WithMaxDistance(d):      nodes beyond d are left at +Inf.
//   - WithInfEdgeThreshold(t): arcs with weight ≥ t are impassable.
//
// Errors (sentinel):
//
//   - ErrNilArcs          if the arc function is nil.
//   - ErrNoSources        if no source is given.
//   - ErrSourceOutOfRange if a source is outside [0, n).
//   - ErrNegativeWeight   if a relaxed arc has a negative or NaN weight.
//   - ErrBadMaxDistance, ErrBadInfThreshold for invalid options.
//
// Example usage:
//
//	res, err := dijkstra.ShortestPaths(n, arcs, []int{0})
//	if err != nil {
//	    return err
//	}
//	path, _ := res.PathTo(7)
package dijkstra
