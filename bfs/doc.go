// SPDX-License-Identifier: MIT

// Package bfs provides breadth-first search over an int-indexed graph given
// by a neighbor function, returning hop distances, parent links and visit
// order.
//
// What
//
//   - Walk explores nodes in non-decreasing distance from a start node and
//     returns a Result with Order, Depth and Parent (dense slices, -1 for
//     unreached nodes).
//   - Components flood-fills every node accepted by an include predicate and
//     returns the connected components in a canonical order.
//   - Hooks: OnEnqueue, OnVisit (may abort with an error).
//   - WithFilterNeighbor prunes individual edges; WithMaxDepth bounds depth.
//
// The mesh packages use it for face flood fill across non-cut edges, for
// grouping flagged curvature edges and for the face-order traversal of the
// angle-based layout.
//
// Determinism
//
//	Neighbors are enqueued in the order the NeighborFunc returns them. The
//	mesh topology keeps adjacency lists sorted, so traversals are
//	reproducible.
//
// Complexity (n = nodes, E = edges)
//
//   - Time:   O(n + E)
//   - Memory: O(n)
//
// Errors
//
//   - ErrNilNeighbors      if the neighbor function is nil.
//   - ErrStartOutOfRange   if start is not in [0, n); wraps mesh.ErrOutOfRange.
//   - ErrOptionViolation   if an Option is invalid; wraps mesh.ErrInvalidParameter.
//   - ctx.Err() and wrapped OnVisit errors.
package bfs
