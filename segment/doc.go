// SPDX-License-Identifier: MIT

// Package segment cuts a triangle mesh into UV islands.
//
// Every strategy has the same two stages:
//
//  1. Detect a set of cut edges (feature angle, mean or Gaussian curvature,
//     a symmetry plane, texture flow, or an explicit detail region).
//  2. Partition: flood-fill faces across non-cut edges of a mesh.Topology.
//     Each connected component becomes one UVIsland.
//
// The islands returned by every function in this package form a partition
// of the face set: pairwise disjoint, covering every face, ordered by their
// smallest face index. VerifyPartition checks this property.
//
// Edge loops are ordered walks over a cut-edge set (TraceLoops). They feed
// seam consumers and SegmentByEdgeLoops; FeatureVertexSet returns the bare
// vertex set of a cut-edge set when no ordering is needed.
//
// All functions run in time linear in the number of faces and edges up to
// a sort, never block and never retry.
package segment
