// SPDX-License-Identifier: MIT

// Package mesh defines the triangle mesh value consumed by every uvkit
// algorithm, the canonical Edge key, and Topology: the single edge→faces
// and vertex-adjacency index built once per mesh.
//
// A Mesh is an ordered slice of 3D positions plus an ordered slice of
// index triples. The caller owns it; uvkit never mutates it.
//
// Topology answers the two questions every later stage asks:
//
//	which faces share this edge?          Topology.EdgeFaces
//	which vertices neighbor this vertex?  Topology.Adjacency
//
// An edge with one incident face is a boundary edge, two is a manifold
// interior edge, more than two is non-manifold. Non-manifold edges are
// treated as interior for adjacency purposes and are reported through
// Topology.NonManifoldEdges as a data-quality concern.
//
// Complexity:
//   - NewTopology: O(F) expected time, O(F) space.
//   - BoundaryLoops: O(boundary edges).
//
// Errors:
//
//	ErrDegenerateMesh   - empty vertex or face arrays.
//	ErrOutOfRange       - face index outside [0, len(Vertices)).
package mesh
