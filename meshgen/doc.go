// SPDX-License-Identifier: MIT

// Package meshgen builds deterministic triangle meshes used as fixtures in
// tests, examples and benchmarks.
//
// Constructors:
//
//   - Planar: UnitSquare, Grid, SymmetricGrid, Triangle.
//   - Closed solids: Platonic(Tetrahedron | Octahedron | Icosahedron).
//   - Curved open surfaces: Cylinder (two boundary loops) and Hemisphere
//     (one boundary loop).
//   - Perturbation: Jitter, driven by a seeded RNG (WithSeed / WithRand).
//
// Guarantees:
//
//   - Faces are counter-clockwise when seen from outside (or from +Z for the
//     planar meshes), so face normals point outward.
//   - Vertex and face order is stable for given parameters.
//   - Parameter violations return ErrTooFewVertices or ErrInvalidSize
//     (both wrap mesh.ErrInvalidParameter); constructors never panic at
//     runtime. Option constructors panic on nil arguments.
package meshgen
