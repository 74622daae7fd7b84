// SPDX-License-Identifier: MIT

// Package uvkit is a pure-Go toolkit for flattening triangle meshes into
// UV space: cutting a surface into islands, unwrapping each island, and
// measuring how much the result distorts the original geometry.
//
// 🚀 What is in the box?
//
//	• Topology: edges, boundary loops, face adjacency, sub-meshes
//	• Segmentation: feature edges, edge loops, curvature, symmetry,
//	  texture flow and detail isolation
//	• Unwrapping: least-squares conformal maps (LSCM) and angle-based
//	  flattening (ABF)
//	• Geodesics: heat-method distance fields and steepest-descent paths
//	• Metrics: area distortion, edge stretch, L2/L∞ stretch norms
//	• Atlas: chart-and-pack with a pluggable generator and parallel
//	  per-island workers
//
// Packages:
//
//	mesh/     — Mesh, Edge, Topology and geometry helpers
//	sparse/   — CSR matrices and SPD factorization (dense Cholesky or PCG)
//	ddg/      — cotangent Laplacian, mass, gradient, divergence, curvature
//	bfs/      — breadth-first walks and connected components over int ids
//	dijkstra/ — shortest paths over int ids
//	segment/  — UVIsland and every segmentation strategy
//	lscm/     — conformal unwrapping
//	abf/      — angle optimization and layout reconstruction
//	geodesic/ — heat-method solver
//	metrics/  — distortion and stretch
//	uv/       — Result, normalization and shelf packing
//	atlas/    — Generator, Builtin, UnwrapIslands
//	config/   — YAML pipeline defaults
//	uvlog/    — package-wide slog logger, silent by default
//	meshgen/  — deterministic test meshes
//
// Quick start:
//
//	m, _ := mesh.New(vertices, faces)
//	res, err := lscm.Unwrap(ctx, m)
//	if err == nil && res.Usable() {
//		use(res.UV)
//	}
//
// Errors are sentinels matched with errors.Is; every package wraps the
// six kinds declared in mesh (ErrDegenerateMesh, ErrNoBoundaryFound,
// ErrOutOfRange, ErrSolverFailure, ErrNonConvergence, ErrInvalidParameter).
// Quality problems that still leave a result, such as a missing boundary
// or an optimizer out of iterations, come back as a uv.Result with a
// non-OK Status and a Reason instead of an error.
package uvkit
