// SPDX-License-Identifier: MIT

// Package abf flattens a mesh by angle-based flattening.
//
// The unknowns are the 3F corner angles. Starting from the 3D ("natural")
// angles, Optimize minimizes
//
//	E(α) = Σ (α_i - β_i)² / β_i
//
// subject to one row per face (corner angles sum to π) and one row per
// vertex (incident angles sum to 2π, or π on the boundary). Each iteration
// takes a penalty Newton step
//
//	(H + λ·CᵀC)·Δ = -∇E - λ·Cᵀ(C·α - b),    H = diag(2/β),
//
// applies it in full and clamps every angle into (ε, π-ε). The iteration
// stops when the largest constraint violation or the change of E falls
// below the tolerance. The system matrix does not depend on α, so it is
// factorized once per call.
//
// Reconstruct turns angles back into positions: it lays out one seed face
// per connected component and then walks the face adjacency breadth-first,
// placing each new vertex by rotating the shared edge by the optimized
// corner angle and scaling it by the 3D edge length. Closure is not
// enforced, so error accumulates along long walks.
//
// Unwrap chains both steps and reports an optimizer that ran out of
// iterations as a degraded uv.Result carrying mesh.ErrNonConvergence.
package abf
