// SPDX-License-Identifier: MIT

// Package lscm computes least-squares conformal maps.
//
// Every triangle is laid out in its own plane; the conformal residual of a
// triangle with local corners z_j = x_j + i·y_j and unknown UVs
// w_j = u_j + i·v_j is
//
//	r_T = Σ_j (z_{j+2} - z_{j+1}) · w_j / sqrt(2·A_T),
//
// which vanishes exactly when the map is a similarity on T. Unwrap
// minimizes Σ |r_T|² with two boundary vertices pinned to (0,0) and (1,0),
// solving the symmetric positive-definite normal equations with package
// sparse, and finally normalizes each UV axis into [0,1] unless
// WithNormalize(false) keeps the raw layout.
//
// Relax refines any layout with as-rigid-as-possible rounds: a local step
// fits the closest rotation of every triangle, and a global step solves a
// cotangent Laplacian system that is factorized once. Unwrap applies it
// when WithRelax is given.
//
// The mesh must have a boundary. A closed mesh yields a degraded
// uv.Result whose Reason is mesh.ErrNoBoundaryFound; it is not an error.
package lscm
