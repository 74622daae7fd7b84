// SPDX-License-Identifier: MIT

// Package geodesic computes approximate geodesic distance on triangle
// meshes with the heat method.
//
// Prepare builds the cotangent Laplacian L, the lumped mass matrix M and
// the per-face gradient operator G, then factorizes two SPD systems once:
//
//	heat:    M + t·L,          t = max(1e-7, scale·h̄²)
//	Poisson: L + 1e-8·M
//
// where h̄ is the mean edge length. Distance then diffuses an indicator of
// the sources for time t, normalizes the negated gradient of the result
// per face, and recovers the potential φ whose gradient best fits that
// unit field. φ is shifted so that its minimum is 0.
//
// A prepared *Solver is immutable. Distance and TracePath only read it,
// so one Solver may serve concurrent callers. Re-preparing with another
// time scale returns a new Solver.
//
// EdgeGraphDistance is a Dijkstra baseline along mesh edges. It
// overestimates the surface distance but is exact on edge paths, which
// makes it a useful reference in tests.
package geodesic
