// SPDX-License-Identifier: MIT

package mesh

import "errors"

// Error kinds shared by every uvkit package. Packages wrap these with their
// own context (or define package sentinels that wrap them), so callers can
// always branch with errors.Is(err, mesh.ErrX) regardless of the origin.
//
// Propagation policy:
//   - ErrOutOfRange, ErrInvalidParameter, ErrDegenerateMesh fail fast, before
//     any linear system is assembled.
//   - ErrSolverFailure aborts the current operation; it is never retried.
//   - ErrNoBoundaryFound and ErrNonConvergence are quality failures. They are
//     carried as the Reason of a degraded uv.Result rather than returned.
var (
	// ErrDegenerateMesh reports empty vertex/face arrays or zero-length
	// reference geometry (for example a zero mean edge length).
	ErrDegenerateMesh = errors.New("uvkit: degenerate mesh")

	// ErrNoBoundaryFound reports a closed mesh where an open boundary is required.
	ErrNoBoundaryFound = errors.New("uvkit: no boundary found")

	// ErrOutOfRange reports a vertex, face, source or target index outside valid bounds.
	ErrOutOfRange = errors.New("uvkit: index out of range")

	// ErrSolverFailure reports a sparse factorization or solve that did not succeed.
	ErrSolverFailure = errors.New("uvkit: solver failure")

	// ErrNonConvergence reports an iteration budget exhausted before tolerance was met.
	ErrNonConvergence = errors.New("uvkit: no convergence")

	// ErrInvalidParameter reports a non-positive time scale, tolerance,
	// iteration budget or another nonsensical option value.
	ErrInvalidParameter = errors.New("uvkit: invalid parameter")
)
