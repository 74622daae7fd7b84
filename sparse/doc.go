// SPDX-License-Identifier: MIT

// Package sparse provides the small sparse linear-algebra kernel used by the
// parameterization solvers: an immutable CSR matrix assembled from triplets,
// the products and sums the cotangent and Hessian operators need, and a
// Factorize entry point for symmetric positive-definite systems.
//
// What:
//
//   - Triplets → CSR with duplicate summation (O(nnz log nnz)).
//   - MulVec, Transpose, Scale, ScaleRows, Mul, Add, Gram.
//   - Factorize: gonum dense Cholesky for n ≤ DenseLimit, otherwise
//     Jacobi-preconditioned conjugate gradients. Both return a Factor whose
//     Solve may be called any number of times.
//
// Errors:
//
//   - ErrBadShape, ErrOutOfRange, ErrDimensionMismatch, ErrNonSquare for
//     structural misuse.
//   - ErrAsymmetry, ErrNotPositiveDefinite, ErrNotConverged, ErrNaNInf for
//     numerical failures; all of them wrap mesh.ErrSolverFailure.
//   - ErrOptionViolation for invalid options (wraps mesh.ErrInvalidParameter).
//
// Every error is wrapped with an operation tag ("Factorize: ...") and stays
// matchable with errors.Is.
package sparse
