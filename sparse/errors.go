// SPDX-License-Identifier: MIT

package sparse

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/uvkit/mesh"
)

// Sentinels for the sparse package. Every message is prefixed "sparse:".
// Numerical failures wrap mesh.ErrSolverFailure and invalid indices wrap
// mesh.ErrOutOfRange, so callers may branch on either level with errors.Is.
var (
	// ErrBadShape is returned when rows or cols is negative.
	ErrBadShape = errors.New("sparse: invalid shape")

	// ErrOutOfRange indicates a row or column index outside the matrix.
	ErrOutOfRange = fmt.Errorf("sparse: index out of range: %w", mesh.ErrOutOfRange)

	// ErrDimensionMismatch indicates incompatible operand dimensions.
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrNonSquare signals a square matrix was required.
	ErrNonSquare = errors.New("sparse: matrix is not square")

	// ErrAsymmetry signals a symmetric matrix was required.
	ErrAsymmetry = fmt.Errorf("sparse: matrix is not symmetric within eps: %w", mesh.ErrSolverFailure)

	// ErrNotPositiveDefinite signals a Cholesky or CG breakdown on a matrix
	// that is singular or indefinite.
	ErrNotPositiveDefinite = fmt.Errorf("sparse: matrix is not positive definite: %w", mesh.ErrSolverFailure)

	// ErrNotConverged signals the iterative back end exhausted its budget.
	ErrNotConverged = fmt.Errorf("sparse: iterative solve did not converge: %w", mesh.ErrSolverFailure)

	// ErrNaNInf signals a non-finite value in a solution.
	ErrNaNInf = fmt.Errorf("sparse: NaN or Inf encountered: %w", mesh.ErrSolverFailure)

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = fmt.Errorf("sparse: invalid option supplied: %w", mesh.ErrInvalidParameter)
)

// Operation tags for uniform error wrapping.
const (
	opCSR       = "CSR"
	opMulVec    = "MulVec"
	opMul       = "Mul"
	opAdd       = "Add"
	opScaleRows = "ScaleRows"
	opFactorize = "Factorize"
	opSolve     = "Solve"
)

// sparseErrorf wraps a non-nil err with an operation tag.
func sparseErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
