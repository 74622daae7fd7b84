// SPDX-License-Identifier: MIT

package sparse

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/uvkit/uvlog"
)

// Factor is a prepared solver for one symmetric positive-definite matrix.
// Implementations are immutable after Factorize and safe for concurrent Solve.
type Factor interface {
	// Dim returns the dimension n of the factorized n×n matrix.
	Dim() int

	// Solve returns x with A·x = b. b is not modified.
	Solve(b []float64) ([]float64, error)
}

// Factorize prepares a solver for the symmetric positive-definite matrix a.
//
// Implementation:
//   - Stage 1: validate options, squareness and symmetry.
//   - Stage 2: pick the back end (dense Cholesky for n <= DenseLimit under
//     MethodAuto, otherwise Jacobi-preconditioned CG).
//   - Stage 3: factorize, checking ctx before and after the O(n³) step.
//
// ctx is the wall-clock cutoff of the preparation step: a cancelled or
// expired context aborts with ctx.Err(). The dense Cholesky itself is not
// interruptible; ctx is observed before and after it, so a late
// cancellation returns once the O(n³) step ends. DenseLimit keeps that
// step short under MethodAuto.
//
// Errors:
//   - ErrOptionViolation, ErrNonSquare, ErrAsymmetry.
//   - ErrNotPositiveDefinite when a non-positive pivot or diagonal is met.
//   - ctx.Err() on cancellation.
func Factorize(ctx context.Context, a *CSR, opts ...Option) (Factor, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return nil, sparseErrorf(opFactorize, err)
	}
	if a.r != a.c {
		return nil, sparseErrorf(opFactorize, fmt.Errorf("%dx%d: %w", a.r, a.c, ErrNonSquare))
	}
	if !a.IsSymmetric(o.SymmetryEps) {
		return nil, sparseErrorf(opFactorize, ErrAsymmetry)
	}
	if err = ctx.Err(); err != nil {
		return nil, sparseErrorf(opFactorize, err)
	}

	method := o.Method
	if method == MethodAuto {
		method = MethodDense
		if a.r > o.DenseLimit {
			method = MethodCG
		}
	}
	uvlog.Logger().Debug("sparse: factorize", "n", a.r, "nnz", a.NNZ(), "method", method.String())

	var f Factor
	switch method {
	case MethodCG:
		f, err = newPCG(a, o)
	default:
		f, err = newDenseCholesky(a)
	}
	if err != nil {
		return nil, sparseErrorf(opFactorize, err)
	}
	if err = ctx.Err(); err != nil {
		return nil, sparseErrorf(opFactorize, err)
	}

	return f, nil
}

// denseCholesky wraps gonum's dense Cholesky factorization.
type denseCholesky struct {
	n    int
	chol mat.Cholesky
}

func newDenseCholesky(a *CSR) (*denseCholesky, error) {
	n := a.r
	if n == 0 {
		return &denseCholesky{}, nil
	}
	sym, err := a.ToSymDense()
	if err != nil {
		return nil, err
	}
	d := &denseCholesky{n: n}
	if ok := d.chol.Factorize(sym); !ok {
		return nil, ErrNotPositiveDefinite
	}
	return d, nil
}

func (d *denseCholesky) Dim() int { return d.n }

func (d *denseCholesky) Solve(b []float64) ([]float64, error) {
	if len(b) != d.n {
		return nil, sparseErrorf(opSolve, fmt.Errorf("len(b)=%d, n=%d: %w", len(b), d.n, ErrDimensionMismatch))
	}
	if d.n == 0 {
		return nil, nil
	}
	x := mat.NewVecDense(d.n, nil)
	rhs := mat.NewVecDense(d.n, append([]float64(nil), b...))
	if err := d.chol.SolveVecTo(x, rhs); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, sparseErrorf(opSolve, fmt.Errorf("%v: %w", err, ErrNotPositiveDefinite))
		}
		// Ill-conditioned but solved; the caller checks finiteness below.
		uvlog.Logger().Debug("sparse: ill-conditioned solve", "condition", float64(cond))
	}
	out := x.RawVector().Data
	if !allFinite(out) {
		return nil, sparseErrorf(opSolve, ErrNaNInf)
	}
	return out, nil
}

// pcg is a Jacobi-preconditioned conjugate gradient solver.
type pcg struct {
	a       *CSR
	invDiag []float64
	maxIter int
	tol     float64
}

func newPCG(a *CSR, o Options) (*pcg, error) {
	diag := a.Diagonal()
	inv := make([]float64, len(diag))
	for i, d := range diag {
		if !(d > 0) {
			return nil, fmt.Errorf("diagonal %d is %v: %w", i, d, ErrNotPositiveDefinite)
		}
		inv[i] = 1 / d
	}
	return &pcg{a: a, invDiag: inv, maxIter: o.MaxIterations, tol: o.Tolerance}, nil
}

func (p *pcg) Dim() int { return p.a.r }

func (p *pcg) Solve(b []float64) ([]float64, error) {
	n := p.a.r
	if len(b) != n {
		return nil, sparseErrorf(opSolve, fmt.Errorf("len(b)=%d, n=%d: %w", len(b), n, ErrDimensionMismatch))
	}
	x := make([]float64, n)
	bnorm := floats.Norm(b, 2)
	if bnorm == 0 {
		return x, nil
	}

	r := append([]float64(nil), b...)
	z := make([]float64, n)
	floats.MulTo(z, p.invDiag, r)
	d := append([]float64(nil), z...)
	q := make([]float64, n)
	rz := floats.Dot(r, z)

	for it := 0; it < p.maxIter; it++ {
		p.a.mulVecTo(q, d)
		dq := floats.Dot(d, q)
		if !(dq > 0) {
			return nil, sparseErrorf(opSolve, fmt.Errorf("curvature %v at iteration %d: %w", dq, it, ErrNotPositiveDefinite))
		}
		alpha := rz / dq
		floats.AddScaled(x, alpha, d)
		floats.AddScaled(r, -alpha, q)
		if floats.Norm(r, 2) <= p.tol*bnorm {
			uvlog.Logger().Debug("sparse: pcg converged", "n", n, "iterations", it+1)
			return x, nil
		}
		floats.MulTo(z, p.invDiag, r)
		rzNext := floats.Dot(r, z)
		beta := rzNext / rz
		rz = rzNext
		// d = z + beta·d
		floats.Scale(beta, d)
		floats.Add(d, z)
	}

	return nil, sparseErrorf(opSolve, fmt.Errorf("%d iterations, residual %.3g: %w",
		p.maxIter, floats.Norm(r, 2)/bnorm, ErrNotConverged))
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
