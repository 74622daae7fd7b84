// SPDX-License-Identifier: MIT

package abf

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/uvkit/mesh"
	"github.com/katalvlaran/uvkit/sparse"
	"github.com/katalvlaran/uvkit/uvlog"
)

// Angles is the outcome of Optimize. Values and Natural hold one entry per
// corner, indexed 3·f+j for corner j of face f.
type Angles struct {
	Values  []float64
	Natural []float64

	// Iterations is the number of Newton steps taken.
	Iterations int

	// Converged reports that the final angles satisfy every constraint:
	// MaxViolation is below the tolerance, or below FeasibilityTolerance
	// when the energy test stopped the iteration.
	Converged bool

	// MaxViolation is max|C·α - b| at the final angles.
	MaxViolation float64

	// Energy is Σ(α-β)²/β at the final angles.
	Energy float64

	// Penalty is the constraint weight λ of the last step.
	Penalty float64
}

// constraints holds the linear angle constraints C·α = b.
type constraints struct {
	c *sparse.CSR
	b []float64
}

// buildConstraints assembles one row per face, summing to π, followed by
// one row per interior vertex, summing to 2π. Boundary vertices carry no
// row: by Euler's formula a disk cannot also satisfy a π sum at every
// boundary vertex, the corner sums would exceed the face sums by 2π.
func buildConstraints(topo *mesh.Topology) (constraints, error) {
	m := topo.Mesh()
	nf := len(m.Faces)
	onBoundary := topo.BoundaryVertices()

	row := make([]int, len(m.Vertices))
	for v := range row {
		row[v] = -1
	}
	rows := nf
	for _, face := range m.Faces {
		for _, v := range face {
			if !onBoundary[v] && row[v] < 0 {
				row[v] = rows
				rows++
			}
		}
	}

	tr := sparse.NewTriplets(rows, 3*nf)
	tr.Reserve(6 * nf)
	b := make([]float64, rows)
	for f, face := range m.Faces {
		b[f] = math.Pi
		for j, v := range face {
			tr.Add(f, 3*f+j, 1)
			if r := row[v]; r >= 0 {
				tr.Add(r, 3*f+j, 1)
				b[r] = 2 * math.Pi
			}
		}
	}
	c, err := tr.CSR()
	if err != nil {
		return constraints{}, err
	}
	return constraints{c: c, b: b}, nil
}

// violation returns C·α - b.
func (k constraints) violation(alpha []float64) ([]float64, error) {
	r, err := k.c.MulVec(alpha)
	if err != nil {
		return nil, err
	}
	floats.Sub(r, k.b)
	return r, nil
}

// NaturalAngles returns the 3D corner angles of every face, floored at
// NaturalAngleFloor.
func NaturalAngles(m *mesh.Mesh) []float64 {
	out := make([]float64, 3*len(m.Faces))
	for f := range m.Faces {
		a := m.CornerAngles(f)
		for j := 0; j < 3; j++ {
			out[3*f+j] = math.Max(a[j], NaturalAngleFloor)
		}
	}
	return out
}

func energy(alpha, natural []float64) float64 {
	var e float64
	for i, a := range alpha {
		d := a - natural[i]
		e += d * d / natural[i]
	}
	return e
}

// stepSystem factorizes H + λ·CᵀC with H = diag(2/β).
func stepSystem(ctx context.Context, natural []float64, k constraints, lambda float64, opts []sparse.Option) (sparse.Factor, error) {
	h := make([]float64, len(natural))
	for i, beta := range natural {
		h[i] = 2 / beta
	}
	sys, err := sparse.Add(1, sparse.Diag(h), lambda, k.c.Gram())
	if err != nil {
		return nil, err
	}
	uvlog.Logger().Debug("abf: step system", "angles", len(natural), "constraints", k.c.Rows(), "nnz", sys.NNZ(), "penalty", lambda)
	return sparse.Factorize(ctx, sys, opts...)
}

// Optimize runs an augmented Lagrangian Newton iteration on the corner
// angles of the mesh behind topo.
//
// Every step solves (H + λ·CᵀC)·δ = -∇E - Cᵀ(μ + λ·viol), clamps the
// angles into (AngleEpsilon, π-AngleEpsilon) and moves the multipliers
// μ by λ·viol. When a step fails to cut the largest violation by
// ViolationDecrease, λ grows by PenaltyGrowth (up to MaxPenalty) and the
// system is factorized again.
//
// The iteration stops when max|viol| < Tolerance, when the energy changes
// by less than Tolerance, or when the budget runs out. A closed surface
// has no feasible angle set; its violation stalls and Converged is false.
//
// Errors:
//   - ErrOptionViolation for invalid options.
//   - mesh.ErrSolverFailure when the step system cannot be factorized.
//   - the context error when ctx is cancelled between iterations.
//
// Running out of iterations is not an error; Angles.Converged reports it.
func Optimize(ctx context.Context, topo *mesh.Topology, opts ...Option) (Angles, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return Angles{}, err
	}
	if topo == nil {
		return Angles{}, fmt.Errorf("abf: nil topology: %w", mesh.ErrInvalidParameter)
	}
	m := topo.Mesh()
	natural := NaturalAngles(m)
	k, err := buildConstraints(topo)
	if err != nil {
		return Angles{}, fmt.Errorf("abf: constraints: %w", err)
	}

	lambda := o.Penalty
	fac, err := stepSystem(ctx, natural, k, lambda, o.Solver)
	if err != nil {
		return Angles{}, fmt.Errorf("abf: %w", err)
	}
	ct := k.c.Transpose()

	out := Angles{
		Values:  append([]float64(nil), natural...),
		Natural: natural,
	}
	alpha := out.Values
	viol, err := k.violation(alpha)
	if err != nil {
		return Angles{}, fmt.Errorf("abf: %w", err)
	}
	out.MaxViolation = floats.Norm(viol, math.Inf(1))
	mu := make([]float64, len(viol))
	w := make([]float64, len(viol))
	prev := energy(alpha, natural)
	for it := 0; it < o.MaxIterations; it++ {
		if err := ctx.Err(); err != nil {
			return Angles{}, fmt.Errorf("abf: %w", err)
		}
		if out.MaxViolation < o.Tolerance {
			out.Converged = true
			break
		}

		// rhs = -∇E - Cᵀ(μ + λ·viol)
		floats.AddScaledTo(w, mu, lambda, viol)
		rhs, err := ct.MulVec(w)
		if err != nil {
			return Angles{}, fmt.Errorf("abf: %w", err)
		}
		for i, a := range alpha {
			rhs[i] = -rhs[i] - 2*(a-natural[i])/natural[i]
		}
		delta, err := fac.Solve(rhs)
		if err != nil {
			return Angles{}, fmt.Errorf("abf: step %d: %w", it, err)
		}
		for i := range alpha {
			alpha[i] = clampAngle(alpha[i] + delta[i])
		}
		out.Iterations = it + 1

		next, err := k.violation(alpha)
		if err != nil {
			return Angles{}, fmt.Errorf("abf: %w", err)
		}
		floats.AddScaled(mu, lambda, next)
		nextMax := floats.Norm(next, math.Inf(1))
		if nextMax > ViolationDecrease*out.MaxViolation && lambda < MaxPenalty {
			lambda = math.Min(lambda*PenaltyGrowth, MaxPenalty)
			if fac, err = stepSystem(ctx, natural, k, lambda, o.Solver); err != nil {
				return Angles{}, fmt.Errorf("abf: step %d: %w", it, err)
			}
		}
		viol, out.MaxViolation = next, nextMax

		if out.MaxViolation < o.Tolerance {
			out.Converged = true
			break
		}
		e := energy(alpha, natural)
		if math.Abs(e-prev) < o.Tolerance {
			out.Converged = out.MaxViolation < math.Max(o.Tolerance, FeasibilityTolerance)
			break
		}
		prev = e
	}
	out.Energy = energy(alpha, natural)
	out.Penalty = lambda

	log := uvlog.Logger()
	if out.Converged {
		log.Debug("abf: converged", "iterations", out.Iterations, "energy", out.Energy, "violation", out.MaxViolation)
	} else {
		log.Warn("abf: angles not feasible", "iterations", out.Iterations, "violation", out.MaxViolation, "penalty", lambda)
	}
	return out, nil
}

func clampAngle(a float64) float64 {
	switch {
	case a <= AngleEpsilon || math.IsNaN(a):
		return AngleEpsilon
	case a >= math.Pi-AngleEpsilon:
		return math.Pi - AngleEpsilon
	}
	return a
}
