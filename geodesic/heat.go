// SPDX-License-Identifier: MIT

package geodesic

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvkit/ddg"
	"github.com/katalvlaran/uvkit/mesh"
	"github.com/katalvlaran/uvkit/sparse"
	"github.com/katalvlaran/uvkit/uvlog"
)

// Solver holds the prepared operators and factorizations of one mesh.
type Solver struct {
	mesh     *mesh.Mesh
	topo     *mesh.Topology
	timeStep float64

	mass    *sparse.CSR
	grad    *sparse.CSR
	heat    sparse.Factor
	poisson sparse.Factor
}

// Prepare builds a Solver for m. timeScale multiplies the squared mean
// edge length to give the diffusion time.
//
// Errors:
//   - ErrBadTimeScale, ErrOptionViolation (mesh.ErrInvalidParameter).
//   - mesh.ErrDegenerateMesh, mesh.ErrOutOfRange for invalid meshes.
//   - mesh.ErrSolverFailure when either system cannot be factorized, for
//     instance when a vertex belongs to no face.
//   - ctx.Err() when ctx expires during factorization.
func Prepare(ctx context.Context, m *mesh.Mesh, timeScale float64, opts ...Option) (*Solver, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return nil, err
	}
	if !(timeScale > 0) || math.IsInf(timeScale, 0) {
		return nil, fmt.Errorf("%w (%v)", ErrBadTimeScale, timeScale)
	}
	topo, err := mesh.NewTopology(m)
	if err != nil {
		return nil, fmt.Errorf("geodesic: %w", err)
	}
	h, err := m.MeanEdgeLength()
	if err != nil {
		return nil, fmt.Errorf("geodesic: %w", err)
	}
	t := math.Max(MinTimeStep, timeScale*h*h)

	lap, err := ddg.CotanLaplacian(m)
	if err != nil {
		return nil, fmt.Errorf("geodesic: %w", err)
	}
	mass, err := ddg.MassMatrix(m)
	if err != nil {
		return nil, fmt.Errorf("geodesic: %w", err)
	}
	grad, err := ddg.Gradient(m)
	if err != nil {
		return nil, fmt.Errorf("geodesic: %w", err)
	}

	heatSys, err := sparse.Add(1, mass, t, lap)
	if err != nil {
		return nil, fmt.Errorf("geodesic: heat system: %w", err)
	}
	poissonSys, err := sparse.Add(1, lap, o.Regularization, mass)
	if err != nil {
		return nil, fmt.Errorf("geodesic: poisson system: %w", err)
	}
	heat, err := sparse.Factorize(ctx, heatSys, o.Solver...)
	if err != nil {
		return nil, fmt.Errorf("geodesic: heat system: %w", err)
	}
	poisson, err := sparse.Factorize(ctx, poissonSys, o.Solver...)
	if err != nil {
		return nil, fmt.Errorf("geodesic: poisson system: %w", err)
	}
	uvlog.Logger().Debug("geodesic: prepared", "vertices", len(m.Vertices), "faces", len(m.Faces), "timeStep", t)

	return &Solver{
		mesh:     m,
		topo:     topo,
		timeStep: t,
		mass:     mass,
		grad:     grad,
		heat:     heat,
		poisson:  poisson,
	}, nil
}

// TimeStep returns the diffusion time chosen by Prepare.
func (s *Solver) TimeStep() float64 { return s.timeStep }

// Mesh returns the mesh s was prepared for.
func (s *Solver) Mesh() *mesh.Mesh { return s.mesh }

// Topology returns the adjacency built by Prepare.
func (s *Solver) Topology() *mesh.Topology { return s.topo }

// Distance returns the approximate geodesic distance from the nearest of
// sources to every vertex. Duplicate sources are allowed.
//
// Errors: ErrNilSolver, ErrNoSources, mesh.ErrOutOfRange for a bad index,
// mesh.ErrSolverFailure when a solve breaks down.
func (s *Solver) Distance(sources []int) ([]float64, error) {
	if s == nil {
		return nil, ErrNilSolver
	}
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	n := len(s.mesh.Vertices)
	delta := make([]float64, n)
	for _, v := range sources {
		if err := s.mesh.CheckVertex(v); err != nil {
			return nil, fmt.Errorf("geodesic: source: %w", err)
		}
		delta[v] = 1
	}

	// Stage 1: diffuse.
	rhs, err := s.mass.MulVec(delta)
	if err != nil {
		return nil, fmt.Errorf("geodesic: %w", err)
	}
	u, err := s.heat.Solve(rhs)
	if err != nil {
		return nil, fmt.Errorf("geodesic: heat solve: %w", err)
	}

	// Stage 2: unit field pointing away from the sources.
	gu, err := s.grad.MulVec(u)
	if err != nil {
		return nil, fmt.Errorf("geodesic: %w", err)
	}
	field := ddg.FaceVectors(gu)
	for f, g := range field {
		norm := r3.Norm(g)
		if norm < GradientFloor {
			field[f] = r3.Vec{}
			continue
		}
		field[f] = r3.Scale(-1/norm, g)
	}

	// Stage 3: fit φ with ∇φ ≈ X. Divergence returns -Gᵀ·(A⊙X).
	div, err := ddg.Divergence(s.mesh, s.grad, field)
	if err != nil {
		return nil, fmt.Errorf("geodesic: %w", err)
	}
	floats.Scale(-1, div)
	phi, err := s.poisson.Solve(div)
	if err != nil {
		return nil, fmt.Errorf("geodesic: poisson solve: %w", err)
	}

	floats.AddConst(-floats.Min(phi), phi)
	for i, d := range phi {
		if d < 0 {
			phi[i] = 0
		}
	}
	return phi, nil
}
