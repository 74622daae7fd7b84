// SPDX-License-Identifier: MIT

package config

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvkit/abf"
	"github.com/katalvlaran/uvkit/atlas"
	"github.com/katalvlaran/uvkit/geodesic"
	"github.com/katalvlaran/uvkit/lscm"
	"github.com/katalvlaran/uvkit/mesh"
	"github.com/katalvlaran/uvkit/segment"
	"github.com/katalvlaran/uvkit/sparse"
)

// SolverOptions returns the sparse.Factorize options of c.
func (c Config) SolverOptions() []sparse.Option {
	return []sparse.Option{
		sparse.WithMethod(c.Solver.Method),
		sparse.WithDenseLimit(c.Solver.DenseLimit),
		sparse.WithMaxIterations(c.Solver.MaxIterations),
		sparse.WithTolerance(c.Solver.Tolerance),
	}
}

// LSCMOptions returns the lscm options of c.
func (c Config) LSCMOptions() []lscm.Option {
	return []lscm.Option{lscm.WithSolver(c.SolverOptions()...)}
}

// ABFOptions returns the abf options of c.
func (c Config) ABFOptions() []abf.Option {
	return []abf.Option{
		abf.WithMaxIterations(c.Unwrap.MaxIterations),
		abf.WithTolerance(c.Unwrap.Tolerance),
		abf.WithPenalty(c.Unwrap.Penalty),
		abf.WithSolver(c.SolverOptions()...),
	}
}

// GeodesicOptions returns the geodesic.Prepare options of c. The time
// scale is passed to Prepare separately as c.Geodesic.TimeScale.
func (c Config) GeodesicOptions() []geodesic.Option {
	return []geodesic.Option{
		geodesic.WithRegularization(c.Geodesic.Regularization),
		geodesic.WithSolver(c.SolverOptions()...),
	}
}

// AtlasOptions returns the atlas.Options of c, carrying the lscm, abf and
// solver settings to every island.
func (c Config) AtlasOptions() atlas.Options {
	return atlas.Options{
		FeatureAngle: c.Segmentation.FeatureAngle,
		Method:       c.Unwrap.Method,
		Padding:      c.Packing.Padding,
		Workers:      c.Packing.Workers,
		Relax:        c.Unwrap.Relax,
		LSCM:         c.LSCMOptions(),
		ABF:          c.ABFOptions(),
		Solver:       c.SolverOptions(),
	}
}

// Plane returns the configured symmetry plane.
func (c Config) Plane() segment.Plane {
	n := c.Segmentation.SymmetryNormal
	return segment.Plane{Normal: r3.Vec{X: n[0], Y: n[1], Z: n[2]}, Offset: c.Segmentation.SymmetryOffset}
}

// FlowDirection returns the configured texture flow direction.
func (c Config) FlowDirection() r3.Vec {
	d := c.Segmentation.FlowDirection
	return r3.Vec{X: d[0], Y: d[1], Z: d[2]}
}

// Segment runs the configured segmentation strategy on topo.
func (c Config) Segment(topo *mesh.Topology) ([]segment.UVIsland, error) {
	s := c.Segmentation
	switch s.Strategy {
	case StrategyFeatures:
		return segment.SegmentByFeatures(topo, s.FeatureAngle)
	case StrategyEdgeLoops:
		loops, err := segment.DetectEdgeLoops(topo, s.FeatureAngle)
		if err != nil {
			return nil, err
		}
		return segment.SegmentByEdgeLoops(topo, loops)
	case StrategyHighCurvature:
		return segment.SegmentByHighCurvature(topo, s.CurvatureThreshold)
	case StrategyGaussianCurvature:
		return segment.SegmentByGaussianCurvature(topo, s.GaussianThreshold)
	case StrategySymmetry:
		return segment.SegmentBySymmetry(topo, c.Plane(), s.SymmetryTolerance)
	case StrategyTextureFlow:
		return segment.SegmentByTextureFlow(topo, c.FlowDirection(), s.FlowAngle)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, s.Strategy)
}
