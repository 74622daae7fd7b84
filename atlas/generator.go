// SPDX-License-Identifier: MIT

package atlas

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/uvkit/mesh"
	"github.com/katalvlaran/uvkit/segment"
	"github.com/katalvlaran/uvkit/uv"
	"github.com/katalvlaran/uvkit/uvlog"
)

// Atlas is a packed layout of a whole mesh.
//
// Vertices on a seam belong to several charts and receive one UV per
// chart, so the packed layout lives on Mesh, a copy of the input in which
// every island owns its vertices. Faces keep their input order.
type Atlas struct {
	// Result holds the packed UV in [0,1]², indexed by the vertices of
	// Mesh, and its metrics. Stretch is indexed by face.
	uv.Result

	// Mesh is the input with its seams split.
	Mesh *mesh.Mesh

	// Original maps every vertex of Mesh to its vertex in the input.
	Original []int

	// Islands are the charts in segmentation order.
	Islands []segment.UVIsland

	// Charts holds the per-island flattening, indexed like Islands, as
	// returned by UnwrapIslands.
	Charts []uv.Result

	// Generator names the strategy that produced the atlas.
	Generator string
}

// Generator is an automatic chart-and-pack strategy.
type Generator interface {
	// Name identifies the strategy.
	Name() string

	// IsAvailable reports whether Generate can run in this build.
	IsAvailable() bool

	// Generate builds an atlas for m.
	Generate(ctx context.Context, m *mesh.Mesh, o Options) (Atlas, error)
}

// Select returns the first available generator.
func Select(gens ...Generator) (Generator, error) {
	for _, g := range gens {
		if g != nil && g.IsAvailable() {
			return g, nil
		}
	}
	return nil, fmt.Errorf("%w: none of %d candidates", ErrUnavailable, len(gens))
}

type external struct{ name string }

// External returns a placeholder for a strategy provided by a native
// library that is not part of this build. It is never available.
func External(name string) Generator { return external{name: name} }

func (e external) Name() string      { return e.name }
func (e external) IsAvailable() bool { return false }

func (e external) Generate(context.Context, *mesh.Mesh, Options) (Atlas, error) {
	return Atlas{}, fmt.Errorf("%w: %s", ErrUnavailable, e.name)
}

type builtin struct{}

// Builtin returns the always-available strategy: feature segmentation,
// per-island flattening and shelf packing.
func Builtin() Generator { return builtin{} }

func (builtin) Name() string      { return "builtin" }
func (builtin) IsAvailable() bool { return true }

// Generate cuts m along its feature edges, flattens the islands with
// o.Method, relaxes them and packs them at a common scale. Islands without
// a usable layout are left at the origin and the atlas is tagged
// uv.StatusDegraded; when no island is usable the atlas is uv.Unusable.
func (b builtin) Generate(ctx context.Context, m *mesh.Mesh, o Options) (Atlas, error) {
	if err := o.Validate(); err != nil {
		return Atlas{}, err
	}
	topo, err := mesh.NewTopology(m)
	if err != nil {
		return Atlas{}, fmt.Errorf("atlas: %w", err)
	}
	islands, err := segment.SegmentByFeatures(topo, o.FeatureAngle)
	if err != nil {
		return Atlas{}, fmt.Errorf("atlas: %w", err)
	}
	split, err := splitSeams(m, islands)
	if err != nil {
		return Atlas{}, err
	}
	results, err := UnwrapIslands(ctx, m, islands, o)
	if err != nil {
		return Atlas{}, err
	}

	out := Atlas{
		Mesh:      split.mesh,
		Original:  split.original,
		Islands:   islands,
		Charts:    results,
		Generator: b.Name(),
	}
	var (
		charts  []uv.Chart
		reasons []error
		area    float64
	)
	for i, res := range results {
		area += islands[i].Area
		if res.Status != uv.StatusOK && res.Reason != nil {
			reasons = append(reasons, fmt.Errorf("island %d: %w", i, res.Reason))
		}
		if !res.Usable() {
			continue
		}
		charts = append(charts, chartOf(m, islands[i], res.UV, split.first[i], split.local[i]))
	}
	reason := errors.Join(reasons...)
	if len(charts) == 0 {
		uvlog.Logger().Warn("atlas: no usable island", "islands", len(islands))
		out.Result = uv.Unusable(reason)
		return out, nil
	}

	packed, err := uv.Pack(len(split.mesh.Vertices), charts, o.Padding*math.Sqrt(area))
	if err != nil {
		return Atlas{}, fmt.Errorf("atlas: %w", err)
	}
	if out.Result, err = uv.Evaluate(split.mesh, packed); err != nil {
		return Atlas{}, fmt.Errorf("atlas: %w", err)
	}
	if reason != nil {
		out.Status, out.Reason = uv.StatusDegraded, reason
	}
	uvlog.Logger().Info("atlas: generated", "generator", b.Name(), "islands", len(islands), "charts", len(charts),
		"vertices", len(m.Vertices), "split_vertices", len(split.mesh.Vertices),
		"distortion", out.Distortion, "status", out.Status.String())
	return out, nil
}

// chartOf gathers the island's layout from a full-size UV array, numbers
// it from first in the split mesh and rescales it uniformly so the chart
// area matches the island's surface area.
func chartOf(m *mesh.Mesh, island segment.UVIsland, full []r2.Vec, first int, local []int) uv.Chart {
	var a2 float64
	for _, f := range island.Faces {
		face := m.Faces[f]
		e1 := r2.Sub(full[face[1]], full[face[0]])
		e2 := r2.Sub(full[face[2]], full[face[0]])
		a2 += 0.5 * math.Abs(r2.Cross(e1, e2))
	}
	k := 1.0
	if a2 > mesh.DegenerateArea && island.Area > mesh.DegenerateArea {
		k = math.Sqrt(island.Area / a2)
	}
	c := uv.Chart{Vertices: make([]int, len(local)), UV: make([]r2.Vec, len(local))}
	for l, g := range local {
		c.Vertices[l] = first + l
		c.UV[l] = r2.Scale(k, full[g])
	}
	return c
}
