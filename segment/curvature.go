// SPDX-License-Identifier: MIT

package segment

import (
	"fmt"
	"math"

	"github.com/katalvlaran/uvkit/bfs"
	"github.com/katalvlaran/uvkit/ddg"
	"github.com/katalvlaran/uvkit/mesh"
	"github.com/katalvlaran/uvkit/uvlog"
)

// Default curvature thresholds.
const (
	DefaultMeanCurvatureThreshold     = 0.5
	DefaultGaussianCurvatureThreshold = 0.01
)

// minCurvatureGroup is the smallest vertex group that becomes a seam.
const minCurvatureGroup = 3

// HighCurvatureEdges flags every edge whose endpoints' average absolute
// mean curvature exceeds threshold. Mean curvature is the average of the
// two principal curvatures.
func HighCurvatureEdges(topo *mesh.Topology, threshold float64) (mesh.EdgeSet, error) {
	if err := checkTopology(topo); err != nil {
		return nil, fmt.Errorf("%s: %w", methodHighCurvature, err)
	}
	if !validThreshold(threshold) {
		return nil, fmt.Errorf("%s: threshold=%v: %w", methodHighCurvature, threshold, ErrBadThreshold)
	}
	kmin, kmax, err := ddg.PrincipalCurvatures(topo.Mesh(), topo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodHighCurvature, err)
	}
	out := mesh.NewEdgeSet()
	for e := range topo.EdgeFaces {
		h0 := math.Abs(0.5 * (kmin[e.V0] + kmax[e.V0]))
		h1 := math.Abs(0.5 * (kmin[e.V1] + kmax[e.V1]))
		if 0.5*(h0+h1) > threshold {
			out.Add(e)
		}
	}
	return out, nil
}

// CurvatureGroups returns the connected vertex groups of the graph formed
// by edges, each sorted, ordered by smallest vertex.
func CurvatureGroups(numVertices int, edges mesh.EdgeSet) ([][]int, error) {
	adj := make(map[int][]int, 2*edges.Len())
	for _, e := range edges.Sorted() {
		adj[e.V0] = append(adj[e.V0], e.V1)
		adj[e.V1] = append(adj[e.V1], e.V0)
	}
	return bfs.Components(numVertices,
		func(v int) []int { return adj[v] },
		func(v int) bool { return len(adj[v]) > 0 },
	)
}

// SegmentByHighCurvature cuts along high-curvature edges that belong to a
// group of at least three vertices. Smaller groups are noise and ignored.
func SegmentByHighCurvature(topo *mesh.Topology, threshold float64) ([]UVIsland, error) {
	edges, err := HighCurvatureEdges(topo, threshold)
	if err != nil {
		return nil, err
	}
	groups, err := CurvatureGroups(topo.Mesh().NumVertices(), edges)
	if err != nil {
		return nil, err
	}
	keep := make(map[int]bool)
	for _, g := range groups {
		if len(g) < minCurvatureGroup {
			continue
		}
		for _, v := range g {
			keep[v] = true
		}
	}
	cuts := mesh.NewEdgeSet()
	for e := range edges {
		if keep[e.V0] {
			cuts.Add(e)
		}
	}
	return Partition(topo, cuts)
}

// GaussianCurvatureEdges flags the edges that cross a curvature transition:
// exactly one endpoint has |K| above threshold, or the endpoints lie on
// opposite sides of ±threshold (convex to saddle).
func GaussianCurvatureEdges(topo *mesh.Topology, threshold float64) (mesh.EdgeSet, error) {
	if err := checkTopology(topo); err != nil {
		return nil, fmt.Errorf("%s: %w", methodGaussian, err)
	}
	if !validThreshold(threshold) {
		return nil, fmt.Errorf("%s: threshold=%v: %w", methodGaussian, threshold, ErrBadThreshold)
	}
	k := ddg.GaussianCurvature(topo.Mesh(), topo)
	out := mesh.NewEdgeSet()
	for e := range topo.EdgeFaces {
		k0, k1 := k[e.V0], k[e.V1]
		curved0 := math.Abs(k0) > threshold
		curved1 := math.Abs(k1) > threshold
		flip := (k0 > threshold && k1 < -threshold) || (k0 < -threshold && k1 > threshold)
		if curved0 != curved1 || flip {
			out.Add(e)
		}
	}
	return out, nil
}

// SegmentByGaussianCurvature cuts along Gaussian curvature transitions.
// When no edge qualifies the whole mesh is returned as one island.
func SegmentByGaussianCurvature(topo *mesh.Topology, threshold float64) ([]UVIsland, error) {
	edges, err := GaussianCurvatureEdges(topo, threshold)
	if err != nil {
		return nil, err
	}
	if edges.Len() == 0 {
		uvlog.Logger().Debug("segment: no curvature transitions, single island", "threshold", threshold)
		return Whole(topo.Mesh()), nil
	}
	loops := TraceLoops(edges.Sorted(), topo.Mesh().NumVertices())
	return Partition(topo, LoopEdges(loops))
}
