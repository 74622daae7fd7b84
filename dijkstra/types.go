// SPDX-License-Identifier: MIT

package dijkstra

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/uvkit/mesh"
)

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrNilArcs indicates that a nil ArcFunc was passed.
	ErrNilArcs = errors.New("dijkstra: arc function is nil")

	// ErrNoSources indicates that the source list is empty.
	ErrNoSources = fmt.Errorf("dijkstra: no source vertices: %w", mesh.ErrInvalidParameter)

	// ErrSourceOutOfRange indicates a source index outside [0, n).
	ErrSourceOutOfRange = fmt.Errorf("dijkstra: source vertex out of range: %w", mesh.ErrOutOfRange)

	// ErrNegativeWeight indicates that a negative or NaN arc weight was met.
	ErrNegativeWeight = fmt.Errorf("dijkstra: negative edge weight encountered: %w", mesh.ErrInvalidParameter)

	// ErrBadMaxDistance indicates that MaxDistance was set to a negative or NaN value.
	ErrBadMaxDistance = fmt.Errorf("dijkstra: MaxDistance must be non-negative: %w", mesh.ErrInvalidParameter)

	// ErrBadInfThreshold indicates that InfEdgeThreshold was set to zero, a
	// negative value or NaN, which would make every arc impassable.
	ErrBadInfThreshold = fmt.Errorf("dijkstra: InfEdgeThreshold must be positive: %w", mesh.ErrInvalidParameter)
)

// Arc is a weighted directed connection to node To.
type Arc struct {
	To     int
	Weight float64
}

// ArcFunc lists the outgoing arcs of node v. Undirected graphs list each
// edge from both endpoints.
type ArcFunc func(v int) []Arc

// Options configures the behavior of the Dijkstra algorithm.
//
// MaxDistance      – nodes whose distance would exceed this value are not
//
//	explored. Must be ≥ 0. Default is +Inf (no cap).
//
// InfEdgeThreshold – arcs with weight ≥ this threshold are impassable.
//
//	Must be > 0. Default is +Inf (no obstacles).
type Options struct {
	MaxDistance      float64
	InfEdgeThreshold float64

	err error
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// WithMaxDistance sets a maximum distance threshold. Invalid values are
// surfaced by ShortestPaths as ErrBadMaxDistance.
func WithMaxDistance(max float64) Option {
	return func(o *Options) {
		if !(max >= 0) {
			o.err = fmt.Errorf("%w (%v)", ErrBadMaxDistance, max)
			return
		}
		o.MaxDistance = max
	}
}

// WithInfEdgeThreshold defines a weight threshold above which arcs are
// non-traversable. Invalid values are surfaced as ErrBadInfThreshold.
func WithInfEdgeThreshold(threshold float64) Option {
	return func(o *Options) {
		if !(threshold > 0) {
			o.err = fmt.Errorf("%w (%v)", ErrBadInfThreshold, threshold)
			return
		}
		o.InfEdgeThreshold = threshold
	}
}

// DefaultOptions returns Options with no distance cap and no obstacles.
func DefaultOptions() Options {
	return Options{
		MaxDistance:      math.Inf(1),
		InfEdgeThreshold: math.Inf(1),
	}
}

// Result holds shortest distances (+Inf when unreached) and predecessors
// (-1 for sources and unreached nodes).
type Result struct {
	Dist []float64
	Prev []int
}

// PathTo reconstructs the path from the nearest source to dest.
func (r *Result) PathTo(dest int) ([]int, error) {
	if dest < 0 || dest >= len(r.Dist) {
		return nil, fmt.Errorf("dijkstra: PathTo(%d): %w", dest, mesh.ErrOutOfRange)
	}
	if math.IsInf(r.Dist[dest], 1) {
		return nil, fmt.Errorf("dijkstra: no path to %d", dest)
	}
	var path []int
	for cur := dest; cur >= 0; cur = r.Prev[cur] {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}
