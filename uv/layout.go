// SPDX-License-Identifier: MIT

package uv

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/uvkit/mesh"
)

// Sentinel errors for layout helpers.
var (
	// ErrChartShape is returned when a chart's vertex and UV lists differ in length.
	ErrChartShape = fmt.Errorf("uv: chart vertex and uv counts differ: %w", mesh.ErrInvalidParameter)

	// ErrBadPadding is returned for a negative or non-finite padding.
	ErrBadPadding = fmt.Errorf("uv: padding must be finite and non-negative: %w", mesh.ErrInvalidParameter)
)

// Bounds returns the per-axis minimum and maximum of uv.
// An empty slice yields two zero vectors.
func Bounds(uv []r2.Vec) (lo, hi r2.Vec) {
	if len(uv) == 0 {
		return r2.Vec{}, r2.Vec{}
	}
	lo, hi = uv[0], uv[0]
	for _, p := range uv[1:] {
		lo.X, hi.X = math.Min(lo.X, p.X), math.Max(hi.X, p.X)
		lo.Y, hi.Y = math.Min(lo.Y, p.Y), math.Max(hi.Y, p.Y)
	}
	return lo, hi
}

// Normalize returns a copy of uv with each axis mapped independently onto
// [0,1]. An axis with zero range collapses to 0. Normalizing an already
// normalized layout returns it unchanged.
func Normalize(uv []r2.Vec) []r2.Vec {
	out := make([]r2.Vec, len(uv))
	lo, hi := Bounds(uv)
	sx, sy := hi.X-lo.X, hi.Y-lo.Y
	for i, p := range uv {
		if sx > 0 {
			out[i].X = (p.X - lo.X) / sx
		}
		if sy > 0 {
			out[i].Y = (p.Y - lo.Y) / sy
		}
	}
	return out
}

// Chart is one island's layout: UV[i] is the coordinate of mesh vertex
// Vertices[i].
type Chart struct {
	Vertices []int
	UV       []r2.Vec
}

type shelfBox struct {
	chart  int
	lo     r2.Vec
	w, h   float64
	offset r2.Vec
}

// Pack arranges charts on shelves without overlap and returns a UV array
// of length numVertices in [0,1]². Charts keep their own scale relative to
// each other; padding is the gap between charts in chart units. Vertices
// shared by several charts take the position from the last chart listing
// them; vertices in no chart stay at the origin.
//
// Charts are placed tallest first, left to right, on shelves whose width
// is the larger of the widest chart and the square root of the total
// padded box area. The finished layout is scaled uniformly so its longer
// side is 1.
//
// Complexity: O(C log C + V) for C charts and V listed vertices.
func Pack(numVertices int, charts []Chart, padding float64) ([]r2.Vec, error) {
	if padding < 0 || math.IsNaN(padding) || math.IsInf(padding, 0) {
		return nil, fmt.Errorf("Pack: padding=%v: %w", padding, ErrBadPadding)
	}
	boxes := make([]shelfBox, 0, len(charts))
	var area, widest float64
	for ci, c := range charts {
		if len(c.Vertices) != len(c.UV) {
			return nil, fmt.Errorf("Pack: chart %d: %d vertices, %d uv: %w", ci, len(c.Vertices), len(c.UV), ErrChartShape)
		}
		for _, v := range c.Vertices {
			if v < 0 || v >= numVertices {
				return nil, fmt.Errorf("Pack: chart %d: vertex %d (have %d): %w", ci, v, numVertices, mesh.ErrOutOfRange)
			}
		}
		if len(c.UV) == 0 {
			continue
		}
		lo, hi := Bounds(c.UV)
		b := shelfBox{chart: ci, lo: lo, w: hi.X - lo.X, h: hi.Y - lo.Y}
		area += (b.w + padding) * (b.h + padding)
		widest = math.Max(widest, b.w)
		boxes = append(boxes, b)
	}

	out := make([]r2.Vec, numVertices)
	if len(boxes) == 0 {
		return out, nil
	}

	sort.SliceStable(boxes, func(i, j int) bool { return boxes[i].h > boxes[j].h })
	shelfWidth := math.Max(widest, math.Sqrt(area))
	var x, y, shelfHeight, extentX, extentY float64
	for i := range boxes {
		b := &boxes[i]
		if x > 0 && x+b.w > shelfWidth {
			y += shelfHeight + padding
			x, shelfHeight = 0, 0
		}
		b.offset = r2.Vec{X: x, Y: y}
		extentX = math.Max(extentX, x+b.w)
		extentY = math.Max(extentY, y+b.h)
		x += b.w + padding
		shelfHeight = math.Max(shelfHeight, b.h)
	}

	scale := 1.0
	if side := math.Max(extentX, extentY); side > 0 {
		scale = 1 / side
	}
	for _, b := range boxes {
		c := charts[b.chart]
		for i, v := range c.Vertices {
			p := r2.Add(r2.Sub(c.UV[i], b.lo), b.offset)
			out[v] = r2.Scale(scale, p)
		}
	}
	return out, nil
}
