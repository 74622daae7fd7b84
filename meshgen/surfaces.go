// SPDX-License-Identifier: MIT
// Package: uvkit/meshgen
//
// surfaces.go - curved open surfaces and perturbation.

package meshgen

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvkit/mesh"
)

// Cylinder returns an open tube of the given radius along +Z from 0 to
// height, with segments vertices per ring and rings bands. Vertex
// r*segments+s sits on ring r at angle 2πs/segments. The mesh has two
// boundary loops.
func Cylinder(segments, rings int, radius, height float64) (*mesh.Mesh, error) {
	if segments < minSegments || rings < minSurfaceRings {
		return nil, fmt.Errorf("%s: segments=%d, rings=%d: %w", methodCylinder, segments, rings, ErrTooFewVertices)
	}
	if !validSize(radius) || !validSize(height) {
		return nil, fmt.Errorf("%s: radius=%v, height=%v: %w", methodCylinder, radius, height, ErrInvalidSize)
	}
	m := &mesh.Mesh{
		Vertices: make([]r3.Vec, 0, segments*(rings+1)),
		Faces:    make([][3]int, 0, 2*segments*rings),
	}
	for r := 0; r <= rings; r++ {
		z := height * float64(r) / float64(rings)
		for s := 0; s < segments; s++ {
			th := 2 * math.Pi * float64(s) / float64(segments)
			m.Vertices = append(m.Vertices, r3.Vec{X: radius * math.Cos(th), Y: radius * math.Sin(th), Z: z})
		}
	}
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a := r*segments + s
			b := r*segments + (s+1)%segments
			c := b + segments
			d := a + segments
			m.Faces = append(m.Faces, [3]int{a, b, c}, [3]int{a, c, d})
		}
	}
	return m, nil
}

// Hemisphere returns the upper half of a sphere of the given radius: vertex
// 0 is the pole (0,0,radius), followed by rings rings of segments vertices
// at polar angles (π/2)·k/rings. The equator is the single boundary loop.
func Hemisphere(segments, rings int, radius float64) (*mesh.Mesh, error) {
	if segments < minSegments || rings < minSurfaceRings {
		return nil, fmt.Errorf("%s: segments=%d, rings=%d: %w", methodHemisphere, segments, rings, ErrTooFewVertices)
	}
	if !validSize(radius) {
		return nil, fmt.Errorf("%s: radius=%v: %w", methodHemisphere, radius, ErrInvalidSize)
	}
	m := &mesh.Mesh{
		Vertices: make([]r3.Vec, 0, 1+segments*rings),
		Faces:    make([][3]int, 0, segments*(2*rings-1)),
	}
	m.Vertices = append(m.Vertices, r3.Vec{Z: radius})
	for k := 1; k <= rings; k++ {
		phi := 0.5 * math.Pi * float64(k) / float64(rings)
		for s := 0; s < segments; s++ {
			th := 2 * math.Pi * float64(s) / float64(segments)
			m.Vertices = append(m.Vertices, r3.Vec{
				X: radius * math.Sin(phi) * math.Cos(th),
				Y: radius * math.Sin(phi) * math.Sin(th),
				Z: radius * math.Cos(phi),
			})
		}
	}
	ring := func(k, s int) int { return 1 + (k-1)*segments + s%segments }
	for s := 0; s < segments; s++ {
		m.Faces = append(m.Faces, [3]int{0, ring(1, s), ring(1, s+1)})
	}
	for k := 1; k < rings; k++ {
		for s := 0; s < segments; s++ {
			a, b := ring(k, s), ring(k+1, s)
			c, d := ring(k+1, s+1), ring(k, s+1)
			m.Faces = append(m.Faces, [3]int{a, b, c}, [3]int{a, c, d})
		}
	}
	return m, nil
}

// Jitter returns a copy of m with every coordinate moved by a uniform
// offset in [-amount, amount]. Faces are shared with m.
func Jitter(m *mesh.Mesh, amount float64, opts ...Option) (*mesh.Mesh, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", methodJitter, err)
	}
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fmt.Errorf("%s: amount=%v: %w", methodJitter, amount, ErrInvalidSize)
	}
	cfg := newConfig(opts)
	off := func() float64 { return (2*cfg.rng.Float64() - 1) * amount }
	out := &mesh.Mesh{Vertices: make([]r3.Vec, len(m.Vertices)), Faces: m.Faces}
	for i, p := range m.Vertices {
		out.Vertices[i] = r3.Vec{X: p.X + off(), Y: p.Y + off(), Z: p.Z + off()}
	}
	return out, nil
}
