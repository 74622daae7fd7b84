// SPDX-License-Identifier: MIT
// Package: uvkit/meshgen
//
// solids.go - closed Platonic meshes centered at the origin.
//
// Faces are listed counter-clockwise from outside. These meshes have no
// boundary and are the canonical inputs for the closed-surface paths of the
// unwrappers.

package meshgen

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvkit/mesh"
)

// SolidName enumerates the supported closed solids.
type SolidName int

// Enum values (stable ordering).
const (
	Tetrahedron SolidName = iota // V=4,  F=4
	Octahedron                   // V=6,  F=8
	Icosahedron                  // V=12, F=20
)

// String provides a readable identifier for logs and errors.
func (s SolidName) String() string {
	switch s {
	case Tetrahedron:
		return "Tetrahedron"
	case Octahedron:
		return "Octahedron"
	case Icosahedron:
		return "Icosahedron"
	default:
		return "Unknown"
	}
}

// Platonic returns the named solid. Unknown names return ErrUnknownSolid.
func Platonic(name SolidName) (*mesh.Mesh, error) {
	switch name {
	case Tetrahedron:
		return &mesh.Mesh{
			Vertices: []r3.Vec{{X: 1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: -1, Z: 1}},
			Faces:    [][3]int{{0, 1, 2}, {0, 3, 1}, {0, 2, 3}, {1, 3, 2}},
		}, nil
	case Octahedron:
		return octahedron(), nil
	case Icosahedron:
		return icosahedron(), nil
	default:
		return nil, fmt.Errorf("%s: %v: %w", methodPlatonic, name, ErrUnknownSolid)
	}
}

// octahedron has vertices ±X (0,1), ±Y (2,3), ±Z (4,5). Each octant
// contributes one face, flipped when the octant sign parity is negative.
func octahedron() *mesh.Mesh {
	m := &mesh.Mesh{
		Vertices: []r3.Vec{
			{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
		},
		Faces: make([][3]int, 0, 8),
	}
	for sx := 0; sx < 2; sx++ {
		for sy := 0; sy < 2; sy++ {
			for sz := 0; sz < 2; sz++ {
				x, y, z := sx, 2+sy, 4+sz
				if (sx+sy+sz)%2 == 0 {
					m.Faces = append(m.Faces, [3]int{x, y, z})
				} else {
					m.Faces = append(m.Faces, [3]int{x, z, y})
				}
			}
		}
	}
	return m
}

func icosahedron() *mesh.Mesh {
	p := (1 + math.Sqrt(5)) / 2
	return &mesh.Mesh{
		Vertices: []r3.Vec{
			{X: -1, Y: p}, {X: 1, Y: p}, {X: -1, Y: -p}, {X: 1, Y: -p},
			{Y: -1, Z: p}, {Y: 1, Z: p}, {Y: -1, Z: -p}, {Y: 1, Z: -p},
			{X: p, Z: -1}, {X: p, Z: 1}, {X: -p, Z: -1}, {X: -p, Z: 1},
		},
		Faces: [][3]int{
			{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
			{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
			{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
			{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
		},
	}
}
