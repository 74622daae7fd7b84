// SPDX-License-Identifier: MIT
// Package: uvkit/meshgen
//
// planar.go - flat meshes in the z = 0 plane.
//
// Layout: vertex (i, j) of a grid has index j*(cols+1)+i. Each cell
// (a=(i,j), b=(i+1,j), c=(i+1,j+1), d=(i,j+1)) is split along its a-c
// diagonal into faces (a,b,c) and (a,c,d), both counter-clockwise from +Z.

package meshgen

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvkit/mesh"
)

// UnitSquare returns the two-triangle mesh of [0,1]² with vertices
// 0=(0,0), 1=(1,0), 2=(0,1), 3=(1,1).
func UnitSquare() *mesh.Mesh {
	m, _ := Grid(1, 1, 1, 1) // parameters are valid
	return m
}

// Triangle returns the single-face mesh (a, b, c).
func Triangle(a, b, c r3.Vec) *mesh.Mesh {
	return &mesh.Mesh{Vertices: []r3.Vec{a, b, c}, Faces: [][3]int{{0, 1, 2}}}
}

// Grid returns a cols×rows cell grid spanning [0,width]×[0,height].
//
// Complexity: O(rows*cols).
func Grid(cols, rows int, width, height float64) (*mesh.Mesh, error) {
	if cols < minGridDim || rows < minGridDim {
		return nil, fmt.Errorf("%s: cols=%d, rows=%d (each must be ≥ %d): %w",
			methodGrid, cols, rows, minGridDim, ErrTooFewVertices)
	}
	if !validSize(width) || !validSize(height) {
		return nil, fmt.Errorf("%s: width=%v, height=%v: %w", methodGrid, width, height, ErrInvalidSize)
	}
	xs := make([]float64, cols+1)
	for i := range xs {
		xs[i] = width * float64(i) / float64(cols)
	}
	return gridFromColumns(xs, rows, height/float64(rows)), nil
}

// SymmetricGrid returns a grid mirror-symmetric about the plane x = 0 with
// no vertex on that plane: 2*halfCols vertex columns at
// x = ±(k+0.5)*cell and rows cells of height cell. The middle column of
// cells straddles the plane.
func SymmetricGrid(halfCols, rows int, cell float64) (*mesh.Mesh, error) {
	if halfCols < minHalfCols || rows < minGridDim {
		return nil, fmt.Errorf("%s: halfCols=%d, rows=%d: %w", methodSymmetricGrid, halfCols, rows, ErrTooFewVertices)
	}
	if !validSize(cell) {
		return nil, fmt.Errorf("%s: cell=%v: %w", methodSymmetricGrid, cell, ErrInvalidSize)
	}
	xs := make([]float64, 2*halfCols)
	for i := range xs {
		xs[i] = (float64(i-halfCols) + 0.5) * cell
	}
	return gridFromColumns(xs, rows, cell), nil
}

// gridFromColumns triangulates the vertex columns xs over rows cells of
// height dy.
func gridFromColumns(xs []float64, rows int, dy float64) *mesh.Mesh {
	nx := len(xs)
	cols := nx - 1
	m := &mesh.Mesh{
		Vertices: make([]r3.Vec, 0, nx*(rows+1)),
		Faces:    make([][3]int, 0, 2*cols*rows),
	}
	for j := 0; j <= rows; j++ {
		for i := 0; i < nx; i++ {
			m.Vertices = append(m.Vertices, r3.Vec{X: xs[i], Y: dy * float64(j)})
		}
	}
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			a := j*nx + i
			b := a + 1
			c := b + nx
			d := a + nx
			m.Faces = append(m.Faces, [3]int{a, b, c}, [3]int{a, c, d})
		}
	}
	return m
}

func validSize(x float64) bool {
	return x > 0 && !math.IsInf(x, 0)
}
