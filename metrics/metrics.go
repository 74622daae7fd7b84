// SPDX-License-Identifier: MIT

package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/uvkit/mesh"
)

// ErrLengthMismatch is returned when the UV array does not have one entry
// per mesh vertex.
var ErrLengthMismatch = fmt.Errorf("metrics: uv length does not match vertex count: %w", mesh.ErrInvalidParameter)

func check(m *mesh.Mesh, uv []r2.Vec) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if len(uv) != len(m.Vertices) {
		return fmt.Errorf("%w: %d uv, %d vertices", ErrLengthMismatch, len(uv), len(m.Vertices))
	}
	return nil
}

// uvArea returns the unsigned area of face f in uv.
func uvArea(m *mesh.Mesh, uv []r2.Vec, f int) float64 {
	face := m.Faces[f]
	e1 := r2.Sub(uv[face[1]], uv[face[0]])
	e2 := r2.Sub(uv[face[2]], uv[face[0]])
	return 0.5 * math.Abs(r2.Cross(e1, e2))
}

// Distortion returns the area-weighted symmetric area distortion of uv.
// An isometric map has distortion 0.
func Distortion(m *mesh.Mesh, uv []r2.Vec) (float64, error) {
	if err := check(m, uv); err != nil {
		return 0, err
	}
	var total float64
	for f := range m.Faces {
		a3 := m.FaceArea(f)
		a2 := uvArea(m, uv, f)
		if a3 <= mesh.DegenerateArea || a2 <= mesh.DegenerateArea {
			continue
		}
		r := a2 / a3
		total += a3 * (r + 1/r - 2)
	}
	return total, nil
}

// ScaledDistortion returns the Distortion of uv after a uniform rescale
// that makes the total UV area equal the total 3D area. It measures the
// shape of a layout independently of its normalization into [0,1]². A
// layout with zero area is returned unscaled.
func ScaledDistortion(m *mesh.Mesh, uv []r2.Vec) (float64, error) {
	if err := check(m, uv); err != nil {
		return 0, err
	}
	var a2 float64
	for f := range m.Faces {
		a2 += uvArea(m, uv, f)
	}
	a3 := floats.Sum(m.FaceAreas())
	if a2 <= mesh.DegenerateArea || a3 <= mesh.DegenerateArea {
		return Distortion(m, uv)
	}
	k := math.Sqrt(a3 / a2)
	scaled := make([]r2.Vec, len(uv))
	for i, p := range uv {
		scaled[i] = r2.Scale(k, p)
	}
	return Distortion(m, scaled)
}

// Stretch returns the per-face ratio of the largest to the smallest edge
// scale factor.
func Stretch(m *mesh.Mesh, uv []r2.Vec) ([]float64, error) {
	if err := check(m, uv); err != nil {
		return nil, err
	}
	out := make([]float64, len(m.Faces))
	var s [3]float64
	for f, face := range m.Faces {
		degenerate := false
		for j := 0; j < 3; j++ {
			a, b := face[j], face[(j+1)%3]
			l3 := r3.Norm(r3.Sub(m.Vertices[b], m.Vertices[a]))
			if l3 <= mesh.DegenerateArea {
				degenerate = true
				break
			}
			s[j] = r2.Norm(r2.Sub(uv[b], uv[a])) / l3
		}
		switch {
		case degenerate:
			out[f] = 1
		case floats.Min(s[:]) == 0:
			out[f] = math.Inf(1)
		default:
			out[f] = math.Max(1, floats.Max(s[:])/floats.Min(s[:]))
		}
	}
	return out, nil
}

// StretchNorms returns the L2 and L∞ edge scale of uv, measured on the two
// edges leaving the first corner of every face. Faces with a degenerate
// edge are skipped; the L2 mean still divides by the face count.
func StretchNorms(m *mesh.Mesh, uv []r2.Vec) (l2, linf float64, err error) {
	if err = check(m, uv); err != nil {
		return 0, 0, err
	}
	var sum float64
	for _, face := range m.Faces {
		p0 := m.Vertices[face[0]]
		l1 := r3.Norm(r3.Sub(m.Vertices[face[1]], p0))
		l2e := r3.Norm(r3.Sub(m.Vertices[face[2]], p0))
		if l1 <= mesh.DegenerateArea || l2e <= mesh.DegenerateArea {
			continue
		}
		s1 := r2.Norm(r2.Sub(uv[face[1]], uv[face[0]])) / l1
		s2 := r2.Norm(r2.Sub(uv[face[2]], uv[face[0]])) / l2e
		sum += s1*s1 + s2*s2
		linf = math.Max(linf, math.Max(s1, s2))
	}
	return math.Sqrt(sum / float64(len(m.Faces))), linf, nil
}

// Report is a summary of the quality of one UV map.
type Report struct {
	Distortion       float64
	ScaledDistortion float64
	MeanStretch      float64
	MaxStretch       float64
	L2               float64
	LInf             float64
}

// Summarize evaluates every metric of uv on m.
func Summarize(m *mesh.Mesh, uv []r2.Vec) (Report, error) {
	d, err := Distortion(m, uv)
	if err != nil {
		return Report{}, err
	}
	sd, err := ScaledDistortion(m, uv)
	if err != nil {
		return Report{}, err
	}
	st, err := Stretch(m, uv)
	if err != nil {
		return Report{}, err
	}
	l2, linf, err := StretchNorms(m, uv)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Distortion:       d,
		ScaledDistortion: sd,
		MeanStretch:      floats.Sum(st) / float64(len(st)),
		MaxStretch:       floats.Max(st),
		L2:               l2,
		LInf:             linf,
	}, nil
}
