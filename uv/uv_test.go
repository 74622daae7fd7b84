// SPDX-License-Identifier: MIT

package uv_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/uvkit/mesh"
	"github.com/katalvlaran/uvkit/meshgen"
	"github.com/katalvlaran/uvkit/uv"
)

func TestStatusString(t *testing.T) {
	assert.Equal(t, "ok", uv.StatusOK.String())
	assert.Equal(t, "degraded", uv.StatusDegraded.String())
	assert.Equal(t, "failed", uv.StatusFailed.String())
	assert.Equal(t, "Status(9)", uv.Status(9).String())
}

func TestUnusable(t *testing.T) {
	r := uv.Unusable(mesh.ErrNoBoundaryFound)
	assert.Empty(t, r.UV)
	assert.True(t, math.IsInf(r.Distortion, 1))
	assert.Equal(t, uv.StatusDegraded, r.Status)
	assert.ErrorIs(t, r.Reason, mesh.ErrNoBoundaryFound)
	assert.False(t, r.Usable())
}

func TestEvaluate(t *testing.T) {
	m := meshgen.UnitSquare()
	coords := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	r, err := uv.Evaluate(m, coords)
	require.NoError(t, err)
	assert.True(t, r.Usable())
	assert.Equal(t, uv.StatusOK, r.Status)
	assert.InDelta(t, 0, r.Distortion, 1e-12)
	assert.Len(t, r.Stretch, 2)

	_, err = uv.Evaluate(m, coords[:2])
	assert.ErrorIs(t, err, mesh.ErrInvalidParameter)

	r.UV[3].X = math.NaN()
	assert.False(t, r.Usable())
	r.UV[3].X = 1
	r.Status = uv.StatusFailed
	assert.False(t, r.Usable())
}

func TestNormalize(t *testing.T) {
	in := []r2.Vec{{X: -2, Y: 5}, {X: 2, Y: 5}, {X: 0, Y: 5}}
	out := uv.Normalize(in)
	assert.Equal(t, []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0.5, Y: 0}}, out)
	assert.Equal(t, -2.0, in[0].X, "input is not modified")

	again := uv.Normalize(out)
	for i := range out {
		assert.InDelta(t, out[i].X, again[i].X, 1e-15)
		assert.InDelta(t, out[i].Y, again[i].Y, 1e-15)
	}
	assert.Empty(t, uv.Normalize(nil))

	lo, hi := uv.Bounds(in)
	assert.Equal(t, r2.Vec{X: -2, Y: 5}, lo)
	assert.Equal(t, r2.Vec{X: 2, Y: 5}, hi)
}

func square(offset float64) []r2.Vec {
	return []r2.Vec{{X: offset, Y: offset}, {X: offset + 1, Y: offset}, {X: offset, Y: offset + 1}, {X: offset + 1, Y: offset + 1}}
}

func TestPack_NoOverlapInsideUnitSquare(t *testing.T) {
	charts := []uv.Chart{
		{Vertices: []int{0, 1, 2, 3}, UV: square(5)},
		{Vertices: []int{4, 5, 6, 7}, UV: square(-3)},
	}
	out, err := uv.Pack(9, charts, 0.1)
	require.NoError(t, err)
	require.Len(t, out, 9)
	for _, p := range out {
		assert.True(t, p.X >= 0 && p.X <= 1+1e-12 && p.Y >= 0 && p.Y <= 1+1e-12, "%v", p)
	}
	assert.Equal(t, r2.Vec{}, out[8], "unlisted vertex stays at origin")

	lo0, hi0 := uv.Bounds(out[0:4])
	lo1, hi1 := uv.Bounds(out[4:8])
	overlapX := lo0.X < hi1.X && lo1.X < hi0.X
	overlapY := lo0.Y < hi1.Y && lo1.Y < hi0.Y
	assert.False(t, overlapX && overlapY, "charts overlap: %v-%v vs %v-%v", lo0, hi0, lo1, hi1)

	// Both charts keep their aspect and equal size.
	assert.InDelta(t, hi0.X-lo0.X, hi1.X-lo1.X, 1e-12)
	assert.InDelta(t, hi0.X-lo0.X, hi0.Y-lo0.Y, 1e-12)
}

func TestPack_Errors(t *testing.T) {
	_, err := uv.Pack(4, nil, -1)
	assert.ErrorIs(t, err, uv.ErrBadPadding)

	_, err = uv.Pack(4, []uv.Chart{{Vertices: []int{0}, UV: nil}}, 0)
	assert.ErrorIs(t, err, uv.ErrChartShape)

	_, err = uv.Pack(2, []uv.Chart{{Vertices: []int{5}, UV: []r2.Vec{{}}}}, 0)
	assert.True(t, errors.Is(err, mesh.ErrOutOfRange))

	out, err := uv.Pack(3, nil, 0)
	require.NoError(t, err)
	assert.Len(t, out, 3)
}
