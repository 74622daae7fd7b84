// SPDX-License-Identifier: MIT

package config_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/uvkit/abf"
	"github.com/katalvlaran/uvkit/atlas"
	"github.com/katalvlaran/uvkit/config"
	"github.com/katalvlaran/uvkit/geodesic"
	"github.com/katalvlaran/uvkit/lscm"
	"github.com/katalvlaran/uvkit/mesh"
	"github.com/katalvlaran/uvkit/meshgen"
	"github.com/katalvlaran/uvkit/segment"
	"github.com/katalvlaran/uvkit/sparse"
	"github.com/katalvlaran/uvkit/uv"
)

const sample = `
segmentation:
  strategy: symmetry
  symmetry_normal: [1, 0, 0]
unwrap:
  method: abf
  max_iterations: 200
solver:
  method: cg
packing:
  workers: 2
`

func TestDefault(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Validate())
	def, got := atlas.DefaultOptions(), c.AtlasOptions()
	assert.Equal(t, def.FeatureAngle, got.FeatureAngle)
	assert.Equal(t, def.Method, got.Method)
	assert.Equal(t, def.Padding, got.Padding)
	assert.Equal(t, def.Workers, got.Workers)
	assert.Equal(t, def.Relax, got.Relax)
	assert.Equal(t, config.StrategyFeatures, c.Segmentation.Strategy)
	assert.Equal(t, abf.DefaultMaxIterations, c.Unwrap.MaxIterations)
	assert.Equal(t, sparse.DefaultDenseLimit, c.Solver.DenseLimit)
}

func TestLoad(t *testing.T) {
	c, err := config.Load(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, config.StrategySymmetry, c.Segmentation.Strategy)
	assert.Equal(t, atlas.MethodABF, c.Unwrap.Method)
	assert.Equal(t, 200, c.Unwrap.MaxIterations)
	assert.Equal(t, sparse.MethodCG, c.Solver.Method)
	assert.Equal(t, 2, c.Packing.Workers)

	// Untouched keys keep their defaults.
	def := config.Default()
	assert.Equal(t, def.Segmentation.FeatureAngle, c.Segmentation.FeatureAngle)
	assert.Equal(t, def.Geodesic, c.Geodesic)
	assert.Equal(t, def.Unwrap.Penalty, c.Unwrap.Penalty)

	empty, err := config.Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, def, empty)
}

func TestLoad_Errors(t *testing.T) {
	for name, tc := range map[string]struct {
		doc  string
		want error
	}{
		"unknown key":      {"unwrap:\n  iterations: 3\n", config.ErrDecode},
		"not a mapping":    {"- 1\n- 2\n", config.ErrDecode},
		"unknown strategy": {"segmentation:\n  strategy: spiral\n", config.ErrUnknownStrategy},
		"unknown method":   {"unwrap:\n  method: arap\n", atlas.ErrUnknownMethod},
		"bad solver":       {"solver:\n  method: lu\n", sparse.ErrOptionViolation},
		"zero iterations":  {"unwrap:\n  max_iterations: 0\n", config.ErrInvalid},
		"negative relax":   {"unwrap:\n  relax: -1\n", config.ErrInvalid},
		"negative padding": {"packing:\n  padding: -0.5\n", config.ErrInvalid},
		"angle":            {"segmentation:\n  feature_angle: 270\n", config.ErrInvalid},
		"zero normal":      {"segmentation:\n  strategy: symmetry\n  symmetry_normal: [0, 0, 0]\n", config.ErrInvalid},
		"time scale":       {"geodesic:\n  time_scale: 0\n", config.ErrInvalid},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(strings.NewReader(tc.doc))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	c, err := config.Load(strings.NewReader(sample))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf))
	assert.Contains(t, buf.String(), "strategy: symmetry")
	assert.Contains(t, buf.String(), "method: abf")

	back, err := config.Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, c, back)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uvkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	c, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.StrategySymmetry, c.Segmentation.Strategy)

	_, err = config.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStrategyNames(t *testing.T) {
	for s := config.StrategyFeatures; s <= config.StrategyTextureFlow; s++ {
		got, err := config.ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	assert.Equal(t, "Strategy(42)", config.Strategy(42).String())
	_, err := config.Strategy(42).MarshalText()
	assert.ErrorIs(t, err, mesh.ErrInvalidParameter)
}

func TestSegment_EveryStrategy(t *testing.T) {
	m, err := meshgen.Platonic(meshgen.Octahedron)
	require.NoError(t, err)
	topo, err := mesh.NewTopology(m)
	require.NoError(t, err)
	for s := config.StrategyFeatures; s <= config.StrategyTextureFlow; s++ {
		t.Run(s.String(), func(t *testing.T) {
			c := config.Default()
			c.Segmentation.Strategy = s
			islands, err := c.Segment(topo)
			require.NoError(t, err)
			require.NotEmpty(t, islands)
			assert.NoError(t, segment.VerifyPartition(len(m.Faces), islands))
		})
	}

	c := config.Default()
	islands, err := c.Segment(topo)
	require.NoError(t, err)
	assert.Len(t, islands, 8)

	c.Segmentation.Strategy = config.Strategy(42)
	_, err = c.Segment(topo)
	assert.ErrorIs(t, err, config.ErrUnknownStrategy)
}

func TestSymmetryStrategy(t *testing.T) {
	m, err := meshgen.SymmetricGrid(2, 3, 1)
	require.NoError(t, err)
	topo, err := mesh.NewTopology(m)
	require.NoError(t, err)
	c, err := config.Load(strings.NewReader(sample))
	require.NoError(t, err)
	islands, err := c.Segment(topo)
	require.NoError(t, err)
	assert.Len(t, islands, 2)
}

func TestOptionConverters(t *testing.T) {
	c, err := config.Load(strings.NewReader(sample))
	require.NoError(t, err)
	ctx := context.Background()
	m := meshgen.UnitSquare()

	res, err := lscm.Unwrap(ctx, m, c.LSCMOptions()...)
	require.NoError(t, err)
	assert.Equal(t, uv.StatusOK, res.Status)

	res, err = abf.Unwrap(ctx, m, c.ABFOptions()...)
	require.NoError(t, err)
	assert.True(t, res.Usable())

	s, err := geodesic.Prepare(ctx, m, c.Geodesic.TimeScale, c.GeodesicOptions()...)
	require.NoError(t, err)
	d, err := s.Distance([]int{0})
	require.NoError(t, err)
	assert.Len(t, d, 4)

	a, err := atlas.Builtin().Generate(ctx, m, c.AtlasOptions())
	require.NoError(t, err)
	assert.True(t, a.Usable())
}

func TestAtlasOptions_UnwrapBudgetReachesIslands(t *testing.T) {
	m, err := meshgen.Hemisphere(8, 3, 1)
	require.NoError(t, err)
	ctx := context.Background()
	const base = "segmentation:\n  feature_angle: 180\nunwrap:\n  method: abf\n"

	c, err := config.Load(strings.NewReader(base))
	require.NoError(t, err)
	o := c.AtlasOptions()
	assert.Equal(t, atlas.DefaultRelax, o.Relax)
	assert.NotEmpty(t, o.ABF)
	assert.NotEmpty(t, o.LSCM)
	assert.NotEmpty(t, o.Solver)
	a, err := atlas.Builtin().Generate(ctx, m, o)
	require.NoError(t, err)
	require.Equal(t, uv.StatusOK, a.Status, "reason: %v", a.Reason)

	c, err = config.Load(strings.NewReader(base + "  max_iterations: 1\n  relax: 0\n"))
	require.NoError(t, err)
	o = c.AtlasOptions()
	assert.Zero(t, o.Relax)
	a, err = atlas.Builtin().Generate(ctx, m, o)
	require.NoError(t, err)
	assert.Equal(t, uv.StatusDegraded, a.Status)
	assert.ErrorIs(t, a.Reason, mesh.ErrNonConvergence)
}
