// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/uvkit/abf"
	"github.com/katalvlaran/uvkit/atlas"
	"github.com/katalvlaran/uvkit/geodesic"
	"github.com/katalvlaran/uvkit/mesh"
	"github.com/katalvlaran/uvkit/segment"
	"github.com/katalvlaran/uvkit/sparse"
)

var (
	// ErrInvalid is returned by Validate and Load for out-of-range values.
	ErrInvalid = fmt.Errorf("config: invalid value: %w", mesh.ErrInvalidParameter)

	// ErrDecode is returned when a document is not valid YAML for Config.
	ErrDecode = errors.New("config: cannot decode document")

	// ErrUnknownStrategy is returned for an unrecognized segmentation
	// strategy name.
	ErrUnknownStrategy = fmt.Errorf("config: unknown segmentation strategy: %w", mesh.ErrInvalidParameter)
)

// Strategy names a segmentation method.
type Strategy int

// Segmentation strategies, one per segment.SegmentBy* entry point.
const (
	StrategyFeatures Strategy = iota
	StrategyEdgeLoops
	StrategyHighCurvature
	StrategyGaussianCurvature
	StrategySymmetry
	StrategyTextureFlow
)

var strategyNames = [...]string{
	StrategyFeatures:          "features",
	StrategyEdgeLoops:         "edge_loops",
	StrategyHighCurvature:     "high_curvature",
	StrategyGaussianCurvature: "gaussian_curvature",
	StrategySymmetry:          "symmetry",
	StrategyTextureFlow:       "texture_flow",
}

// String implements fmt.Stringer.
func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy is the inverse of Strategy.String.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range strategyNames {
		if n == name {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(strategyNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(b []byte) error {
	v, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Segmentation selects and tunes the segmentation strategy.
type Segmentation struct {
	Strategy           Strategy   `yaml:"strategy"`
	FeatureAngle       float64    `yaml:"feature_angle"`
	CurvatureThreshold float64    `yaml:"curvature_threshold"`
	GaussianThreshold  float64    `yaml:"gaussian_threshold"`
	SymmetryNormal     [3]float64 `yaml:"symmetry_normal"`
	SymmetryOffset     float64    `yaml:"symmetry_offset"`
	SymmetryTolerance  float64    `yaml:"symmetry_tolerance"`
	FlowDirection      [3]float64 `yaml:"flow_direction"`
	FlowAngle          float64    `yaml:"flow_angle"`
}

// Unwrap configures per-island flattening.
type Unwrap struct {
	Method        atlas.Method `yaml:"method"`
	MaxIterations int          `yaml:"max_iterations"`
	Tolerance     float64      `yaml:"tolerance"`
	Penalty       float64      `yaml:"penalty"`
	Relax         int          `yaml:"relax"`
}

// Geodesic configures the heat method.
type Geodesic struct {
	TimeScale      float64 `yaml:"time_scale"`
	Regularization float64 `yaml:"regularization"`
}

// Solver configures every sparse factorization.
type Solver struct {
	Method        sparse.Method `yaml:"method"`
	DenseLimit    int           `yaml:"dense_limit"`
	MaxIterations int           `yaml:"max_iterations"`
	Tolerance     float64       `yaml:"tolerance"`
}

// Packing configures chart packing and the worker pool.
type Packing struct {
	Padding float64 `yaml:"padding"`
	Workers int     `yaml:"workers"`
}

// Config is the full pipeline configuration.
type Config struct {
	Segmentation Segmentation `yaml:"segmentation"`
	Unwrap       Unwrap       `yaml:"unwrap"`
	Geodesic     Geodesic     `yaml:"geodesic"`
	Solver       Solver       `yaml:"solver"`
	Packing      Packing      `yaml:"packing"`
}

// Default returns the configuration matching every package default.
func Default() Config {
	return Config{
		Segmentation: Segmentation{
			Strategy:           StrategyFeatures,
			FeatureAngle:       segment.DefaultFeatureAngle,
			CurvatureThreshold: segment.DefaultMeanCurvatureThreshold,
			GaussianThreshold:  segment.DefaultGaussianCurvatureThreshold,
			SymmetryNormal:     [3]float64{1, 0, 0},
			SymmetryTolerance:  segment.DefaultSymmetryTolerance,
			FlowDirection:      [3]float64{0, 1, 0},
			FlowAngle:          segment.DefaultTextureFlowAngle,
		},
		Unwrap: Unwrap{
			Method:        atlas.MethodAuto,
			MaxIterations: abf.DefaultMaxIterations,
			Tolerance:     abf.DefaultTolerance,
			Penalty:       abf.DefaultPenalty,
			Relax:         atlas.DefaultRelax,
		},
		Geodesic: Geodesic{
			TimeScale:      geodesic.DefaultTimeScale,
			Regularization: geodesic.DefaultRegularization,
		},
		Solver: Solver{
			Method:        sparse.MethodAuto,
			DenseLimit:    sparse.DefaultDenseLimit,
			MaxIterations: sparse.DefaultMaxIterations,
			Tolerance:     sparse.DefaultTolerance,
		},
		Packing: Packing{Padding: atlas.DefaultPadding},
	}
}

// Load decodes a YAML document over Default and validates the result. An
// empty document yields Default.
func Load(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		if errors.Is(err, mesh.ErrInvalidParameter) {
			return Config{}, err
		}
		return Config{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadFile opens path and calls Load.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	c, err := Load(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Encode writes c as YAML.
func (c Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return enc.Close()
}

func positive(x float64) bool    { return x > 0 && !math.IsInf(x, 0) }
func nonNegative(x float64) bool { return x >= 0 && !math.IsInf(x, 0) }

func invalid(field string, v any) error {
	return fmt.Errorf("%w: %s=%v", ErrInvalid, field, v)
}

// Validate reports the first field outside its documented range.
func (c Config) Validate() error {
	s := c.Segmentation
	switch {
	case s.Strategy < 0 || int(s.Strategy) >= len(strategyNames):
		return fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s.Strategy))
	case !(s.FeatureAngle >= 0 && s.FeatureAngle <= 180):
		return invalid("segmentation.feature_angle", s.FeatureAngle)
	case !nonNegative(s.CurvatureThreshold):
		return invalid("segmentation.curvature_threshold", s.CurvatureThreshold)
	case !nonNegative(s.GaussianThreshold):
		return invalid("segmentation.gaussian_threshold", s.GaussianThreshold)
	case !nonNegative(s.SymmetryTolerance):
		return invalid("segmentation.symmetry_tolerance", s.SymmetryTolerance)
	case s.Strategy == StrategySymmetry && s.SymmetryNormal == [3]float64{}:
		return invalid("segmentation.symmetry_normal", s.SymmetryNormal)
	case s.Strategy == StrategyTextureFlow && s.FlowDirection == [3]float64{}:
		return invalid("segmentation.flow_direction", s.FlowDirection)
	case !(s.FlowAngle >= 0 && s.FlowAngle <= 180):
		return invalid("segmentation.flow_angle", s.FlowAngle)
	}

	u := c.Unwrap
	switch {
	case u.Method < atlas.MethodAuto || u.Method > atlas.MethodABF:
		return invalid("unwrap.method", u.Method)
	case u.MaxIterations <= 0:
		return invalid("unwrap.max_iterations", u.MaxIterations)
	case !positive(u.Tolerance):
		return invalid("unwrap.tolerance", u.Tolerance)
	case !positive(u.Penalty):
		return invalid("unwrap.penalty", u.Penalty)
	case u.Relax < 0:
		return invalid("unwrap.relax", u.Relax)
	}

	switch g := c.Geodesic; {
	case !positive(g.TimeScale):
		return invalid("geodesic.time_scale", g.TimeScale)
	case !positive(g.Regularization):
		return invalid("geodesic.regularization", g.Regularization)
	}

	switch sv := c.Solver; {
	case sv.Method < sparse.MethodAuto || sv.Method > sparse.MethodCG:
		return invalid("solver.method", sv.Method)
	case sv.DenseLimit <= 0:
		return invalid("solver.dense_limit", sv.DenseLimit)
	case sv.MaxIterations <= 0:
		return invalid("solver.max_iterations", sv.MaxIterations)
	case !positive(sv.Tolerance):
		return invalid("solver.tolerance", sv.Tolerance)
	}

	switch p := c.Packing; {
	case !nonNegative(p.Padding):
		return invalid("packing.padding", p.Padding)
	case p.Workers < 0:
		return invalid("packing.workers", p.Workers)
	}
	return nil
}
