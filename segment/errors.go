// SPDX-License-Identifier: MIT

package segment

import (
	"fmt"
	"math"

	"github.com/katalvlaran/uvkit/mesh"
)

// Sentinel errors for segmentation. Each wraps a canonical mesh error kind.
var (
	// ErrNilTopology is returned when a nil *mesh.Topology is passed.
	ErrNilTopology = fmt.Errorf("segment: topology is nil: %w", mesh.ErrInvalidParameter)

	// ErrBadAngle is returned for an angle outside [0, 180] degrees or NaN.
	ErrBadAngle = fmt.Errorf("segment: angle must be within [0, 180] degrees: %w", mesh.ErrInvalidParameter)

	// ErrBadThreshold is returned for a negative or non-finite threshold.
	ErrBadThreshold = fmt.Errorf("segment: threshold must be finite and non-negative: %w", mesh.ErrInvalidParameter)

	// ErrBadPlane is returned for a zero or non-finite plane normal.
	ErrBadPlane = fmt.Errorf("segment: plane normal must be finite and non-zero: %w", mesh.ErrInvalidParameter)

	// ErrBadDirection is returned for a zero or non-finite texture direction.
	ErrBadDirection = fmt.Errorf("segment: direction must be finite and non-zero: %w", mesh.ErrInvalidParameter)

	// ErrNotPartition is returned by VerifyPartition.
	ErrNotPartition = fmt.Errorf("segment: islands do not partition the faces: %w", mesh.ErrInvalidParameter)
)

// Method tags for error wrapping.
const (
	methodPartition       = "Partition"
	methodFeatureEdges    = "FeatureEdges"
	methodEdgeLoops       = "SegmentByEdgeLoops"
	methodHighCurvature   = "HighCurvatureEdges"
	methodGaussian        = "GaussianCurvatureEdges"
	methodSymmetry        = "SymmetryEdges"
	methodTextureFlow     = "TextureFlowEdges"
	methodDetailIsolation = "SegmentByDetailIsolation"
)

func checkTopology(topo *mesh.Topology) error {
	if topo == nil {
		return ErrNilTopology
	}
	return nil
}

// validAngle reports whether deg is a usable angle threshold in degrees.
func validAngle(deg float64) bool {
	return deg >= 0 && deg <= 180
}

// validThreshold reports whether x is finite and non-negative.
func validThreshold(x float64) bool {
	return x >= 0 && !math.IsInf(x, 1)
}
