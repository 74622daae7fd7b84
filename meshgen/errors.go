// SPDX-License-Identifier: MIT
// Package: uvkit/meshgen
//
// errors.go - sentinel errors for the meshgen package.
//
// Callers branch with errors.Is(err, ErrX). Every sentinel wraps
// mesh.ErrInvalidParameter, and constructors attach the method tag with %w.

package meshgen

import (
	"fmt"

	"github.com/katalvlaran/uvkit/mesh"
)

// ErrTooFewVertices indicates that a count parameter (rows, cols, segments,
// rings) is below the allowed minimum for the requested constructor.
var ErrTooFewVertices = fmt.Errorf("meshgen: parameter too small: %w", mesh.ErrInvalidParameter)

// ErrInvalidSize indicates a non-positive or non-finite length parameter.
var ErrInvalidSize = fmt.Errorf("meshgen: size must be finite and positive: %w", mesh.ErrInvalidParameter)

// ErrUnknownSolid indicates an unsupported SolidName.
var ErrUnknownSolid = fmt.Errorf("meshgen: unknown solid: %w", mesh.ErrInvalidParameter)

// Method tags for error context.
const (
	methodGrid          = "Grid"
	methodSymmetricGrid = "SymmetricGrid"
	methodPlatonic      = "Platonic"
	methodCylinder      = "Cylinder"
	methodHemisphere    = "Hemisphere"
	methodJitter        = "Jitter"
)

// Minimum counts.
const (
	minGridDim      = 1
	minHalfCols     = 1
	minSegments     = 3
	minSurfaceRings = 1
)
