// SPDX-License-Identifier: MIT

// Package config loads pipeline defaults from YAML and turns them into the
// option values of the other packages.
//
// Every field has a default, so a document only needs the keys it
// changes:
//
//	segmentation:
//	  strategy: symmetry
//	  symmetry_normal: [1, 0, 0]
//	unwrap:
//	  method: abf
//	  max_iterations: 200
//	  relax: 5
//	solver:
//	  method: cg
//
// Unknown keys are rejected.
package config
