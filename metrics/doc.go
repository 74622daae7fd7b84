// SPDX-License-Identifier: MIT

// Package metrics evaluates the quality of a UV map against its 3D mesh.
//
// All functions are pure: they read the mesh and the per-vertex UV array and
// return new values.
//
//   - Distortion: Σ A3d·(r + 1/r - 2) with r = A_uv/A3d; faces with either
//     area below mesh.DegenerateArea contribute 0.
//   - ScaledDistortion: Distortion after rescaling uv uniformly to the 3D
//     surface area, so normalized layouts of isometric maps score 0.
//   - Stretch: per face, max/min of the three UV-to-3D edge length ratios
//     (always ≥ 1; faces with a zero-length 3D edge report 1, faces with a
//     collapsed UV edge report +Inf).
//   - StretchNorms: the L2 (root mean square) and L∞ edge scale over the
//     first two edges of every face.
//   - Summarize bundles the above into a Report.
package metrics
