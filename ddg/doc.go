// SPDX-License-Identifier: MIT

// Package ddg provides the discrete differential geometry operators the
// parameterization and geodesic solvers are assembled from.
//
// Operators (sparse.CSR):
//
//   - CotanLaplacian: n×n, positive semi-definite, rows summing to zero.
//   - MassMatrix: lumped barycentric vertex areas on the diagonal.
//   - Gradient: 3F×n, per-face gradient of a per-vertex scalar field.
//
// Fields:
//
//   - Divergence: integrated per-vertex divergence of a per-face field.
//   - VertexAreas, VertexNormals, AngleSums.
//   - GaussianCurvature (angle defect over vertex area), MeanCurvature
//     (cotangent mean-curvature normal) and PrincipalCurvatures.
//
// The operators satisfy L = Gᵀ·diag(A)·G, which the geodesic solver relies
// on to pose its Poisson step.
package ddg
