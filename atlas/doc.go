// SPDX-License-Identifier: MIT

// Package atlas produces a complete texture atlas for a mesh: it cuts the
// surface into islands, flattens each island and packs the charts into
// the unit square.
//
// Strategies implement Generator. Builtin is always available and runs
// feature segmentation, per-island LSCM with an ABF fallback and shelf
// packing. External stands in for a strategy backed by a native library
// that this build does not link; it reports itself unavailable, and
// Select skips it.
//
//	gen, err := atlas.Select(atlas.External("uvatlas"), atlas.Builtin())
//	a, err := gen.Generate(ctx, m, atlas.DefaultOptions())
//
// Charts are flattened at their own scale, relaxed with lscm.Relax and
// packed with one uniform factor each. A vertex on a seam gets one copy
// per chart: Atlas.Mesh is the input with its seams split, and
// Atlas.Original maps every copy back to the input vertex.
//
// Islands are disjoint, so UnwrapIslands flattens them on a bounded pool
// of goroutines. Each worker reads the shared mesh and builds its own
// sub-mesh.
package atlas
