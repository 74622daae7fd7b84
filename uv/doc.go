// SPDX-License-Identifier: MIT

// Package uv holds the result type shared by every unwrapper and the
// layout helpers that post-process UV coordinates.
//
// A Result always carries one UV entry per mesh vertex, or none at all.
// Quality failures never surface as errors; they are reported through
// Result.Status and Result.Reason:
//
//	res, err := lscm.Unwrap(ctx, m)
//	if err != nil {
//	    return err // structural or solver failure
//	}
//	if !res.Usable() {
//	    log.Println("no UV:", res.Reason) // e.g. mesh.ErrNoBoundaryFound
//	}
//
// Normalize maps coordinates per axis into [0,1]² and is idempotent.
// Pack lays several charts side by side with a shelf packer and rescales
// the whole layout uniformly into [0,1]².
package uv
