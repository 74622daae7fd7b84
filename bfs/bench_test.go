// SPDX-License-Identifier: MIT

package bfs_test

import (
	"testing"

	"github.com/katalvlaran/uvkit/bfs"
)

// BenchmarkWalk_Chain measures BFS on a linear chain of N nodes.
func BenchmarkWalk_Chain(b *testing.B) {
	const N = 10000
	neighbors := func(v int) []int {
		switch v {
		case 0:
			return []int{1}
		case N - 1:
			return []int{N - 2}
		default:
			return []int{v - 1, v + 1}
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bfs.Walk(N, 0, neighbors)
	}
}

// BenchmarkComponents_Grid flood-fills a 200×200 grid with every tenth column removed.
func BenchmarkComponents_Grid(b *testing.B) {
	const side = 200
	neighbors := func(v int) []int {
		r, c := v/side, v%side
		out := make([]int, 0, 4)
		if r > 0 {
			out = append(out, v-side)
		}
		if c > 0 {
			out = append(out, v-1)
		}
		if c < side-1 {
			out = append(out, v+1)
		}
		if r < side-1 {
			out = append(out, v+side)
		}
		return out
	}
	include := func(v int) bool { return v%side%10 != 9 }

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bfs.Components(side*side, neighbors, include)
	}
}
