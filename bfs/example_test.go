// SPDX-License-Identifier: MIT

package bfs_test

import (
	"fmt"

	"github.com/katalvlaran/uvkit/bfs"
)

// ExampleWalk demonstrates BFS layering on a 3×3 grid of nodes r*3+c.
func ExampleWalk() {
	neighbors := func(v int) []int {
		r, c := v/3, v%3
		var out []int
		if r > 0 {
			out = append(out, v-3)
		}
		if c > 0 {
			out = append(out, v-1)
		}
		if c < 2 {
			out = append(out, v+1)
		}
		if r < 2 {
			out = append(out, v+3)
		}
		return out
	}

	res, err := bfs.Walk(9, 0, neighbors)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(res.Order)
	path, _ := res.PathTo(8)
	fmt.Println(path)
	// Output:
	// [0 1 3 2 4 6 5 7 8]
	// [0 1 2 5 8]
}

// ExampleComponents splits a path at a removed node.
func ExampleComponents() {
	neighbors := func(v int) []int {
		var out []int
		if v > 0 {
			out = append(out, v-1)
		}
		if v < 4 {
			out = append(out, v+1)
		}
		return out
	}
	comps, _ := bfs.Components(5, neighbors, func(v int) bool { return v != 2 })
	fmt.Println(comps)
	// Output:
	// [[0 1] [3 4]]
}
