// SPDX-License-Identifier: MIT

package mesh

import (
	"fmt"
	"sort"
)

// SubMesh extracts the faces listed in faces into a compact mesh.
//
// It returns the new mesh and localToGlobal, where localToGlobal[i] is the
// index in m of the sub-mesh vertex i. Vertices are numbered in order of
// first appearance over the given faces, so the result is deterministic.
// Duplicate face indices are ignored.
func (m *Mesh) SubMesh(faces []int) (*Mesh, []int, error) {
	if len(faces) == 0 {
		return nil, nil, fmt.Errorf("mesh: SubMesh: no faces: %w", ErrDegenerateMesh)
	}

	seen := make(map[int]struct{}, len(faces))
	globalToLocal := make(map[int]int, len(faces))
	var localToGlobal []int
	sub := &Mesh{Faces: make([][3]int, 0, len(faces))}

	for _, fi := range faces {
		if err := m.CheckFace(fi); err != nil {
			return nil, nil, fmt.Errorf("mesh: SubMesh: %w", err)
		}
		if _, dup := seen[fi]; dup {
			continue
		}
		seen[fi] = struct{}{}
		var local [3]int
		for j, gv := range m.Faces[fi] {
			lv, ok := globalToLocal[gv]
			if !ok {
				lv = len(localToGlobal)
				globalToLocal[gv] = lv
				localToGlobal = append(localToGlobal, gv)
				sub.Vertices = append(sub.Vertices, m.Vertices[gv])
			}
			local[j] = lv
		}
		sub.Faces = append(sub.Faces, local)
	}

	return sub, localToGlobal, nil
}

// FaceVertices returns the sorted set of vertices referenced by faces.
func (m *Mesh) FaceVertices(faces []int) []int {
	set := make(map[int]struct{}, 3*len(faces))
	for _, f := range faces {
		for _, v := range m.Faces[f] {
			set[v] = struct{}{}
		}
	}
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
