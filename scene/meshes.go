// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"slices"

	"cogentcore.org/minirender/base/ordmap"
	"cogentcore.org/minirender/shape"
)

// NoMesh is the mesh index of objects drawn as non-indexed
// triangle lists.
const NoMesh = -1

// QuadMesh is the index of the default two-triangle quad mesh,
// which is always present in a new registry.
const QuadMesh = 0

// Mesh is a named index list in the mesh arena.
type Mesh struct {
	Name    string
	Indices []uint32

	// MaxIndex is the largest index value, which objects
	// using this mesh must have more vertices than.
	MaxIndex uint32
}

// meshes is the mesh arena, where the index into the
// ordered map is the mesh handle.
type meshes struct {
	ordmap.Map[string, *Mesh]
}

// add adds a mesh with the given name. If the name already exists,
// its indices are replaced in place so existing handles stay valid.
func (ms *meshes) add(name string, indices []uint32) int {
	me := &Mesh{Name: name, Indices: slices.Clone(indices)}
	if len(indices) > 0 {
		me.MaxIndex = slices.Max(indices)
	}
	return ms.Add(name, me)
}

func newMeshes() meshes {
	var ms meshes
	ms.add("quad", shape.QuadIndices)
	return ms
}
