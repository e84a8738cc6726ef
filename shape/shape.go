// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape generates indexed triangle meshes (vertex positions,
// normals, colors and indexes) for standard shapes.
package shape

import (
	"errors"

	"cogentcore.org/minirender/math32"
)

// ErrInvalidShape is returned when shape parameters are out of range.
var ErrInvalidShape = errors.New("shape: invalid shape parameters")

// Shape is an interface for all shape-constructing elements.
// N returns the sizes, which are used to allocate a [Mesh],
// and Set then fills in the allocated arrays.
type Shape interface {
	// N returns number of vertex, index points in this shape element.
	N() (numVertex, nIndex int)

	// Validate returns an error if the shape parameters are invalid.
	Validate() error

	// Set sets the points of the shape in the given allocated mesh.
	Set(m *Mesh)
}

// Mesh holds the vertex data of an indexed triangle mesh.
// Positions and Normals have 3 floats per vertex,
// Colors have 4 (RGBA), and Indices have 3 per triangle.
type Mesh struct {
	Positions math32.ArrayF32
	Normals   math32.ArrayF32
	Colors    math32.ArrayF32
	Indices   math32.ArrayU32
}

// NewMesh allocates a mesh of the given sizes.
func NewMesh(numVertex, nIndex int) *Mesh {
	return &Mesh{
		Positions: math32.NewArrayF32(numVertex*3, numVertex*3),
		Normals:   math32.NewArrayF32(numVertex*3, numVertex*3),
		Colors:    math32.NewArrayF32(numVertex*4, numVertex*4),
		Indices:   math32.NewArrayU32(nIndex, nIndex),
	}
}

// Generate validates the shape, allocates a mesh for it and sets it.
func Generate(sh Shape) (*Mesh, error) {
	if err := sh.Validate(); err != nil {
		return nil, err
	}
	m := NewMesh(sh.N())
	sh.Set(m)
	return m, nil
}

// NVertex returns the number of vertices in the mesh.
func (m *Mesh) NVertex() int {
	return len(m.Positions) / 3
}

// NIndex returns the number of indexes in the mesh.
func (m *Mesh) NIndex() int {
	return len(m.Indices)
}
