// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"fmt"

	"cogentcore.org/minirender/colors"
	"cogentcore.org/minirender/math32"
)

// QuadIndices are the indexes of the two counter-clockwise
// triangles of a [Plane] quad, also used as the default index
// list for polygons registered without their own indexes.
var QuadIndices = []uint32{0, 2, 1, 1, 2, 3}

// Plane is a flat quad in the XY plane facing +Z,
// centered on Pos, with a single uniform color.
type Plane struct {
	// center of the quad
	Pos math32.Vector3

	// size along X
	Width float32

	// size along Y
	Height float32

	// color of all four vertices
	Color colors.RGBA
}

// NewPlane returns a white Plane of the given size centered at pos.
func NewPlane(pos math32.Vector3, width, height float32) *Plane {
	return &Plane{Pos: pos, Width: width, Height: height, Color: colors.RGBA{R: 1, G: 1, B: 1, A: 1}}
}

func (pl *Plane) Validate() error {
	if !(pl.Width > 0) || !(pl.Height > 0) {
		return fmt.Errorf("%w: plane width=%g height=%g", ErrInvalidShape, pl.Width, pl.Height)
	}
	return nil
}

func (pl *Plane) N() (numVertex, nIndex int) {
	return 4, len(QuadIndices)
}

// Set sets the corners in the order top-left, top-right,
// bottom-left, bottom-right.
func (pl *Plane) Set(m *Mesh) {
	hw, hh := pl.Width/2, pl.Height/2
	corners := [4]math32.Vector3{
		math32.Vec3(-hw, hh, 0),
		math32.Vec3(hw, hh, 0),
		math32.Vec3(-hw, -hh, 0),
		math32.Vec3(hw, -hh, 0),
	}
	for i, c := range corners {
		m.Positions.SetVector3(i*3, c.Add(pl.Pos))
		m.Normals.SetVector3(i*3, math32.Vec3(0, 0, 1))
		m.Colors.SetVector4(i*4, pl.Color.Vector4())
	}
	m.Indices.Set(0, QuadIndices...)
}
