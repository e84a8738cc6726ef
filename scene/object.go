// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"

	"cogentcore.org/minirender/math32"
)

// Standard attribute names, matching the shader contract.
const (
	Position = "position"
	Normal   = "normal"
	Color    = "color"
)

// VertexAttribute is one named per-vertex float attribute,
// with Dim components per vertex.
type VertexAttribute struct {
	Name string
	Dim  int
	Data []float32
}

// NewAttribute returns a [VertexAttribute].
func NewAttribute(name string, dim int, data []float32) VertexAttribute {
	return VertexAttribute{Name: name, Dim: dim, Data: data}
}

// NVertex returns the number of vertices in the attribute data.
func (va *VertexAttribute) NVertex() int {
	if va.Dim == 0 {
		return 0
	}
	return len(va.Data) / va.Dim
}

// Validate checks the dimension and that the data length
// is a multiple of it.
func (va *VertexAttribute) Validate() error {
	if va.Dim < 1 || va.Dim > 4 {
		return fmt.Errorf("%w: %q has dimension %d", ErrAttributeDim, va.Name, va.Dim)
	}
	if len(va.Data)%va.Dim != 0 {
		return fmt.Errorf("%w: %q has %d values, not a multiple of %d", ErrAttributeDim, va.Name, len(va.Data), va.Dim)
	}
	return nil
}

// Placement is one instance at which an object is drawn:
// a translation, and an optional axis the object spins around
// as the frame tick advances.
type Placement struct {
	Translation math32.Vector3

	// RotationAxis, if non-nil, rotates the object by
	// tick * angle step around this axis, after the translation.
	RotationAxis *math32.Vector3
}

// At returns a non-rotating [Placement] at the given position.
func At(x, y, z float32) Placement {
	return Placement{Translation: math32.Vec3(x, y, z)}
}

// Rotating returns a copy of the placement that rotates around axis.
func (p Placement) Rotating(axis math32.Vector3) Placement {
	p.RotationAxis = &axis
	return p
}

// Angle returns the rotation angle in radians at the given tick,
// which is zero for placements without a rotation axis.
func (p Placement) Angle(tick int, step float32) float32 {
	if p.RotationAxis == nil {
		return 0
	}
	return float32(tick) * step
}

// Object is a drawable object: its vertex attributes, the placements
// at which it is drawn, and the index of its mesh in the registry's
// mesh arena ([NoMesh] for non-indexed triangle lists).
type Object struct {
	Attributes []VertexAttribute
	Placements []Placement
	Mesh       int

	nVertex int
	dirty   bool
}

// NVertex returns the number of vertices of the object.
func (ob *Object) NVertex() int {
	return ob.nVertex
}

// Attribute returns the attribute with the given name, or nil.
func (ob *Object) Attribute(name string) *VertexAttribute {
	for i := range ob.Attributes {
		if ob.Attributes[i].Name == name {
			return &ob.Attributes[i]
		}
	}
	return nil
}

// Dirty returns whether the attribute data changed since the
// last [Object.ClearDirty]; new objects start dirty.
func (ob *Object) Dirty() bool {
	return ob.dirty
}

// ClearDirty is called once the attribute data has been uploaded.
func (ob *Object) ClearDirty() {
	ob.dirty = false
}
