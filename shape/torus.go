// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"fmt"

	"cogentcore.org/minirender/colors"
	"cogentcore.org/minirender/math32"
)

// Torus is a torus mesh, defined by the radius of the solid tube
// (InnerRadius) and the distance from the center of the torus to the
// center of the tube (OuterRadius). Vertex colors run once around the
// hue circle along the segments.
type Torus struct {
	// number of rings around the tube cross-section
	Rings int `min:"1"`

	// number of segments around the torus axis
	Segments int `min:"1"`

	// radius of the solid tube
	InnerRadius float32

	// radius from the torus center to the center of the tube
	OuterRadius float32
}

// NewTorus returns a Torus with the given number of rings and segments
// and the given tube and ring radii.
func NewTorus(rings, segments int, innerRadius, outerRadius float32) *Torus {
	return &Torus{Rings: rings, Segments: segments, InnerRadius: innerRadius, OuterRadius: outerRadius}
}

// Defaults sets a reasonable default torus.
func (tr *Torus) Defaults() {
	tr.Rings = 32
	tr.Segments = 32
	tr.InnerRadius = 1
	tr.OuterRadius = 2
}

func (tr *Torus) Validate() error {
	if tr.Rings < 1 || tr.Segments < 1 || !(tr.InnerRadius > 0) || !(tr.OuterRadius > 0) {
		return fmt.Errorf("%w: torus rings=%d segments=%d inner=%g outer=%g", ErrInvalidShape, tr.Rings, tr.Segments, tr.InnerRadius, tr.OuterRadius)
	}
	return nil
}

func (tr *Torus) N() (numVertex, nIndex int) {
	return TorusN(tr.Rings, tr.Segments)
}

func (tr *Torus) Set(m *Mesh) {
	SetTorus(m, tr.Rings, tr.Segments, tr.InnerRadius, tr.OuterRadius)
}

// GenerateTorus returns a new torus mesh, see [Torus].
func GenerateTorus(rings, segments int, innerRadius, outerRadius float32) (*Mesh, error) {
	return Generate(NewTorus(rings, segments, innerRadius, outerRadius))
}

// TorusN returns N's for a torus geometry with given number of
// rings and segments. The seam vertices are duplicated, not welded.
func TorusN(rings, segments int) (numVertex, nIndex int) {
	numVertex = (rings + 1) * (segments + 1)
	nIndex = rings * segments * 6
	return
}

// SetTorus sets torus vertex, normal, color and index data
// into the given mesh, which must be allocated with [TorusN] sizes.
func SetTorus(m *Mesh, rings, segments int, innerRadius, outerRadius float32) {
	idx := 0
	for ring := 0; ring <= rings; ring++ {
		rs, rc := math32.Sincos(2 * math32.Pi * float32(ring) / float32(rings))
		for seg := 0; seg <= segments; seg++ {
			ts, tc := math32.Sincos(2 * math32.Pi * float32(seg) / float32(segments))
			rr := rc*innerRadius + outerRadius
			m.Positions.SetVector3(idx*3, math32.Vec3(rr*tc, innerRadius*rs, rr*ts))
			m.Normals.SetVector3(idx*3, math32.Vec3(rc*tc, rs, rc*ts))
			clr := colors.MustHSVA(360*float32(seg)/float32(segments), 1, 1, 1)
			m.Colors.SetVector4(idx*4, clr.Vector4())
			idx++
		}
	}

	stride := uint32(segments + 1)
	ii := 0
	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			base := stride*uint32(ring) + uint32(seg)
			m.Indices.Set(ii, base, base+stride, base+1, base+stride, base+stride+1, base+1)
			ii += 6
		}
	}
}
