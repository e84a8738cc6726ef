// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"testing"

	"cogentcore.org/minirender/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTorusCounts(t *testing.T) {
	for _, tc := range [][2]int{{1, 1}, {3, 5}, {32, 32}, {7, 2}} {
		rings, segs := tc[0], tc[1]
		m, err := GenerateTorus(rings, segs, 0.5, 1.5)
		require.NoError(t, err)
		nv := (rings + 1) * (segs + 1)
		assert.Equal(t, nv, m.NVertex())
		assert.Len(t, m.Normals, nv*3)
		assert.Len(t, m.Colors, nv*4)
		assert.Equal(t, 6*rings*segs, m.NIndex())
		for _, ix := range m.Indices {
			assert.Less(t, ix, uint32(nv))
		}
	}
}

func TestTorusGeometry(t *testing.T) {
	const inner, outer = float32(1), float32(2)
	m, err := GenerateTorus(8, 12, inner, outer)
	require.NoError(t, err)
	for i := 0; i < m.NVertex(); i++ {
		var p, n math32.Vector3
		m.Positions.GetVector3(i*3, &p)
		m.Normals.GetVector3(i*3, &n)
		assert.InDelta(t, 1, n.Length(), 1e-5)
		// every point is at tube radius from the tube center circle
		center := math32.Vec3(p.X, 0, p.Z).Normal().MulScalar(outer)
		assert.InDelta(t, inner, p.Sub(center).Length(), 1e-4)
		// and the normal points away from that center
		assert.InDelta(t, 1, p.Sub(center).Normal().Dot(n), 1e-4)
	}

	// first vertex: ring 0, segment 0 on the outer equator along +X
	var p0 math32.Vector3
	m.Positions.GetVector3(0, &p0)
	assert.InDelta(t, inner+outer, p0.X, 1e-6)
	assert.InDelta(t, 0, p0.Y, 1e-6)
	assert.InDelta(t, 0, p0.Z, 1e-6)
}

func TestTorusIndexOrder(t *testing.T) {
	m, err := GenerateTorus(2, 3, 1, 2)
	require.NoError(t, err)
	// ring 0 segment 0: base 0, stride 4
	assert.Equal(t, []uint32{0, 4, 1, 4, 5, 1}, []uint32(m.Indices[:6]))
	// ring 1 segment 2: base 4+2 = 6
	assert.Equal(t, []uint32{6, 10, 7, 10, 11, 7}, []uint32(m.Indices[30:36]))
}

func TestTorusColors(t *testing.T) {
	m, err := GenerateTorus(1, 6, 1, 2)
	require.NoError(t, err)
	var c math32.Vector4
	m.Colors.GetVector4(0, &c)
	assert.Equal(t, math32.Vec4(1, 0, 0, 1), c) // hue 0: red
	m.Colors.GetVector4(2*4, &c)
	assert.InDelta(t, 0, c.X, 1e-6) // hue 120: green
	assert.InDelta(t, 1, c.Y, 1e-6)
	assert.InDelta(t, 0, c.Z, 1e-6)
	m.Colors.GetVector4(6*4, &c) // hue 360 wraps to red
	assert.InDelta(t, 1, c.X, 1e-6)
	assert.InDelta(t, 0, c.Y, 1e-6)
}

func TestTorusOutward(t *testing.T) {
	m, err := GenerateTorus(16, 16, 1, 3)
	require.NoError(t, err)
	for i := 0; i < m.NIndex(); i += 3 {
		var a, b, c, na math32.Vector3
		m.Positions.GetVector3(int(m.Indices[i])*3, &a)
		m.Positions.GetVector3(int(m.Indices[i+1])*3, &b)
		m.Positions.GetVector3(int(m.Indices[i+2])*3, &c)
		m.Normals.GetVector3(int(m.Indices[i])*3, &na)
		face := b.Sub(a).Cross(c.Sub(a))
		assert.Greater(t, face.Dot(na), float32(0), "triangle %d must wind counter-clockwise seen from outside", i/3)
	}
}

func TestTorusInvalid(t *testing.T) {
	for _, tr := range []*Torus{
		NewTorus(0, 4, 1, 2),
		NewTorus(4, 0, 1, 2),
		NewTorus(4, 4, 0, 2),
		NewTorus(4, 4, 1, -2),
	} {
		_, err := Generate(tr)
		assert.ErrorIs(t, err, ErrInvalidShape)
	}
	var tr Torus
	tr.Defaults()
	assert.NoError(t, tr.Validate())
}

func TestPlane(t *testing.T) {
	m, err := Generate(NewPlane(math32.Vec3(1, 1, 0), 2, 4))
	require.NoError(t, err)
	assert.Equal(t, 4, m.NVertex())
	assert.Equal(t, QuadIndices, []uint32(m.Indices))
	var p math32.Vector3
	m.Positions.GetVector3(0, &p)
	assert.Equal(t, math32.Vec3(0, 3, 0), p)
	m.Positions.GetVector3(3*3, &p)
	assert.Equal(t, math32.Vec3(2, -1, 0), p)

	for i := 0; i < len(QuadIndices); i += 3 {
		var a, b, c math32.Vector3
		m.Positions.GetVector3(int(QuadIndices[i])*3, &a)
		m.Positions.GetVector3(int(QuadIndices[i+1])*3, &b)
		m.Positions.GetVector3(int(QuadIndices[i+2])*3, &c)
		assert.Greater(t, b.Sub(a).Cross(c.Sub(a)).Z, float32(0))
	}

	_, err = Generate(NewPlane(math32.Vec3(0, 0, 0), 0, 1))
	assert.ErrorIs(t, err, ErrInvalidShape)
}
