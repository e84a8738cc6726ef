// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "errors"

var (
	// ErrSingular is returned by [Matrix4.Inverse] when the
	// determinant is (nearly) zero.
	ErrSingular = errors.New("math32: singular matrix")

	// ErrDegenerate is returned when a transform cannot be built
	// from the given vectors, for example a zero-length axis or a
	// look-at with coincident eye and target.
	ErrDegenerate = errors.New("math32: degenerate transform")
)

// SingularTol is the absolute determinant below which a matrix
// is treated as singular.
const SingularTol = 1e-12

// DegenerateTol is the squared length below which a vector is treated
// as zero when building a basis.
const DegenerateTol = 1e-12

// Matrix4 is 4x4 matrix organized internally as column matrix,
// compatible with the uniform layout expected by shaders.
type Matrix4 [16]float32

// Identity4 returns a new identity [Matrix4] matrix.
func Identity4() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// SetIdentity sets this matrix as the identity matrix.
func (m *Matrix4) SetIdentity() {
	*m = Identity4()
}

// Translation4 returns a translation matrix.
func Translation4(x, y, z float32) Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// RotationAxis4 returns the matrix rotating by angle radians
// around the given axis, which need not be normalized.
// A zero-length axis returns the identity and [ErrDegenerate].
func RotationAxis4(axis Vector3, angle float32) (Matrix4, error) {
	if axis.LengthSquared() < DegenerateTol {
		return Identity4(), ErrDegenerate
	}
	a := axis.Normal()
	s, c := Sincos(angle)
	t := 1 - c
	x, y, z := a.X, a.Y, a.Z
	return Matrix4{
		t*x*x + c, t*x*y + s*z, t*x*z - s*y, 0,
		t*x*y - s*z, t*y*y + c, t*y*z + s*x, 0,
		t*x*z + s*y, t*y*z - s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	}, nil
}

// Perspective returns a perspective projection matrix with the given
// vertical field of view in degrees, aspect ratio, and near and far
// clip distances. Arguments are not validated here.
func Perspective(fovy, aspect, near, far float32) Matrix4 {
	f := 1 / Tan(DegToRad(fovy)/2)
	nf := 1 / (near - far)
	return Matrix4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// LookAt returns the right-handed view matrix for a camera at eye
// looking toward target, with the given up direction.
// It returns [ErrDegenerate] if eye equals target or if up is parallel
// to the viewing direction.
func LookAt(eye, target, up Vector3) (Matrix4, error) {
	fw := target.Sub(eye)
	if fw.LengthSquared() < DegenerateTol {
		return Identity4(), ErrDegenerate
	}
	f := fw.Normal()
	sd := f.Cross(up)
	if sd.LengthSquared() < DegenerateTol*up.LengthSquared() || up.LengthSquared() < DegenerateTol {
		return Identity4(), ErrDegenerate
	}
	s := sd.Normal()
	u := s.Cross(f)
	return Matrix4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}, nil
}

// Mul returns this matrix times other matrix (this matrix is on the left).
func (m Matrix4) Mul(other Matrix4) Matrix4 {
	var r Matrix4
	r.MulMatrices(&m, &other)
	return r
}

// MulMatrices sets this matrix as matrix multiplication a by b (i.e., a*b).
// The result may alias neither a nor b.
func (m *Matrix4) MulMatrices(a, b *Matrix4) {
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			m[c*4+r] = a[r]*b[c*4] + a[4+r]*b[c*4+1] + a[8+r]*b[c*4+2] + a[12+r]*b[c*4+3]
		}
	}
}

// Translate returns this matrix times a translation by the given offsets,
// so the translation applies before any transform already in m.
func (m Matrix4) Translate(x, y, z float32) Matrix4 {
	return m.Mul(Translation4(x, y, z))
}

// Rotate returns this matrix times a rotation of angle radians about axis.
// See [RotationAxis4].
func (m Matrix4) Rotate(angle float32, axis Vector3) (Matrix4, error) {
	rot, err := RotationAxis4(axis, angle)
	if err != nil {
		return m, err
	}
	return m.Mul(rot), nil
}

// Transpose returns the transpose of this matrix.
func (m Matrix4) Transpose() Matrix4 {
	var t Matrix4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			t[r*4+c] = m[c*4+r]
		}
	}
	return t
}

// cofactors returns the 2x2 sub-determinants shared by
// [Matrix4.Determinant] and [Matrix4.Inverse].
func (m *Matrix4) cofactors() (b [12]float32) {
	b[0] = m[0]*m[5] - m[1]*m[4]
	b[1] = m[0]*m[6] - m[2]*m[4]
	b[2] = m[0]*m[7] - m[3]*m[4]
	b[3] = m[1]*m[6] - m[2]*m[5]
	b[4] = m[1]*m[7] - m[3]*m[5]
	b[5] = m[2]*m[7] - m[3]*m[6]
	b[6] = m[8]*m[13] - m[9]*m[12]
	b[7] = m[8]*m[14] - m[10]*m[12]
	b[8] = m[8]*m[15] - m[11]*m[12]
	b[9] = m[9]*m[14] - m[10]*m[13]
	b[10] = m[9]*m[15] - m[11]*m[13]
	b[11] = m[10]*m[15] - m[11]*m[14]
	return
}

// Determinant calculates and returns the determinant of this matrix.
func (m Matrix4) Determinant() float32 {
	b := m.cofactors()
	return b[0]*b[11] - b[1]*b[10] + b[2]*b[9] + b[3]*b[8] - b[4]*b[7] + b[5]*b[6]
}

// Inverse returns the inverse of this matrix.
// If the matrix is singular it returns the identity and [ErrSingular].
func (m Matrix4) Inverse() (Matrix4, error) {
	b := m.cofactors()
	det := b[0]*b[11] - b[1]*b[10] + b[2]*b[9] + b[3]*b[8] - b[4]*b[7] + b[5]*b[6]
	if Abs(det) < SingularTol || IsNaN(det) {
		return Identity4(), ErrSingular
	}
	id := 1 / det
	return Matrix4{
		(m[5]*b[11] - m[6]*b[10] + m[7]*b[9]) * id,
		(m[2]*b[10] - m[1]*b[11] - m[3]*b[9]) * id,
		(m[13]*b[5] - m[14]*b[4] + m[15]*b[3]) * id,
		(m[10]*b[4] - m[9]*b[5] - m[11]*b[3]) * id,

		(m[6]*b[8] - m[4]*b[11] - m[7]*b[7]) * id,
		(m[0]*b[11] - m[2]*b[8] + m[3]*b[7]) * id,
		(m[14]*b[2] - m[12]*b[5] - m[15]*b[1]) * id,
		(m[8]*b[5] - m[10]*b[2] + m[11]*b[1]) * id,

		(m[4]*b[10] - m[5]*b[8] + m[7]*b[6]) * id,
		(m[1]*b[8] - m[0]*b[10] - m[3]*b[6]) * id,
		(m[12]*b[4] - m[13]*b[2] + m[15]*b[0]) * id,
		(m[9]*b[2] - m[8]*b[4] - m[11]*b[0]) * id,

		(m[5]*b[7] - m[4]*b[9] - m[6]*b[6]) * id,
		(m[0]*b[9] - m[1]*b[7] + m[2]*b[6]) * id,
		(m[13]*b[1] - m[12]*b[3] - m[14]*b[0]) * id,
		(m[8]*b[3] - m[9]*b[1] + m[10]*b[0]) * id,
	}, nil
}
