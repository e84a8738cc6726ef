// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"math"
	"testing"

	"cogentcore.org/minirender/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-5

func assertMatrix(t *testing.T, expected, actual math32.Matrix4, msgs ...any) {
	t.Helper()
	assertMatrixTol(t, expected, actual, tol, msgs...)
}

// assertMatrixTol compares elements with a tolerance relative to
// the expected magnitude, for values well above 1.
func assertMatrixTol(t *testing.T, expected, actual math32.Matrix4, rel float64, msgs ...any) {
	t.Helper()
	for i := range expected {
		delta := rel * max(1, math.Abs(float64(expected[i])))
		assert.InDelta(t, expected[i], actual[i], delta, msgs...)
	}
}

func TestIdentityMVP(t *testing.T) {
	tf := NewTransforms()
	assert.Equal(t, math32.Identity4(), tf.MVP())
}

func TestSetProjectionErrors(t *testing.T) {
	tests := []struct {
		name                   string
		fov, aspect, near, far float32
	}{
		{"zero near", 45, 1, 0, 10},
		{"negative near", 45, 1, -1, 10},
		{"far equals near", 45, 1, 1, 1},
		{"far before near", 45, 1, 2, 1},
		{"zero aspect", 45, 0, 0.1, 10},
		{"zero fov", 0, 1, 0.1, 10},
		{"fov 180", 180, 1, 0.1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tf := NewTransforms()
			err := tf.SetProjection(tt.fov, tt.aspect, tt.near, tt.far)
			assert.ErrorIs(t, err, ErrInvalidProjection)
			assert.Equal(t, math32.Identity4(), tf.Projection, "projection unchanged")
		})
	}

	tf := NewTransforms()
	require.NoError(t, tf.SetProjection(45, 1.5, 0.1, 100))
	assert.Equal(t, math32.Perspective(45, 1.5, 0.1, 100), tf.Projection)
}

func TestSetViewErrors(t *testing.T) {
	tf := NewTransforms()
	eye := math32.Vec3(0, 0, 5)
	assert.ErrorIs(t, tf.SetView(eye, eye, math32.Vec3(0, 1, 0)), ErrDegenerateTransform)
	assert.ErrorIs(t, tf.SetView(eye, math32.Vector3{}, math32.Vec3(0, 0, 1)), ErrDegenerateTransform)
	assert.Equal(t, math32.Identity4(), tf.View)

	require.NoError(t, tf.SetView(eye, math32.Vector3{}, math32.Vec3(0, 1, 0)))
	p := math32.Vec3(0, 0, 0).MulMatrix4AsPoint(&tf.View)
	assert.InDelta(t, -5, p.Z, tol, "target is in front of the camera")
}

func TestModelOrder(t *testing.T) {
	tf := NewTransforms()
	tf.TranslateModel(5, 0, 0)
	require.NoError(t, tf.RotateModel(math32.Pi/2, math32.Vec3(0, 0, 2)))

	// rotation applies first, about the object origin
	p := math32.Vec3(1, 0, 0).MulMatrix4AsPoint(&tf.Model)
	assert.InDelta(t, 5, p.X, tol)
	assert.InDelta(t, 1, p.Y, tol)
	assert.InDelta(t, 0, p.Z, tol)

	before := tf.Model
	assert.ErrorIs(t, tf.RotateModel(1, math32.Vector3{}), ErrDegenerateTransform)
	assert.Equal(t, before, tf.Model)

	tf.ResetModel()
	assert.Equal(t, math32.Identity4(), tf.Model)
}

func TestMVPOrder(t *testing.T) {
	tf := NewTransforms()
	require.NoError(t, tf.SetView(math32.Vec3(1, 2, 10), math32.Vector3{}, math32.Vec3(0, 1, 0)))
	require.NoError(t, tf.SetProjection(60, 4.0/3, 0.5, 50))
	tf.TranslateModel(1, -1, 2)
	want := tf.Projection.Mul(tf.View.Mul(tf.Model))
	assertMatrix(t, want, tf.MVP())
}

func TestInverseRoundTrip(t *testing.T) {
	tf := NewTransforms()
	require.NoError(t, tf.SetView(math32.Vec3(3, 4, 12), math32.Vec3(0, 1, 0), math32.Vec3(0, 1, 0)))
	require.NoError(t, tf.SetProjection(45, 1, 0.1, 100))
	tf.TranslateModel(2, 0, -1)
	require.NoError(t, tf.RotateModel(0.7, math32.Vec3(1, 1, 0)))

	for _, m := range []math32.Matrix4{tf.Model, tf.View, tf.Projection, tf.MVP()} {
		inv, err := Inverse(m)
		require.NoError(t, err)
		back, err := Inverse(inv)
		require.NoError(t, err)
		// float32 inverses of projection matrices lose a few digits
		assertMatrixTol(t, m, back, 1e-3)
		assertMatrixTol(t, math32.Identity4(), m.Mul(inv), 1e-3)
	}
}

func TestInverseSingular(t *testing.T) {
	var zero math32.Matrix4
	inv, err := Inverse(zero)
	assert.ErrorIs(t, err, ErrDegenerateTransform)
	assert.Equal(t, math32.Identity4(), inv)
}
