// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"errors"
	"fmt"

	"cogentcore.org/minirender/math32"
)

var (
	// ErrDegenerateTransform is returned when a transform cannot be
	// built or inverted: coincident eye and target, an up vector
	// parallel to the view direction, a zero rotation axis, or a
	// singular matrix.
	ErrDegenerateTransform = errors.New("render: degenerate transform")

	// ErrInvalidProjection is returned for perspective parameters
	// with near <= 0, far <= near, aspect <= 0 or a field of view
	// outside (0, 180) degrees.
	ErrInvalidProjection = errors.New("render: invalid projection")
)

// Transforms holds the model, view and projection matrices of the
// renderer. All start as the identity.
type Transforms struct {
	// Model places the current object in the world.
	Model math32.Matrix4

	// View transforms world into camera-centered coordinates.
	View math32.Matrix4

	// Projection transforms camera coordinates into clip coordinates.
	Projection math32.Matrix4
}

// NewTransforms returns [Transforms] with identity matrices.
func NewTransforms() *Transforms {
	tf := &Transforms{}
	tf.Model.SetIdentity()
	tf.View.SetIdentity()
	tf.Projection.SetIdentity()
	return tf
}

// SetView sets the view matrix for a camera at eye looking toward
// target with the given up direction. On error the view is unchanged.
func (tf *Transforms) SetView(eye, target, up math32.Vector3) error {
	v, err := math32.LookAt(eye, target, up)
	if err != nil {
		return fmt.Errorf("%w: view eye=%v target=%v up=%v", ErrDegenerateTransform, eye, target, up)
	}
	tf.View = v
	return nil
}

// SetProjection sets a perspective projection with the given vertical
// field of view in degrees. On error the projection is unchanged.
func (tf *Transforms) SetProjection(fovy, aspect, near, far float32) error {
	switch {
	case !(near > 0):
		return fmt.Errorf("%w: near %g must be positive", ErrInvalidProjection, near)
	case !(far > near):
		return fmt.Errorf("%w: far %g must exceed near %g", ErrInvalidProjection, far, near)
	case !(aspect > 0):
		return fmt.Errorf("%w: aspect %g must be positive", ErrInvalidProjection, aspect)
	case !(fovy > 0 && fovy < 180):
		return fmt.Errorf("%w: field of view %g must be in (0, 180)", ErrInvalidProjection, fovy)
	}
	tf.Projection = math32.Perspective(fovy, aspect, near, far)
	return nil
}

// ResetModel sets the model matrix to the identity.
func (tf *Transforms) ResetModel() {
	tf.Model.SetIdentity()
}

// TranslateModel post-multiplies the model matrix by a translation.
func (tf *Transforms) TranslateModel(x, y, z float32) {
	tf.Model = tf.Model.Translate(x, y, z)
}

// RotateModel post-multiplies the model matrix by a rotation of angle
// radians about axis. Following a [Transforms.TranslateModel], this
// rotates the object about its own origin before moving it.
// A zero axis leaves the model unchanged.
func (tf *Transforms) RotateModel(angle float32, axis math32.Vector3) error {
	m, err := tf.Model.Rotate(angle, axis)
	if err != nil {
		return fmt.Errorf("%w: rotation axis %v", ErrDegenerateTransform, axis)
	}
	tf.Model = m
	return nil
}

// MVP returns projection * view * model.
func (tf *Transforms) MVP() math32.Matrix4 {
	return tf.Projection.Mul(tf.View).Mul(tf.Model)
}

// Inverse returns the inverse of m. A singular matrix returns
// the identity and [ErrDegenerateTransform].
func Inverse(m math32.Matrix4) (math32.Matrix4, error) {
	inv, err := m.Inverse()
	if err != nil {
		return inv, fmt.Errorf("%w: matrix is singular (determinant %g)", ErrDegenerateTransform, m.Determinant())
	}
	return inv, nil
}
