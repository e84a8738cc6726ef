// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"cogentcore.org/minirender/colors"
	"cogentcore.org/minirender/math32"
	"cogentcore.org/minirender/scene"
	"cogentcore.org/minirender/shape"
)

// ringTori is the number of tori placed around the center one.
const ringTori = 6

// buildDemo registers the demo scene: a torus spinning at the center,
// a ring of smaller tori spinning around the Y axis, and a colored
// triangle and a quad behind them.
func buildDemo(reg *scene.Registry) error {
	center := scene.At(0, 0, 0).Rotating(math32.Vec3(0, 1, 1))
	if _, err := reg.RegisterTorus(shape.NewTorus(32, 32, 1, 2), center); err != nil {
		return err
	}

	ring := make([]scene.Placement, ringTori)
	for i := range ring {
		s, c := math32.Sincos(2 * math32.Pi * float32(i) / ringTori)
		ring[i] = scene.At(6*c, 6*s, -2).Rotating(math32.Vec3(0, 1, 0))
	}
	if _, err := reg.RegisterTorus(shape.NewTorus(16, 24, 0.3, 0.8), ring...); err != nil {
		return err
	}

	tri := []scene.VertexAttribute{
		scene.NewAttribute(scene.Position, 3, []float32{0, 1, 0, -1, -1, 0, 1, -1, 0}),
		scene.NewAttribute(scene.Color, 4, []float32{1, 0, 0, 1, 0, 1, 0, 1, 0, 0, 1, 1}),
	}
	if _, err := reg.Register(tri, scene.At(-5, -5, -6), scene.At(5, -5, -6)); err != nil {
		return err
	}

	_, err := reg.RegisterQuad(math32.Vector3{}, 8, 8, colors.MustHSVA(200, 0.4, 0.6, 1), scene.At(0, 0, -10))
	return err
}
