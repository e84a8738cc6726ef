// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colors

import (
	"image/color"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHSVAAchromatic(t *testing.T) {
	for _, h := range []float32{0, 45, 200, 359, -90, 720} {
		for _, v := range []float32{0, 0.25, 1} {
			c, err := HSVAToRGBA(h, 0, v, 0.5)
			require.NoError(t, err)
			assert.Equal(t, RGBA{v, v, v, 0.5}, c)
		}
	}
}

func TestHSVAPrimaries(t *testing.T) {
	tests := []struct {
		hue  float32
		want RGBA
	}{
		{0, RGBA{1, 0, 0, 1}},
		{60, RGBA{1, 1, 0, 1}},
		{120, RGBA{0, 1, 0, 1}},
		{180, RGBA{0, 1, 1, 1}},
		{240, RGBA{0, 0, 1, 1}},
		{300, RGBA{1, 0, 1, 1}},
		{360, RGBA{1, 0, 0, 1}},
		{-60, RGBA{1, 0, 1, 1}},
		{30, RGBA{1, 0.5, 0, 1}},
	}
	for _, tt := range tests {
		c, err := HSVAToRGBA(tt.hue, 1, 1, 1)
		require.NoError(t, err)
		assert.InDelta(t, tt.want.R, c.R, 1e-6, "hue %g", tt.hue)
		assert.InDelta(t, tt.want.G, c.G, 1e-6, "hue %g", tt.hue)
		assert.InDelta(t, tt.want.B, c.B, 1e-6, "hue %g", tt.hue)
		assert.Equal(t, float32(1), c.A)
	}
}

func TestHSVAMatchesColorful(t *testing.T) {
	for h := float32(0); h < 360; h += 7.5 {
		for _, s := range []float32{0.2, 0.6, 1} {
			for _, v := range []float32{0.1, 0.5, 1} {
				c, err := HSVAToRGBA(h, s, v, 1)
				require.NoError(t, err)
				want := colorful.Hsv(float64(h), float64(s), float64(v))
				assert.InDelta(t, want.R, c.R, 1e-5, "h=%g s=%g v=%g", h, s, v)
				assert.InDelta(t, want.G, c.G, 1e-5, "h=%g s=%g v=%g", h, s, v)
				assert.InDelta(t, want.B, c.B, 1e-5, "h=%g s=%g v=%g", h, s, v)
			}
		}
	}
}

func TestHSVAInvalid(t *testing.T) {
	_, err := HSVAToRGBA(0, 1.5, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidColorParameter)
	_, err = HSVAToRGBA(0, 1, 1.01, 1)
	assert.ErrorIs(t, err, ErrInvalidColorParameter)
	_, err = HSVAToRGBA(0, 1, 1, 2)
	assert.ErrorIs(t, err, ErrInvalidColorParameter)
	_, err = HSVAToRGBA(0, -0.1, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidColorParameter)

	nan := float32(math.NaN())
	for _, h := range []float32{nan, float32(math.Inf(1)), float32(math.Inf(-1))} {
		assert.NotPanics(t, func() {
			_, err = HSVAToRGBA(h, 1, 1, 1)
		})
		assert.ErrorIs(t, err, ErrInvalidColorParameter, "hue %g", h)
		_, err = HSVAToRGBA(h, 0, 1, 1)
		assert.ErrorIs(t, err, ErrInvalidColorParameter, "achromatic hue %g", h)
	}

	assert.Panics(t, func() { MustHSVA(0, 2, 1, 1) })
}

func TestNormalizeHue(t *testing.T) {
	assert.Equal(t, float32(0), NormalizeHue(360))
	assert.Equal(t, float32(270), NormalizeHue(-90))
	assert.Equal(t, float32(10), NormalizeHue(730))
}

func TestRGBAConversions(t *testing.T) {
	c := MustHSVA(120, 1, 1, 0.5)
	assert.Equal(t, color.NRGBA{0, 255, 0, 128}, c.AsColor())
	h, s, v := c.Colorful().Hsv()
	assert.InDelta(t, 120, h, 1e-6)
	assert.InDelta(t, 1, s, 1e-6)
	assert.InDelta(t, 1, v, 1e-6)
	assert.Equal(t, float32(0.5), c.Vector4().W)
}
