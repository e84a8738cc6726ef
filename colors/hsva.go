// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colors converts HSV colors into the normalized RGBA
// components used for per-vertex mesh colors.
package colors

import (
	"errors"
	"fmt"
	"image/color"

	"cogentcore.org/minirender/math32"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColorParameter is returned when a saturation, value
// or alpha component is outside of [0, 1].
var ErrInvalidColorParameter = errors.New("colors: invalid color parameter")

// RGBA is a color with float32 red, green, blue and alpha
// components, each in [0, 1].
type RGBA struct {
	R, G, B, A float32
}

func (c RGBA) String() string {
	return fmt.Sprintf("RGBA(%g, %g, %g, %g)", c.R, c.G, c.B, c.A)
}

// Vector4 returns the color as a [math32.Vector4], for packing
// into vertex arrays.
func (c RGBA) Vector4() math32.Vector4 {
	return math32.Vec4(c.R, c.G, c.B, c.A)
}

// AsColor returns the color as a non-premultiplied 8 bit [color.NRGBA].
func (c RGBA) AsColor() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

// Colorful returns the RGB components as a [colorful.Color],
// which provides conversions to other color spaces.
func (c RGBA) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

func to8(v float32) uint8 {
	return uint8(math32.Clamp(v, 0, 1)*255 + 0.5)
}

// hexagon decomposition: each entry selects which of v, n, m, k
// is used for the channel in the given 60 degree sector.
const (
	selV = iota
	selN
	selM
	selK
)

var (
	redSel   = [6]int{selV, selN, selM, selM, selK, selV}
	greenSel = [6]int{selK, selV, selV, selN, selM, selM}
	blueSel  = [6]int{selM, selM, selK, selV, selV, selN}
)

// HSVAToRGBA converts the given hue in degrees (any value; it wraps
// modulo 360), saturation, value and alpha in [0, 1] into [RGBA].
// It returns [ErrInvalidColorParameter] if saturation, value or alpha
// is out of range, or if hue is not finite.
func HSVAToRGBA(hue, saturation, value, alpha float32) (RGBA, error) {
	if math32.IsNaN(hue) || math32.IsInf(hue, 0) {
		return RGBA{}, fmt.Errorf("%w: hue=%g", ErrInvalidColorParameter, hue)
	}
	if !inUnit(saturation) || !inUnit(value) || !inUnit(alpha) {
		return RGBA{}, fmt.Errorf("%w: s=%g v=%g a=%g", ErrInvalidColorParameter, saturation, value, alpha)
	}
	if saturation == 0 {
		return RGBA{value, value, value, alpha}, nil
	}
	h := NormalizeHue(hue) / 60
	i := int(math32.Floor(h))
	if i > 5 { // guards float rounding at the 360 boundary
		i = 5
	}
	f := h - float32(i)
	comp := [4]float32{
		selV: value,
		selN: value * (1 - saturation*f),
		selM: value * (1 - saturation),
		selK: value * (1 - saturation*(1-f)),
	}
	return RGBA{comp[redSel[i]], comp[greenSel[i]], comp[blueSel[i]], alpha}, nil
}

// MustHSVA is like [HSVAToRGBA] but panics on invalid parameters.
// It is intended for constant inputs known to be in range.
func MustHSVA(hue, saturation, value, alpha float32) RGBA {
	c, err := HSVAToRGBA(hue, saturation, value, alpha)
	if err != nil {
		panic(err)
	}
	return c
}

// NormalizeHue wraps the given hue in degrees into [0, 360).
func NormalizeHue(hue float32) float32 {
	h := math32.Mod(hue, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}

func inUnit(v float32) bool {
	return v >= 0 && v <= 1
}
