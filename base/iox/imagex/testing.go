// Copyright 2023 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"errors"
	"image"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// TestingT is an interface wrapper around *testing.T
type TestingT interface {
	Errorf(format string, args ...any)
}

// UpdateTestImages makes [Assert] overwrite the saved test images
// instead of comparing against them. It is set by the environment
// variable MINIRENDER_UPDATE_TESTDATA=true.
var UpdateTestImages = os.Getenv("MINIRENDER_UPDATE_TESTDATA") == "true"

// Tolerance is the largest per-channel difference accepted by [Assert].
const Tolerance = 2

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

// CompareColors returns whether no channel of the two colors
// differs by more than tol.
func CompareColors(a, b color.NRGBA, tol uint8) bool {
	return absDiff(a.R, b.R) <= tol && absDiff(a.G, b.G) <= tol &&
		absDiff(a.B, b.B) <= tol && absDiff(a.A, b.A) <= tol
}

// DiffImage returns the per-pixel absolute difference of two
// images of the same bounds, with opaque alpha.
func DiffImage(a, b image.Image) *image.NRGBA {
	ab := a.Bounds()
	di := image.NewNRGBA(ab)
	for y := ab.Min.Y; y < ab.Max.Y; y++ {
		for x := ab.Min.X; x < ab.Max.X; x++ {
			ac := color.NRGBAModel.Convert(a.At(x, y)).(color.NRGBA)
			bc := color.NRGBAModel.Convert(b.At(x, y)).(color.NRGBA)
			di.SetNRGBA(x, y, color.NRGBA{absDiff(ac.R, bc.R), absDiff(ac.G, bc.G), absDiff(ac.B, bc.B), 255})
		}
	}
	return di
}

// Assert checks that the image matches the one saved at
// testdata/filename, with ".png" added if there is no extension.
// If there is no saved image yet, it saves this one. On mismatch it
// reports an error and saves the image and a difference image next
// to the saved one, with .fail and .diff before the extension.
func Assert(t TestingT, img image.Image, filename string) {
	filename = filepath.Join("testdata", filename)
	if filepath.Ext(filename) == "" {
		filename += ".png"
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0750); err != nil {
		t.Errorf("imagex.Assert: error making testdata directory: %v", err)
		return
	}
	ext := filepath.Ext(filename)
	failFilename := strings.TrimSuffix(filename, ext) + ".fail" + ext
	diffFilename := strings.TrimSuffix(filename, ext) + ".diff" + ext

	saved, _, err := Open(filename)
	if UpdateTestImages || errors.Is(err, fs.ErrNotExist) {
		if err := Save(img, filename); err != nil {
			t.Errorf("imagex.Assert: error saving image: %v", err)
		}
		os.Remove(failFilename)
		os.Remove(diffFilename)
		return
	}
	if err != nil {
		t.Errorf("imagex.Assert: error opening saved image: %v", err)
		return
	}

	ib, sb := img.Bounds(), saved.Bounds()
	failed := false
	if ib != sb {
		t.Errorf("imagex.Assert: expected bounds %v for %s, but got %v; see %s", sb, filename, ib, failFilename)
		failed = true
	}
	for y := ib.Min.Y; !failed && y < ib.Max.Y; y++ {
		for x := ib.Min.X; x < ib.Max.X; x++ {
			ic := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			sc := color.NRGBAModel.Convert(saved.At(x, y)).(color.NRGBA)
			if !CompareColors(ic, sc, Tolerance) {
				t.Errorf("imagex.Assert: image for %s differs; see %s; expected %v at (%d, %d), but got %v", filename, failFilename, sc, x, y, ic)
				failed = true
				break
			}
		}
	}
	if !failed {
		os.Remove(failFilename)
		os.Remove(diffFilename)
		return
	}
	if err := Save(img, failFilename); err != nil {
		t.Errorf("imagex.Assert: error saving fail image: %v", err)
	}
	if ib == sb {
		if err := Save(DiffImage(img, saved), diffFilename); err != nil {
			t.Errorf("imagex.Assert: error saving diff image: %v", err)
		}
	}
}
