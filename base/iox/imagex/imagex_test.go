// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *image.NRGBA {
	im := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			im.SetNRGBA(x, y, color.NRGBA{uint8(x * 32), uint8(y * 64), 128, 255})
		}
	}
	return im
}

func TestExtToFormat(t *testing.T) {
	for ext, want := range map[string]Formats{".png": PNG, "JPG": JPEG, "jpeg": JPEG, ".tif": TIFF, "bmp": BMP} {
		f, err := ExtToFormat(ext)
		require.NoError(t, err, ext)
		assert.Equal(t, want, f, ext)
	}
	_, err := ExtToFormat("")
	assert.Error(t, err)
	_, err = ExtToFormat(".webp")
	assert.Error(t, err)
	assert.Equal(t, "tiff", TIFF.String())
}

func TestSaveOpen(t *testing.T) {
	dir := t.TempDir()
	src := testImage()
	for _, f := range []Formats{PNG, TIFF, BMP} {
		name := filepath.Join(dir, "frame."+f.String())
		require.NoError(t, Save(src, name), name)
		im, got, err := Open(name)
		require.NoError(t, err, name)
		assert.Equal(t, f, got)
		assert.Equal(t, src.Bounds(), im.Bounds())
		c := color.NRGBAModel.Convert(im.At(3, 2)).(color.NRGBA)
		assert.Equal(t, src.NRGBAAt(3, 2), c, name)
	}
	assert.Error(t, Save(src, filepath.Join(dir, "frame.gif")))
}

func TestScale(t *testing.T) {
	src := testImage()
	assert.Same(t, src, Scale(src, 1).(*image.NRGBA))
	assert.Equal(t, image.Rect(0, 0, 16, 8), Scale(src, 2).Bounds())
	assert.Equal(t, image.Rect(0, 0, 4, 2), Scale(src, 0.5).Bounds())
	assert.Equal(t, image.Rect(0, 0, 1, 1), Scale(src, 0.01).Bounds())
}

type recorder struct {
	errs []string
}

func (r *recorder) Errorf(format string, args ...any) {
	r.errs = append(r.errs, fmt.Sprintf(format, args...))
}

func TestAssert(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })
	src := testImage()

	r := &recorder{}
	Assert(r, src, "frame")
	assert.Empty(t, r.errs, "first call saves the image")
	assert.FileExists(t, filepath.Join("testdata", "frame.png"))

	Assert(r, src, "frame")
	assert.Empty(t, r.errs)

	changed := testImage()
	changed.SetNRGBA(1, 1, color.NRGBA{255, 255, 255, 255})
	Assert(r, changed, "frame")
	require.Len(t, r.errs, 1)
	assert.Contains(t, r.errs[0], "(1, 1)")
	assert.FileExists(t, filepath.Join("testdata", "frame.fail.png"))
	assert.FileExists(t, filepath.Join("testdata", "frame.diff.png"))

	r.errs = nil
	Assert(r, src, "frame")
	assert.Empty(t, r.errs)
	assert.NoFileExists(t, filepath.Join("testdata", "frame.fail.png"))
}
