// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cogentcore.org/minirender/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	assert.InDelta(t, math32.Pi/180, cfg.AngleStep, 1e-9)
	assert.True(t, cfg.DepthTest)
	assert.True(t, cfg.CullFace)
	assert.False(t, cfg.CarryModel)
	assert.Equal(t, float32(1), cfg.ClearColor.A)
}

func TestRead(t *testing.T) {
	cfg, err := Read(strings.NewReader(`
Width = 320
Height = 240
CarryModel = true

[Camera]
Eye = { X = 1, Y = 2, Z = 3 }
FOV = 60

[Light]
Enabled = false
`))
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 240, cfg.Height)
	assert.True(t, cfg.CarryModel)
	assert.Equal(t, math32.Vec3(1, 2, 3), cfg.Camera.Eye)
	assert.Equal(t, float32(60), cfg.Camera.FOV)
	assert.Equal(t, float32(0.1), cfg.Camera.Near, "unset keys keep defaults")
	assert.False(t, cfg.Light.Enabled)
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader("Bogus = 1\n"))
	assert.Error(t, err)

	_, err = Read(strings.NewReader("Width = -1\n"))
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Read(strings.NewReader("[Light]\nDirection = { X = 0, Y = 0, Z = 0 }\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestOpenSave(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "v.vert"), []byte("vertex code"), 0o644))

	cfg := Defaults()
	cfg.Width = 64
	cfg.Shaders.VertexFile = "v.vert"
	cfg.Shaders.Fragment = "fragment code"
	path := filepath.Join(dir, "render.toml")
	require.NoError(t, cfg.Save(path))

	got, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 64, got.Width)
	assert.Equal(t, filepath.Join(dir, "v.vert"), got.Shaders.VertexFile)

	vs, fs, err := got.ShaderSources()
	require.NoError(t, err)
	assert.Equal(t, "vertex code", vs)
	assert.Equal(t, "fragment code", fs)

	_, err = Open(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestShaderSourcesDefault(t *testing.T) {
	vs, fs, err := Defaults().ShaderSources()
	require.NoError(t, err)
	assert.Empty(t, vs)
	assert.Empty(t, fs)
}

func TestOpenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
width: 100
camera:
  eye: {x: 0, y: 5, z: 10}
  fov: 30
light:
  enabled: false
carrymodel: true
`), 0o644))
	cfg, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, math32.Vec3(0, 5, 10), cfg.Camera.Eye)
	assert.Equal(t, float32(30), cfg.Camera.FOV)
	assert.False(t, cfg.Light.Enabled)
	assert.True(t, cfg.CarryModel)

	_, err = ReadYAML(strings.NewReader("bogus: 1\n"))
	assert.Error(t, err)

	cfg, err = ReadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestClone(t *testing.T) {
	cfg := Defaults()
	cfg.Shaders.Vertex = "code"
	cp := cfg.Clone()
	assert.Equal(t, cfg, cp)
	cp.Camera.Eye.X = 7
	cp.Shaders.Vertex = "other"
	assert.Equal(t, float32(0), cfg.Camera.Eye.X)
	assert.Equal(t, "code", cfg.Shaders.Vertex)
}
