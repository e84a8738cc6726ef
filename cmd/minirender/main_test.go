// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cogentcore.org/minirender/base/iox/imagex"
	"cogentcore.org/minirender/config"
	"cogentcore.org/minirender/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDemo(t *testing.T) {
	reg := scene.NewRegistry()
	require.NoError(t, buildDemo(reg))
	assert.Equal(t, 4, reg.Len())
	assert.Equal(t, 3, reg.NumMeshes(), "quad and two torus meshes")
	assert.Len(t, reg.Objects()[1].Placements, ringTori)
}

func TestRenderFrames(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "render.toml")
	cfg := config.Defaults()
	cfg.Width, cfg.Height = 40, 30
	require.NoError(t, cfg.Save(cfgPath))

	o := &options{config: cfgPath, out: filepath.Join(dir, "out"), format: "png", scale: 2}
	require.NoError(t, o.validate())
	require.NoError(t, renderFrames(context.Background(), o, 3))

	for _, name := range []string{"frame-0000.png", "frame-0001.png", "frame-0002.png"} {
		im, f, err := imagex.Open(filepath.Join(o.out, name))
		require.NoError(t, err, name)
		assert.Equal(t, imagex.PNG, f)
		assert.Equal(t, 80, im.Bounds().Dx())
		assert.Equal(t, 60, im.Bounds().Dy())
	}
	_, err := os.Stat(filepath.Join(o.out, "frame-0003.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOptionsValidate(t *testing.T) {
	assert.Error(t, (&options{format: "gif", scale: 1}).validate())
	assert.Error(t, (&options{format: "png", scale: 0}).validate())
	assert.NoError(t, (&options{format: "bmp", scale: 0.5}).validate())
}

func TestPreview(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Defaults()
	cfg.Width, cfg.Height = 20, 20
	o := &options{format: "bmp", scale: 1}
	require.NoError(t, preview(cfg, o, dir, 45))
	_, err := os.Stat(filepath.Join(dir, "frame-0045.bmp"))
	assert.NoError(t, err)
}

func TestRootCommand(t *testing.T) {
	dir := t.TempDir()
	root := newRootCmd()
	root.SetArgs([]string{"render", "-q", "--frames", "1", "--out", dir, "--format", "jpeg"})
	require.NoError(t, root.Execute())
	_, err := os.Stat(filepath.Join(dir, "frame-0000.jpeg"))
	assert.NoError(t, err)
}

// replaceFile writes data to path with a rename, as editors do,
// so a watcher never reads a partial file.
func replaceFile(t *testing.T, path, data string) {
	tmp := filepath.Join(t.TempDir(), filepath.Base(path))
	require.NoError(t, os.WriteFile(tmp, []byte(data), 0o644))
	require.NoError(t, os.Rename(tmp, path))
}

func TestWatchKeepsLastGoodConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "render.toml")
	replaceFile(t, cfgPath, "Width = 40\nHeight = 30\n")
	o := &options{config: cfgPath, out: filepath.Join(t.TempDir(), "out"), format: "bmp", scale: 1}
	frame := filepath.Join(o.out, "frame-0007.bmp")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- watch(ctx, o, 7) }()

	size := func(w, h int) func() bool {
		return func() bool {
			im, _, err := imagex.Open(frame)
			return err == nil && im.Bounds().Dx() == w && im.Bounds().Dy() == h
		}
	}
	require.Eventually(t, size(40, 30), 10*time.Second, 20*time.Millisecond, "first preview")

	require.NoError(t, os.Remove(frame))
	replaceFile(t, cfgPath, "Width = \"wide\"\n")
	require.Eventually(t, size(40, 30), 10*time.Second, 20*time.Millisecond, "invalid config renders the last good one")

	require.NoError(t, os.Remove(frame))
	replaceFile(t, cfgPath, "Width = 24\nHeight = 16\n")
	require.Eventually(t, size(24, 16), 10*time.Second, 20*time.Millisecond, "changed config")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("watch did not return after cancel")
	}
}

func TestWatchInvalidStart(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "render.toml")
	replaceFile(t, cfgPath, "Width = \"wide\"\n")
	o := &options{config: cfgPath, out: filepath.Join(dir, "out"), format: "bmp", scale: 1}
	assert.Error(t, watch(context.Background(), o, 0))
}
