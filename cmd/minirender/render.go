// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"cogentcore.org/minirender/base/iox/imagex"
	"cogentcore.org/minirender/config"
	"cogentcore.org/minirender/gpu/softgpu"
	"cogentcore.org/minirender/render"
	"cogentcore.org/minirender/scene"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

// Default frame size when the config does not set one.
const (
	defaultWidth  = 640
	defaultHeight = 480
)

// options are the flags shared by the commands.
type options struct {
	config string
	out    string
	format string
	scale  float32
}

func (o *options) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.config, "config", "c", "", "config file (.toml, .yaml); defaults are used if empty")
	f.StringVarP(&o.out, "out", "o", "frames", "output directory")
	f.StringVar(&o.format, "format", "png", "image format: png, jpeg, tiff or bmp")
	f.Float32Var(&o.scale, "scale", 1, "scale factor applied to saved frames")
}

func (o *options) validate() error {
	if _, err := imagex.ExtToFormat(o.format); err != nil {
		return err
	}
	if !(o.scale > 0) {
		return fmt.Errorf("scale must be positive, got %g", o.scale)
	}
	return nil
}

// loadConfig opens the config file, or returns the defaults.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Defaults(), nil
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	return config.Open(path)
}

// newRenderer returns a renderer of the demo scene on a new
// software context sized by cfg.
func newRenderer(cfg *config.Config) (*render.Renderer, *softgpu.Context, error) {
	w, h := cfg.Width, cfg.Height
	if w == 0 {
		w = defaultWidth
	}
	if h == 0 {
		h = defaultHeight
	}
	cx := softgpu.New(w, h)
	reg := scene.NewRegistry()
	if err := buildDemo(reg); err != nil {
		return nil, nil, err
	}
	rd, err := render.New(cx, cfg, reg)
	if err != nil {
		return nil, nil, err
	}
	return rd, cx, nil
}

// frameSaver returns a present hook saving each frame into dir,
// named by the tick of the renderer.
func frameSaver(rd *render.Renderer, o *options, dir string) func(*image.NRGBA) error {
	return func(frame *image.NRGBA) error {
		name := filepath.Join(dir, fmt.Sprintf("frame-%04d.%s", rd.Tick, o.format))
		if err := imagex.Save(imagex.Scale(frame, o.scale), name); err != nil {
			return err
		}
		slog.Debug("saved frame", "file", name)
		return nil
	}
}

func newRenderCmd() *cobra.Command {
	o := &options{}
	var frames int
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render frames of the demo scene",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return renderFrames(ctx, o, frames)
		},
	}
	o.addFlags(cmd)
	cmd.Flags().IntVarP(&frames, "frames", "n", 60, "number of frames to render")
	return cmd
}

// renderFrames renders the given number of frames into the output directory.
func renderFrames(ctx context.Context, o *options, frames int) error {
	cfg, err := loadConfig(o.config)
	if err != nil {
		return err
	}
	dir, err := homedir.Expand(o.out)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	rd, cx, err := newRenderer(cfg)
	if err != nil {
		return err
	}
	defer rd.Release()
	cx.OnPresent = frameSaver(rd, o, dir)
	err = rd.Run(ctx, frames, func(tick int) {
		slog.Info("rendered frame", "tick", tick, "triangles", cx.Stats.Triangles, "fragments", cx.Stats.Fragments)
		cx.ResetStats()
	})
	slog.Info("render done", "frames", cx.Frames, "dir", dir)
	return err
}
