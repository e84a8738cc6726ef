// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"cogentcore.org/minirender/config"
	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	o := &options{}
	var tick int
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Render one frame each time the config file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.config == "" {
				return errors.New("watch: --config is required")
			}
			if err := o.validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return watch(ctx, o, tick)
		},
	}
	o.addFlags(cmd)
	cmd.Flags().IntVar(&tick, "tick", 0, "frame tick to render, which sets the rotation angles")
	return cmd
}

// preview renders the frame at the given tick with cfg into dir.
func preview(cfg *config.Config, o *options, dir string, tick int) error {
	rd, cx, err := newRenderer(cfg)
	if err != nil {
		return err
	}
	defer rd.Release()
	rd.Tick = tick
	cx.OnPresent = frameSaver(rd, o, dir)
	return rd.RenderFrame()
}

// watch renders a preview frame now and after every change to the
// config file, until ctx is done. A config that fails to load or
// render is logged and the last good config is kept.
func watch(ctx context.Context, o *options, tick int) error {
	path, err := homedir.Expand(o.config)
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
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	// editors often replace the file, so watch the directory
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	// open after watching so no change is missed
	good, err := config.Open(path)
	if err != nil {
		return err
	}
	if err := preview(good.Clone(), o, dir, tick); err != nil {
		return err
	}
	slog.Info("watching", "config", path, "out", dir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch", "err", err)
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := config.Open(path)
			if err != nil {
				slog.Error("watch: keeping last good config", "err", err)
				cfg = good
			}
			if err := preview(cfg.Clone(), o, dir, tick); err != nil {
				slog.Error("watch: preview failed", "err", err)
				continue
			}
			good = cfg
			slog.Info("rendered preview", "config", path)
		}
	}
}
