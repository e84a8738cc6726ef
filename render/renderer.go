// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws the objects of a [scene.Registry] through a
// [gpu.Context], one frame at a time, with a model, view and projection
// transform chain and frame-tick driven rotation.
package render

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"cogentcore.org/minirender/base/errors"
	"cogentcore.org/minirender/config"
	"cogentcore.org/minirender/gpu"
	"cogentcore.org/minirender/math32"
	"cogentcore.org/minirender/scene"
)

//go:embed shaders/*.vert shaders/*.frag
var shaders embed.FS

// Uniform names of the shader contract.
const (
	MVPMatrix      = "mvpMatrix"
	InvMatrix      = "invMatrix"
	LightDirection = "lightDirection"
)

// Renderer draws a scene each frame. All methods must be called
// from the goroutine that owns the graphics context.
type Renderer struct {
	// Config has the settings the renderer was created with.
	// Camera, light and model settings are read each frame.
	Config *config.Config

	// Scene is the registry of objects to draw.
	Scene *scene.Registry

	// Transforms are the current model, view and projection matrices.
	Transforms *Transforms

	// Tick is the frame counter, advanced after each presented frame.
	Tick int

	// Uploads counts vertex data uploads.
	Uploads int

	ctx     gpu.Context
	program *gpu.Program
	lit     bool
	size    math32.Vector2i

	objects []*objectBuffers
	meshes  map[int]*meshBuffer
}

// New returns a renderer drawing reg into ctx. A nil cfg uses
// [config.Defaults] and a nil reg a new empty registry.
// It compiles and links the shader program, and enables the depth
// test and face culling as configured. Shader errors are logged
// with the compiler diagnostics and returned.
func New(ctx gpu.Context, cfg *config.Config, reg *scene.Registry) (*Renderer, error) {
	if ctx == nil {
		return nil, errors.Log(gpu.ErrUnsupportedContext)
	}
	if cfg == nil {
		cfg = config.Defaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Log(err)
	}
	if reg == nil {
		reg = scene.NewRegistry()
	}
	rd := &Renderer{Config: cfg, Scene: reg, Transforms: NewTransforms(), ctx: ctx, meshes: map[int]*meshBuffer{}}

	vs, fs, err := rd.shaderSources()
	if err != nil {
		return nil, errors.Log(err)
	}
	rd.program, err = gpu.NewProgram(ctx, gpu.VertexSource(vs), gpu.FragmentSource(fs))
	if err != nil {
		return nil, errors.Log(fmt.Errorf("render.New: %w", err))
	}
	rd.program.Use()
	rd.lit = cfg.Light.Enabled && rd.program.Uniform(InvMatrix) >= 0 && rd.program.Uniform(LightDirection) >= 0

	sz := ctx.Size()
	w, h := cfg.Width, cfg.Height
	if w == 0 {
		w = sz.X
	}
	if h == 0 {
		h = sz.Y
	}
	rd.SetSize(w, h)
	if cfg.DepthTest {
		ctx.Enable(gpu.DepthTest)
	}
	if cfg.CullFace {
		ctx.Enable(gpu.CullFace)
	}
	ctx.ClearDepth(1)
	slog.Info("render.New", "width", w, "height", h, "lit", rd.lit, "depthTest", cfg.DepthTest, "cullFace", cfg.CullFace)
	return rd, nil
}

// shaderSources returns the configured sources, with the built-in
// sources for stages that are not configured.
func (rd *Renderer) shaderSources() (vertex, fragment string, err error) {
	vertex, fragment, err = rd.Config.ShaderSources()
	if err != nil {
		return
	}
	if vertex == "" {
		name := "shaders/basic.vert"
		if rd.Config.Light.Enabled {
			name = "shaders/lit.vert"
		}
		vertex = string(errors.Must1(shaders.ReadFile(name)))
	}
	if fragment == "" {
		fragment = string(errors.Must1(shaders.ReadFile("shaders/color.frag")))
	}
	return
}

// Lit returns whether lighting uniforms are uploaded, which requires
// lighting to be enabled and the program to declare them.
func (rd *Renderer) Lit() bool {
	return rd.lit
}

// Size returns the size of the drawing area.
func (rd *Renderer) Size() math32.Vector2i {
	return rd.size
}

// SetSize sets the size of the drawing area and the viewport.
// The projection aspect ratio follows from the next frame on.
func (rd *Renderer) SetSize(width, height int) {
	rd.size = math32.Vec2i(width, height)
	rd.ctx.Viewport(0, 0, width, height)
}

// setCamera computes the view and projection for this frame.
func (rd *Renderer) setCamera() error {
	cam := &rd.Config.Camera
	tf := rd.Transforms
	if err := tf.SetView(cam.Eye, cam.Target, cam.Up); err != nil {
		return err
	}
	aspect := float32(0)
	if rd.size.Y > 0 {
		aspect = float32(rd.size.X) / float32(rd.size.Y)
	}
	return tf.SetProjection(cam.FOV, aspect, cam.Near, cam.Far)
}

// RenderFrame clears the frame, draws every placement of every object
// in registration order, presents the frame and advances [Renderer.Tick].
// The model matrix starts from the identity for each placement unless
// [config.Config.CarryModel] is set. A frame that fails is logged and
// not presented, and the tick is not advanced.
func (rd *Renderer) RenderFrame() error {
	cfg := rd.Config
	ctx := rd.ctx
	cc := cfg.ClearColor
	ctx.ClearColor(cc.R, cc.G, cc.B, cc.A)
	ctx.Clear(gpu.ColorBufferBit | gpu.DepthBufferBit)
	if err := rd.setCamera(); err != nil {
		return errors.Log(fmt.Errorf("render.Renderer RenderFrame: %w", err))
	}
	rd.program.Use()
	tf := rd.Transforms
	angle := float32(rd.Tick) * cfg.AngleStep

	for i, ob := range rd.Scene.Objects() {
		if len(ob.Placements) == 0 {
			continue
		}
		h := scene.Handle(i)
		rd.bind(rd.vertexBuffers(h, ob))
		var ib *gpu.IndexBuffer
		if ob.Mesh != scene.NoMesh {
			var err error
			ib, err = rd.indexBuffer(ob.Mesh)
			if err != nil {
				return errors.Log(fmt.Errorf("render.Renderer RenderFrame: object %d: %w", h, err))
			}
		}
		for pi, pl := range ob.Placements {
			if pi == 0 || !cfg.CarryModel {
				tf.ResetModel()
			}
			tr := pl.Translation
			tf.TranslateModel(tr.X, tr.Y, tr.Z)
			if pl.RotationAxis != nil {
				errors.Log(tf.RotateModel(angle, *pl.RotationAxis))
			}
			mvp := tf.MVP()
			rd.program.SetMatrix4(MVPMatrix, &mvp)
			if rd.lit {
				inv := errors.Log1(Inverse(tf.Model))
				rd.program.SetMatrix4(InvMatrix, &inv)
				rd.program.SetVector3(LightDirection, cfg.Light.Direction)
			}
			if ib != nil {
				ib.Draw(ctx)
			} else {
				ctx.DrawArrays(0, ob.NVertex())
			}
		}
	}
	if err := ctx.Present(); err != nil {
		return errors.Log(fmt.Errorf("render.Renderer RenderFrame: present: %w", err))
	}
	rd.Tick++
	return nil
}

// Run renders frames until the given number of frames have been
// presented, or until ctx is done if frames <= 0. If hook is non-nil
// it is called with the tick of each presented frame. Run stops at
// the first frame error and returns it; if ctx ends the run, the
// context error is returned.
func (rd *Renderer) Run(ctx context.Context, frames int, hook func(tick int)) error {
	for n := 0; frames <= 0 || n < frames; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		tick := rd.Tick
		if err := rd.RenderFrame(); err != nil {
			return err
		}
		if hook != nil {
			hook(tick)
		}
	}
	return nil
}

// Release deletes the shader program and all buffers.
func (rd *Renderer) Release() {
	rd.releaseBuffers()
	if rd.program != nil {
		rd.program.Release()
		rd.program = nil
	}
}
