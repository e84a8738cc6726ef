// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package softgpu is a pure Go software implementation of [gpu.Context].
// It rasterizes indexed triangles into an [image.NRGBA] frame with a
// depth buffer and back-face culling, running the fixed shader contract
// of the renderer: clip position = mvpMatrix * position, per-vertex color,
// and optional diffuse lighting from normal, invMatrix and lightDirection.
//
// It is used for headless rendering (the minirender command writes frames
// as PNG files) and as the graphics context in tests.
package softgpu

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"cogentcore.org/minirender/gpu"
	"cogentcore.org/minirender/math32"
)

// Fixed attribute and uniform names of the shader contract.
const (
	attrPosition   = "position"
	attrNormal     = "normal"
	attrColor      = "color"
	uniMVP         = "mvpMatrix"
	uniInv         = "invMatrix"
	uniLightDirect = "lightDirection"
)

type mat4Value = math32.Matrix4

type vec3Value = math32.Vector3

type attribBinding struct {
	buf  gpu.BufferID
	size int
}

// Stats counts work done since the last [Context.ResetStats].
type Stats struct {
	DrawCalls int
	Triangles int
	Culled    int
	Fragments int
}

// Context is a software graphics context. The zero value is not usable;
// use [New].
type Context struct {
	// Frame is the color target.
	Frame *image.NRGBA

	// Stats for the frames drawn so far.
	Stats Stats

	// Frames is the number of presented frames.
	Frames int

	// OnPresent, if set, is called with the frame on each Present.
	OnPresent func(frame *image.NRGBA) error

	depth      []float32
	viewport   image.Rectangle
	clearColor color.NRGBA
	clearDepth float32
	caps       map[gpu.Capabilities]bool

	nextID   uint32
	shaders  map[gpu.ShaderID]*shader
	programs map[gpu.ProgramID]*program
	buffers  map[gpu.BufferID][]byte
	bound    map[gpu.BufferTargets]gpu.BufferID
	attribs  map[int]attribBinding
	current  *program

	err error
}

// New returns a software context with a drawing buffer of the given size.
func New(width, height int) *Context {
	cx := &Context{
		Frame:      image.NewNRGBA(image.Rect(0, 0, width, height)),
		depth:      make([]float32, width*height),
		viewport:   image.Rect(0, 0, width, height),
		clearDepth: 1,
		caps:       map[gpu.Capabilities]bool{},
		shaders:    map[gpu.ShaderID]*shader{},
		programs:   map[gpu.ProgramID]*program{},
		buffers:    map[gpu.BufferID][]byte{},
		bound:      map[gpu.BufferTargets]gpu.BufferID{},
		attribs:    map[int]attribBinding{},
	}
	for i := range cx.depth {
		cx.depth[i] = 1
	}
	return cx
}

// Err returns and clears the first invalid operation recorded since
// the last call, in the manner of glGetError.
func (cx *Context) Err() error {
	err := cx.err
	cx.err = nil
	return err
}

func (cx *Context) invalid(format string, args ...any) {
	err := fmt.Errorf("softgpu: "+format, args...)
	slog.Debug(err.Error())
	if cx.err == nil {
		cx.err = err
	}
}

// ResetStats zeroes the draw statistics.
func (cx *Context) ResetStats() {
	cx.Stats = Stats{}
}

// Enabled returns whether the capability is enabled.
func (cx *Context) Enabled(c gpu.Capabilities) bool {
	return cx.caps[c]
}

func (cx *Context) id() uint32 {
	cx.nextID++
	return cx.nextID
}

func (cx *Context) CreateShader(typ gpu.ShaderTypes) gpu.ShaderID {
	id := gpu.ShaderID(cx.id())
	cx.shaders[id] = &shader{typ: typ}
	return id
}

func (cx *Context) ShaderSource(sh gpu.ShaderID, src string) {
	if s, ok := cx.shaders[sh]; ok {
		s.src = src
		return
	}
	cx.invalid("ShaderSource: unknown shader %d", sh)
}

func (cx *Context) CompileShader(sh gpu.ShaderID) bool {
	s, ok := cx.shaders[sh]
	if !ok {
		cx.invalid("CompileShader: unknown shader %d", sh)
		return false
	}
	return s.compile()
}

func (cx *Context) ShaderInfoLog(sh gpu.ShaderID) string {
	if s, ok := cx.shaders[sh]; ok {
		return s.log
	}
	return ""
}

func (cx *Context) DeleteShader(sh gpu.ShaderID) {
	delete(cx.shaders, sh)
}

func (cx *Context) CreateProgram() gpu.ProgramID {
	id := gpu.ProgramID(cx.id())
	cx.programs[id] = &program{}
	return id
}

func (cx *Context) AttachShader(p gpu.ProgramID, sh gpu.ShaderID) {
	pr, ok := cx.programs[p]
	s, sok := cx.shaders[sh]
	if !ok || !sok {
		cx.invalid("AttachShader: unknown program %d or shader %d", p, sh)
		return
	}
	pr.shaders = append(pr.shaders, s)
}

func (cx *Context) LinkProgram(p gpu.ProgramID) bool {
	pr, ok := cx.programs[p]
	if !ok {
		cx.invalid("LinkProgram: unknown program %d", p)
		return false
	}
	return pr.link()
}

func (cx *Context) ProgramInfoLog(p gpu.ProgramID) string {
	if pr, ok := cx.programs[p]; ok {
		return pr.log
	}
	return ""
}

func (cx *Context) UseProgram(p gpu.ProgramID) {
	pr, ok := cx.programs[p]
	if !ok || !pr.linked {
		cx.invalid("UseProgram: program %d is not linked", p)
		return
	}
	cx.current = pr
}

func (cx *Context) DeleteProgram(p gpu.ProgramID) {
	if pr, ok := cx.programs[p]; ok && pr == cx.current {
		cx.current = nil
	}
	delete(cx.programs, p)
}

func (cx *Context) AttribLocation(p gpu.ProgramID, name string) int {
	if pr, ok := cx.programs[p]; ok && pr.linked {
		return pr.attrib(name)
	}
	return -1
}

func (cx *Context) UniformLocation(p gpu.ProgramID, name string) int {
	if pr, ok := cx.programs[p]; ok && pr.linked {
		return pr.uniform(name)
	}
	return -1
}

func (cx *Context) CreateBuffer() gpu.BufferID {
	id := gpu.BufferID(cx.id())
	cx.buffers[id] = nil
	return id
}

func (cx *Context) BindBuffer(target gpu.BufferTargets, b gpu.BufferID) {
	if _, ok := cx.buffers[b]; !ok && b != 0 {
		cx.invalid("BindBuffer: unknown buffer %d", b)
		return
	}
	cx.bound[target] = b
}

func (cx *Context) BufferData(target gpu.BufferTargets, data []byte) {
	b := cx.bound[target]
	if b == 0 {
		cx.invalid("BufferData: no buffer bound")
		return
	}
	cx.buffers[b] = append(cx.buffers[b][:0], data...)
}

// NumBuffers returns the number of live buffers.
func (cx *Context) NumBuffers() int {
	return len(cx.buffers)
}

func (cx *Context) DeleteBuffer(b gpu.BufferID) {
	delete(cx.buffers, b)
	for t, id := range cx.bound {
		if id == b {
			cx.bound[t] = 0
		}
	}
}

func (cx *Context) VertexAttribPointer(loc, size int) {
	b := cx.bound[gpu.ArrayBuffer]
	if b == 0 || size < 1 || size > 4 {
		cx.invalid("VertexAttribPointer: no buffer bound or bad size %d", size)
		return
	}
	cx.attribs[loc] = attribBinding{buf: b, size: size}
}

func (cx *Context) DisableVertexAttrib(loc int) {
	delete(cx.attribs, loc)
}

func (cx *Context) UniformMatrix4(loc int, m *math32.Matrix4) {
	if cx.current == nil || loc < 0 || loc >= len(cx.current.uniforms) {
		cx.invalid("UniformMatrix4: bad location %d", loc)
		return
	}
	cx.current.matrices[loc] = *m
}

func (cx *Context) Uniform3(loc int, v math32.Vector3) {
	if cx.current == nil || loc < 0 || loc >= len(cx.current.uniforms) {
		cx.invalid("Uniform3: bad location %d", loc)
		return
	}
	cx.current.vectors[loc] = v
}

// UniformMatrix4Value returns the current value of the named mat4
// uniform of the current program.
func (cx *Context) UniformMatrix4Value(name string) (math32.Matrix4, bool) {
	if cx.current == nil {
		return math32.Matrix4{}, false
	}
	m, ok := cx.current.matrices[cx.current.uniform(name)]
	return m, ok
}

func (cx *Context) Enable(c gpu.Capabilities) {
	cx.caps[c] = true
}

func (cx *Context) Disable(c gpu.Capabilities) {
	cx.caps[c] = false
}

func (cx *Context) ClearColor(r, g, b, a float32) {
	cx.clearColor = color.NRGBA{R: unit8(r), G: unit8(g), B: unit8(b), A: unit8(a)}
}

func (cx *Context) ClearDepth(d float32) {
	cx.clearDepth = math32.Clamp(d, 0, 1)
}

func (cx *Context) Clear(bits gpu.ClearBits) {
	if bits&gpu.ColorBufferBit != 0 {
		px := cx.Frame.Pix
		c := cx.clearColor
		for i := 0; i < len(px); i += 4 {
			px[i], px[i+1], px[i+2], px[i+3] = c.R, c.G, c.B, c.A
		}
	}
	if bits&gpu.DepthBufferBit != 0 {
		for i := range cx.depth {
			cx.depth[i] = cx.clearDepth
		}
	}
}

func (cx *Context) Viewport(x, y, width, height int) {
	cx.viewport = image.Rect(x, y, x+width, y+height)
}

func (cx *Context) Size() image.Point {
	return cx.Frame.Bounds().Size()
}

// DepthAt returns the depth buffer value at the given pixel.
func (cx *Context) DepthAt(x, y int) float32 {
	return cx.depth[y*cx.Frame.Rect.Dx()+x]
}

func (cx *Context) Present() error {
	cx.Frames++
	if cx.OnPresent != nil {
		return cx.OnPresent(cx.Frame)
	}
	return nil
}

func unit8(v float32) uint8 {
	return uint8(math32.Clamp(v, 0, 1)*255 + 0.5)
}

func float32s(b []byte) []float32 {
	fs := make([]float32, len(b)/4)
	for i := range fs {
		fs[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return fs
}

func uint32s(b []byte) []uint32 {
	us := make([]uint32, len(b)/4)
	for i := range us {
		us[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return us
}
