// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu defines the graphics context capability surface used by
// the renderer, along with helpers for compiling shader programs and
// uploading vertex and index buffers through it.
//
// A Context is implemented by a host binding to a native graphics API,
// or by the pure Go software rasterizer in [cogentcore.org/minirender/gpu/softgpu].
// All calls are made from a single goroutine.
package gpu

import (
	"image"

	"cogentcore.org/minirender/math32"
)

// Context is the graphics API capability surface, modeled on the
// OpenGL ES / WebGL 1 state machine. Vertex attributes are always
// tightly packed float32 data, and indexes are uint32.
type Context interface {
	// CreateShader returns a new shader object of the given type.
	CreateShader(typ ShaderTypes) ShaderID
	ShaderSource(sh ShaderID, src string)

	// CompileShader compiles the shader source, returning false on
	// failure, in which case ShaderInfoLog has the diagnostics.
	CompileShader(sh ShaderID) bool
	ShaderInfoLog(sh ShaderID) string
	DeleteShader(sh ShaderID)

	CreateProgram() ProgramID
	AttachShader(p ProgramID, sh ShaderID)

	// LinkProgram links the attached shaders, returning false on
	// failure, in which case ProgramInfoLog has the diagnostics.
	LinkProgram(p ProgramID) bool
	ProgramInfoLog(p ProgramID) string
	UseProgram(p ProgramID)
	DeleteProgram(p ProgramID)

	// AttribLocation returns the location of the named vertex
	// attribute in the program, or -1 if it is not active.
	AttribLocation(p ProgramID, name string) int

	// UniformLocation returns the location of the named uniform
	// in the program, or -1 if it is not active.
	UniformLocation(p ProgramID, name string) int

	CreateBuffer() BufferID
	BindBuffer(target BufferTargets, b BufferID)

	// BufferData uploads data to the buffer bound at target.
	BufferData(target BufferTargets, data []byte)
	DeleteBuffer(b BufferID)

	// VertexAttribPointer binds the currently bound ArrayBuffer to the
	// attribute location, with size float32 components per vertex,
	// and enables the attribute array.
	VertexAttribPointer(loc, size int)
	DisableVertexAttrib(loc int)

	UniformMatrix4(loc int, m *math32.Matrix4)
	Uniform3(loc int, v math32.Vector3)

	Enable(c Capabilities)
	Disable(c Capabilities)
	ClearColor(r, g, b, a float32)
	ClearDepth(d float32)
	Clear(bits ClearBits)
	Viewport(x, y, width, height int)

	// Size returns the size of the drawing buffer provided by the host.
	Size() image.Point

	// DrawElements draws count indexes from the bound ElementArrayBuffer,
	// starting at index offset, as triangles.
	DrawElements(count, offset int)

	// DrawArrays draws count vertices starting at first, as triangles.
	DrawArrays(first, count int)

	// Present hands the completed frame to the presentation surface.
	Present() error
}
