// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"log/slog"

	"cogentcore.org/minirender/math32"
)

// ShaderSource is the source code for one shader stage.
// Use [VertexSource] or [FragmentSource] to construct it.
type ShaderSource struct {
	Type ShaderTypes
	Code string
}

// VertexSource returns a vertex stage [ShaderSource].
func VertexSource(code string) ShaderSource {
	return ShaderSource{Type: VertexShader, Code: code}
}

// FragmentSource returns a fragment stage [ShaderSource].
func FragmentSource(code string) ShaderSource {
	return ShaderSource{Type: FragmentShader, Code: code}
}

// CompileShader creates and compiles a shader from the given source.
// On failure the shader object is deleted and a *[ShaderCompileError]
// carrying the compiler log is returned.
func CompileShader(ctx Context, src ShaderSource) (ShaderID, error) {
	if !src.Type.IsValid() {
		return 0, &ShaderCompileError{Type: src.Type, Log: "ERROR: unknown shader stage"}
	}
	sh := ctx.CreateShader(src.Type)
	ctx.ShaderSource(sh, src.Code)
	if !ctx.CompileShader(sh) {
		err := &ShaderCompileError{Type: src.Type, Log: ctx.ShaderInfoLog(sh)}
		ctx.DeleteShader(sh)
		return 0, err
	}
	return sh, nil
}

// Program is a linked shader program with cached attribute
// and uniform locations.
type Program struct {
	ID ProgramID

	ctx      Context
	attribs  map[string]int
	uniforms map[string]int
}

// NewProgram compiles the given shader stages and links them into a
// program. Compile failures return *[ShaderCompileError] and link
// failures *[ProgramLinkError]; no program is created in either case.
func NewProgram(ctx Context, srcs ...ShaderSource) (*Program, error) {
	if ctx == nil {
		return nil, ErrUnsupportedContext
	}
	shaders := make([]ShaderID, 0, len(srcs))
	release := func() {
		for _, sh := range shaders {
			ctx.DeleteShader(sh)
		}
	}
	for _, src := range srcs {
		sh, err := CompileShader(ctx, src)
		if err != nil {
			release()
			return nil, err
		}
		shaders = append(shaders, sh)
	}
	id := ctx.CreateProgram()
	for _, sh := range shaders {
		ctx.AttachShader(id, sh)
	}
	if !ctx.LinkProgram(id) {
		err := &ProgramLinkError{Log: ctx.ProgramInfoLog(id)}
		ctx.DeleteProgram(id)
		release()
		return nil, err
	}
	// shaders are owned by the linked program from here on
	release()
	return &Program{ID: id, ctx: ctx, attribs: map[string]int{}, uniforms: map[string]int{}}, nil
}

// Use makes this the current program.
func (pr *Program) Use() {
	pr.ctx.UseProgram(pr.ID)
}

// Attrib returns the location of the named attribute, or -1.
func (pr *Program) Attrib(name string) int {
	if loc, ok := pr.attribs[name]; ok {
		return loc
	}
	loc := pr.ctx.AttribLocation(pr.ID, name)
	pr.attribs[name] = loc
	return loc
}

// Uniform returns the location of the named uniform, or -1.
func (pr *Program) Uniform(name string) int {
	if loc, ok := pr.uniforms[name]; ok {
		return loc
	}
	loc := pr.ctx.UniformLocation(pr.ID, name)
	pr.uniforms[name] = loc
	return loc
}

// SetMatrix4 sets the named mat4 uniform; it is a no-op with a
// debug log if the uniform is not active in the program.
func (pr *Program) SetMatrix4(name string, m *math32.Matrix4) {
	loc := pr.Uniform(name)
	if loc < 0 {
		slog.Debug("gpu.Program SetMatrix4: uniform not active", "uniform", name)
		return
	}
	pr.ctx.UniformMatrix4(loc, m)
}

// SetVector3 sets the named vec3 uniform; see [Program.SetMatrix4].
func (pr *Program) SetVector3(name string, v math32.Vector3) {
	loc := pr.Uniform(name)
	if loc < 0 {
		slog.Debug("gpu.Program SetVector3: uniform not active", "uniform", name)
		return
	}
	pr.ctx.Uniform3(loc, v)
}

// Release deletes the program.
func (pr *Program) Release() {
	pr.ctx.DeleteProgram(pr.ID)
}
