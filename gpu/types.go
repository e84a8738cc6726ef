// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

// ShaderID is the handle of a shader object within a [Context].
type ShaderID uint32

// ProgramID is the handle of a linked shader program within a [Context].
type ProgramID uint32

// BufferID is the handle of a buffer object within a [Context].
type BufferID uint32

// ShaderTypes is a list of shader stages.
type ShaderTypes int32

const (
	// VertexShader runs once per vertex.
	VertexShader ShaderTypes = iota

	// FragmentShader runs once per rasterized fragment.
	FragmentShader

	shaderTypesN
)

func (st ShaderTypes) String() string {
	switch st {
	case VertexShader:
		return "VertexShader"
	case FragmentShader:
		return "FragmentShader"
	}
	return "ShaderTypes(invalid)"
}

// IsValid returns whether the value is a valid option for [ShaderTypes].
func (st ShaderTypes) IsValid() bool {
	return st >= 0 && st < shaderTypesN
}

// BufferTargets are the binding points for buffers.
type BufferTargets int32

const (
	// ArrayBuffer holds per-vertex attribute data.
	ArrayBuffer BufferTargets = iota

	// ElementArrayBuffer holds triangle indexes.
	ElementArrayBuffer
)

// Capabilities are the fixed-function states that can be enabled.
type Capabilities int32

const (
	// DepthTest discards fragments farther than the stored depth
	// (less-or-equal comparison).
	DepthTest Capabilities = iota

	// CullFace discards back-facing (clockwise) triangles.
	CullFace
)

// ClearBits select which targets [Context.Clear] clears.
type ClearBits int32

const (
	ColorBufferBit ClearBits = 1 << iota
	DepthBufferBit
)
