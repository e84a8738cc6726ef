// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"encoding/binary"

	"golang.org/x/mobile/exp/f32"
)

// Float32Bytes packs float32 values into little-endian bytes
// for uploading as vertex data.
func Float32Bytes(data []float32) []byte {
	return f32.Bytes(binary.LittleEndian, data...)
}

// Uint32Bytes packs uint32 values into little-endian bytes
// for uploading as index data.
func Uint32Bytes(data []uint32) []byte {
	b := make([]byte, 0, 4*len(data))
	for _, v := range data {
		b = binary.LittleEndian.AppendUint32(b, v)
	}
	return b
}

// VertexBuffer is a buffer of per-vertex float32 attribute data,
// with Dim components per vertex.
type VertexBuffer struct {
	ID   BufferID
	Dim  int
	NVtx int
}

// NewVertexBuffer creates a vertex buffer and uploads data to it.
func NewVertexBuffer(ctx Context, dim int, data []float32) *VertexBuffer {
	vb := &VertexBuffer{ID: ctx.CreateBuffer(), Dim: dim}
	vb.Upload(ctx, data)
	return vb
}

// Upload replaces the buffer contents with data.
func (vb *VertexBuffer) Upload(ctx Context, data []float32) {
	ctx.BindBuffer(ArrayBuffer, vb.ID)
	ctx.BufferData(ArrayBuffer, Float32Bytes(data))
	vb.NVtx = len(data) / vb.Dim
}

// Bind binds the buffer to the given attribute location.
// Negative locations (inactive attributes) are ignored.
func (vb *VertexBuffer) Bind(ctx Context, loc int) {
	if loc < 0 {
		return
	}
	ctx.BindBuffer(ArrayBuffer, vb.ID)
	ctx.VertexAttribPointer(loc, vb.Dim)
}

// Release deletes the buffer.
func (vb *VertexBuffer) Release(ctx Context) {
	ctx.DeleteBuffer(vb.ID)
}

// IndexBuffer is a buffer of uint32 triangle indexes.
type IndexBuffer struct {
	ID BufferID
	N  int
}

// NewIndexBuffer creates an index buffer and uploads indexes to it.
func NewIndexBuffer(ctx Context, indexes []uint32) *IndexBuffer {
	ib := &IndexBuffer{ID: ctx.CreateBuffer(), N: len(indexes)}
	ctx.BindBuffer(ElementArrayBuffer, ib.ID)
	ctx.BufferData(ElementArrayBuffer, Uint32Bytes(indexes))
	return ib
}

// Draw binds the buffer and draws all of its indexes.
func (ib *IndexBuffer) Draw(ctx Context) {
	ctx.BindBuffer(ElementArrayBuffer, ib.ID)
	ctx.DrawElements(ib.N, 0)
}

// Release deletes the buffer.
func (ib *IndexBuffer) Release(ctx Context) {
	ctx.DeleteBuffer(ib.ID)
}
