// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"log/slog"

	"cogentcore.org/minirender/gpu"
	"cogentcore.org/minirender/scene"
)

// objectBuffers are the vertex buffers of one object, by attribute name.
type objectBuffers struct {
	attribs map[string]*gpu.VertexBuffer
}

// meshBuffer is the index buffer uploaded for a mesh in the arena.
// The mesh pointer detects replacement of the mesh under the same index.
type meshBuffer struct {
	mesh *scene.Mesh
	buf  *gpu.IndexBuffer
}

// vertexBuffers returns the vertex buffers for the object, creating
// them on first use and uploading the data again if it is dirty.
func (rd *Renderer) vertexBuffers(h scene.Handle, ob *scene.Object) *objectBuffers {
	for int(h) >= len(rd.objects) {
		rd.objects = append(rd.objects, nil)
	}
	bs := rd.objects[h]
	if bs == nil {
		bs = &objectBuffers{attribs: map[string]*gpu.VertexBuffer{}}
		rd.objects[h] = bs
	}
	if !ob.Dirty() {
		return bs
	}
	for _, va := range ob.Attributes {
		vb, ok := bs.attribs[va.Name]
		if !ok || vb.Dim != va.Dim {
			if ok {
				vb.Release(rd.ctx)
			}
			bs.attribs[va.Name] = gpu.NewVertexBuffer(rd.ctx, va.Dim, va.Data)
			continue
		}
		vb.Upload(rd.ctx, va.Data)
	}
	ob.ClearDirty()
	rd.Uploads++
	slog.Debug("render.Renderer upload", "object", h, "attributes", len(ob.Attributes))
	return bs
}

// bind binds the object's buffers to the program attributes, and
// disables program attributes the object does not have.
func (rd *Renderer) bind(bs *objectBuffers) {
	for _, name := range []string{scene.Position, scene.Normal, scene.Color} {
		loc := rd.program.Attrib(name)
		if loc < 0 {
			continue
		}
		if vb, ok := bs.attribs[name]; ok {
			vb.Bind(rd.ctx, loc)
		} else {
			rd.ctx.DisableVertexAttrib(loc)
		}
	}
}

// indexBuffer returns the index buffer for the mesh at index idx,
// uploading it on first use or after the mesh was replaced.
func (rd *Renderer) indexBuffer(idx int) (*gpu.IndexBuffer, error) {
	me, err := rd.Scene.Mesh(idx)
	if err != nil {
		return nil, err
	}
	mb, ok := rd.meshes[idx]
	if ok && mb.mesh == me {
		return mb.buf, nil
	}
	if ok {
		mb.buf.Release(rd.ctx)
	}
	mb = &meshBuffer{mesh: me, buf: gpu.NewIndexBuffer(rd.ctx, me.Indices)}
	rd.meshes[idx] = mb
	return mb.buf, nil
}

// releaseBuffers deletes all cached buffers.
func (rd *Renderer) releaseBuffers() {
	for _, bs := range rd.objects {
		if bs == nil {
			continue
		}
		for _, vb := range bs.attribs {
			vb.Release(rd.ctx)
		}
	}
	for _, mb := range rd.meshes {
		mb.buf.Release(rd.ctx)
	}
	rd.objects = nil
	rd.meshes = map[int]*meshBuffer{}
}
