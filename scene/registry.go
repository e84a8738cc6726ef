// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene holds the drawable objects queued for rendering,
// in registration order, and the arena of index meshes they draw with.
// There is no removal: objects live as long as the registry.
package scene

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"cogentcore.org/minirender/colors"
	"cogentcore.org/minirender/math32"
	"cogentcore.org/minirender/shape"
)

var (
	// ErrAttributeDim is returned for an attribute with a dimension
	// outside 1..4 or data not a multiple of its dimension.
	ErrAttributeDim = errors.New("scene: invalid attribute dimension")

	// ErrAttributeMismatch is returned when attributes of one object
	// have different vertex counts, or none are given.
	ErrAttributeMismatch = errors.New("scene: attribute vertex counts differ")

	// ErrIndexRange is returned when a mesh references vertices
	// beyond those of the object.
	ErrIndexRange = errors.New("scene: mesh index out of range")

	// ErrMeshExists is returned when adding a mesh under a name
	// that is already in the arena.
	ErrMeshExists = errors.New("scene: mesh name in use")

	// ErrUnknownHandle is returned for an object handle or mesh index
	// that was not issued by the registry.
	ErrUnknownHandle = errors.New("scene: unknown handle")
)

// Handle identifies a registered object; handles are issued
// densely in registration order starting at 0.
type Handle int

// Registry is the ordered list of drawable objects.
// Order is significant: later objects draw over earlier ones
// at equal depth.
type Registry struct {
	objects []*Object
	meshes  meshes
}

// NewRegistry returns an empty registry whose mesh arena holds
// the default quad mesh at [QuadMesh].
func NewRegistry() *Registry {
	return &Registry{meshes: newMeshes()}
}

// Len returns the number of registered objects.
func (rg *Registry) Len() int {
	return len(rg.objects)
}

// Objects returns the registered objects in registration order.
// The returned slice must not be modified.
func (rg *Registry) Objects() []*Object {
	return rg.objects
}

// Object returns the object for the given handle.
func (rg *Registry) Object(h Handle) (*Object, error) {
	if h < 0 || int(h) >= len(rg.objects) {
		return nil, fmt.Errorf("%w: object %d", ErrUnknownHandle, h)
	}
	return rg.objects[h], nil
}

// NumMeshes returns the number of meshes in the arena.
func (rg *Registry) NumMeshes() int {
	return rg.meshes.Len()
}

// Mesh returns the mesh at the given arena index.
func (rg *Registry) Mesh(idx int) (*Mesh, error) {
	if err := rg.meshes.IndexIsValid(idx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownHandle, err)
	}
	return rg.meshes.ValueByIndex(idx), nil
}

// MeshByName returns the arena index of the named mesh.
func (rg *Registry) MeshByName(name string) (int, bool) {
	return rg.meshes.IndexByKeyTry(name)
}

// AddMesh adds an index list to the mesh arena under a new name and
// returns its index. It fails with [ErrMeshExists] if the name is
// already in use; see [Registry.ReplaceMesh] to change an existing mesh.
func (rg *Registry) AddMesh(name string, indices []uint32) (int, error) {
	if idx, has := rg.meshes.IndexByKeyTry(name); has {
		return idx, fmt.Errorf("%w: %q", ErrMeshExists, name)
	}
	return rg.meshes.add(name, indices), nil
}

// ReplaceMesh replaces the indices of the named mesh in place, which
// changes what every object using it draws. It fails with
// [ErrUnknownHandle] for a name not in the arena, [ErrMeshExists] for
// the default quad mesh, and [ErrIndexRange] if an object using the
// mesh has too few vertices for the new indices.
func (rg *Registry) ReplaceMesh(name string, indices []uint32) (int, error) {
	idx, has := rg.meshes.IndexByKeyTry(name)
	if !has {
		return NoMesh, fmt.Errorf("%w: mesh %q", ErrUnknownHandle, name)
	}
	if idx == QuadMesh {
		return idx, fmt.Errorf("%w: %q is the default mesh", ErrMeshExists, name)
	}
	for h, ob := range rg.objects {
		if ob.Mesh != idx {
			continue
		}
		for _, ix := range indices {
			if int(ix) >= ob.nVertex {
				return idx, fmt.Errorf("%w: mesh %q index %d, object %d has %d vertices", ErrIndexRange, name, ix, h, ob.nVertex)
			}
		}
	}
	slog.Debug("scene.Registry ReplaceMesh", "mesh", name, "index", idx, "indices", len(indices))
	return rg.meshes.add(name, indices), nil
}

// checkAttributes validates attributes and returns the vertex count.
func checkAttributes(attrs []VertexAttribute) (int, error) {
	if len(attrs) == 0 {
		return 0, fmt.Errorf("%w: no attributes", ErrAttributeMismatch)
	}
	nv := -1
	for i := range attrs {
		va := &attrs[i]
		if err := va.Validate(); err != nil {
			return 0, err
		}
		if nv >= 0 && va.NVertex() != nv {
			return 0, fmt.Errorf("%w: %q has %d vertices, expected %d", ErrAttributeMismatch, va.Name, va.NVertex(), nv)
		}
		nv = va.NVertex()
	}
	return nv, nil
}

// Register appends an object with the given attributes and placements.
// The attribute data is copied; use [Registry.SetAttribute] to change it.
// An object with exactly four vertices draws with the default quad
// mesh; any other object draws its vertices as a triangle list.
func (rg *Registry) Register(attrs []VertexAttribute, placements ...Placement) (Handle, error) {
	nv, err := checkAttributes(attrs)
	if err != nil {
		return -1, err
	}
	mesh := NoMesh
	if nv == 4 {
		mesh = QuadMesh
	}
	return rg.RegisterWithMesh(attrs, mesh, placements...)
}

// RegisterWithMesh appends an object that draws with the given
// mesh from the arena, or [NoMesh].
func (rg *Registry) RegisterWithMesh(attrs []VertexAttribute, mesh int, placements ...Placement) (Handle, error) {
	nv, err := checkAttributes(attrs)
	if err != nil {
		return -1, err
	}
	if mesh != NoMesh {
		me, err := rg.Mesh(mesh)
		if err != nil {
			return -1, err
		}
		if len(me.Indices) > 0 && int(me.MaxIndex) >= nv {
			return -1, fmt.Errorf("%w: mesh %q index %d, object has %d vertices", ErrIndexRange, me.Name, me.MaxIndex, nv)
		}
	}
	ob := &Object{
		Attributes: cloneAttributes(attrs),
		Placements: placements,
		Mesh:       mesh,
		nVertex:    nv,
		dirty:      true,
	}
	rg.objects = append(rg.objects, ob)
	h := Handle(len(rg.objects) - 1)
	slog.Debug("scene.Registry Register", "handle", h, "vertices", nv, "mesh", mesh, "placements", len(placements))
	return h, nil
}

// RegisterPolygon appends an object with explicit indices, which are
// added to the mesh arena under name. The name must not be in use
// ([ErrMeshExists]), so earlier objects never change meshes.
// With nil indices, it is the same as [Registry.Register].
func (rg *Registry) RegisterPolygon(name string, attrs []VertexAttribute, indices []uint32, placements ...Placement) (Handle, error) {
	if indices == nil {
		return rg.Register(attrs, placements...)
	}
	nv, err := checkAttributes(attrs)
	if err != nil {
		return -1, err
	}
	for _, ix := range indices {
		if int(ix) >= nv {
			return -1, fmt.Errorf("%w: polygon %q index %d, object has %d vertices", ErrIndexRange, name, ix, nv)
		}
	}
	mesh, err := rg.AddMesh(name, indices)
	if err != nil {
		return -1, err
	}
	return rg.RegisterWithMesh(attrs, mesh, placements...)
}

// RegisterMesh appends an object using the positions, normals and
// colors of the given shape mesh, with its indices added to the
// arena under name.
func (rg *Registry) RegisterMesh(name string, m *shape.Mesh, placements ...Placement) (Handle, error) {
	return rg.RegisterPolygon(name, MeshAttributes(m), m.Indices, placements...)
}

// RegisterQuad appends a flat quad of the given size and color,
// centered on pos, drawn with the default quad mesh.
func (rg *Registry) RegisterQuad(pos math32.Vector3, width, height float32, clr colors.RGBA, placements ...Placement) (Handle, error) {
	pl := shape.NewPlane(pos, width, height)
	pl.Color = clr
	m, err := shape.Generate(pl)
	if err != nil {
		return -1, err
	}
	return rg.RegisterWithMesh(MeshAttributes(m), QuadMesh, placements...)
}

// RegisterTorus generates the torus mesh and appends an object for it.
// Tori with the same parameters share one mesh in the arena.
func (rg *Registry) RegisterTorus(tr *shape.Torus, placements ...Placement) (Handle, error) {
	m, err := shape.Generate(tr)
	if err != nil {
		return -1, err
	}
	name := fmt.Sprintf("torus-%dx%d-%g-%g", tr.Rings, tr.Segments, tr.InnerRadius, tr.OuterRadius)
	if idx, has := rg.meshes.IndexByKeyTry(name); has {
		return rg.RegisterWithMesh(MeshAttributes(m), idx, placements...)
	}
	return rg.RegisterMesh(name, m, placements...)
}

// SetAttribute replaces the attribute of the same name on the object,
// or adds it, and marks the object dirty so its buffers are uploaded
// again. The vertex count must not change.
func (rg *Registry) SetAttribute(h Handle, attr VertexAttribute) error {
	ob, err := rg.Object(h)
	if err != nil {
		return err
	}
	if err := attr.Validate(); err != nil {
		return err
	}
	if attr.NVertex() != ob.nVertex {
		return fmt.Errorf("%w: %q has %d vertices, object has %d", ErrAttributeMismatch, attr.Name, attr.NVertex(), ob.nVertex)
	}
	attr.Data = slices.Clone(attr.Data)
	if va := ob.Attribute(attr.Name); va != nil {
		*va = attr
	} else {
		ob.Attributes = append(ob.Attributes, attr)
	}
	ob.dirty = true
	return nil
}

// cloneAttributes copies the attributes and their data, so only
// [Registry.SetAttribute] can change registered vertex data.
func cloneAttributes(attrs []VertexAttribute) []VertexAttribute {
	cl := make([]VertexAttribute, len(attrs))
	for i, va := range attrs {
		va.Data = slices.Clone(va.Data)
		cl[i] = va
	}
	return cl
}

// MeshAttributes returns the position, normal and color
// attributes of the given shape mesh.
func MeshAttributes(m *shape.Mesh) []VertexAttribute {
	return []VertexAttribute{
		NewAttribute(Position, 3, m.Positions),
		NewAttribute(Normal, 3, m.Normals),
		NewAttribute(Color, 4, m.Colors),
	}
}
