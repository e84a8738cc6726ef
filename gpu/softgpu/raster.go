// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softgpu

import (
	"cogentcore.org/minirender/gpu"
	"cogentcore.org/minirender/math32"
)

// minW is the smallest clip w accepted; triangles with a vertex
// at or behind the eye plane are dropped rather than clipped.
const minW = 1e-6

// vertex is a vertex after the vertex stage, in window coordinates.
type vertex struct {
	x, y, z float32 // window x, y and depth in [0, 1]
	invW    float32
	color   math32.Vector4
}

// fetch reads vertex attribute arrays for the current program.
type fetch struct {
	pos, nrm, clr []float32
	posN, nrmN    int
	clrN          int
}

func (cx *Context) attribData(pr *program, name string) ([]float32, int) {
	loc := pr.attrib(name)
	if loc < 0 {
		return nil, 0
	}
	ab, ok := cx.attribs[loc]
	if !ok {
		return nil, 0
	}
	return float32s(cx.buffers[ab.buf]), ab.size
}

func (cx *Context) DrawElements(count, offset int) {
	ib := cx.bound[gpu.ElementArrayBuffer]
	if ib == 0 {
		cx.invalid("DrawElements: no index buffer bound")
		return
	}
	idx := uint32s(cx.buffers[ib])
	if offset < 0 || offset+count > len(idx) {
		cx.invalid("DrawElements: range %d+%d exceeds %d indexes", offset, count, len(idx))
		return
	}
	cx.draw(idx[offset : offset+count])
}

func (cx *Context) DrawArrays(first, count int) {
	idx := make([]uint32, count)
	for i := range idx {
		idx[i] = uint32(first + i)
	}
	cx.draw(idx)
}

func (cx *Context) draw(idx []uint32) {
	pr := cx.current
	if pr == nil {
		cx.invalid("draw: no current program")
		return
	}
	var f fetch
	f.pos, f.posN = cx.attribData(pr, attrPosition)
	f.nrm, f.nrmN = cx.attribData(pr, attrNormal)
	f.clr, f.clrN = cx.attribData(pr, attrColor)
	if f.pos == nil {
		cx.invalid("draw: attribute %q not bound", attrPosition)
		return
	}
	nvtx := len(f.pos) / f.posN
	for _, ix := range idx {
		if int(ix) >= nvtx {
			cx.invalid("draw: index %d out of range of %d vertices", ix, nvtx)
			return
		}
	}

	mvp := math32.Identity4()
	if m, ok := pr.matrices[pr.uniform(uniMVP)]; ok {
		mvp = m
	}
	var light math32.Vector3
	lit := false
	if inv, ok := pr.matrices[pr.uniform(uniInv)]; ok && f.nrm != nil {
		if ld, ok := pr.vectors[pr.uniform(uniLightDirect)]; ok {
			light = math32.Vector4FromVector3(ld, 0).MulMatrix4(&inv).Vector3().Normal()
			lit = true
		}
	}

	cx.Stats.DrawCalls++
	cache := make(map[uint32]*vertex, len(idx))
	shade := func(ix uint32) *vertex {
		if v, ok := cache[ix]; ok {
			return v
		}
		v := cx.vertexStage(&f, int(ix), &mvp, lit, light)
		cache[ix] = v
		return v
	}
	for i := 0; i+2 < len(idx); i += 3 {
		cx.Stats.Triangles++
		a, b, c := shade(idx[i]), shade(idx[i+1]), shade(idx[i+2])
		if a == nil || b == nil || c == nil {
			cx.Stats.Culled++
			continue
		}
		cx.triangle(a, b, c)
	}
}

// vertexStage runs the fixed vertex contract. It returns nil for
// vertices at or behind the eye.
func (cx *Context) vertexStage(f *fetch, i int, mvp *math32.Matrix4, lit bool, light math32.Vector3) *vertex {
	p := math32.Vector4{W: 1}
	comp := []*float32{&p.X, &p.Y, &p.Z, &p.W}
	for d := 0; d < f.posN && d < 4; d++ {
		*comp[d] = f.pos[i*f.posN+d]
	}
	clip := p.MulMatrix4(mvp)
	if clip.W < minW {
		return nil
	}
	clr := math32.Vec4(1, 1, 1, 1)
	if f.clr != nil && (i+1)*f.clrN <= len(f.clr) {
		cc := []*float32{&clr.X, &clr.Y, &clr.Z, &clr.W}
		for d := 0; d < f.clrN; d++ {
			*cc[d] = f.clr[i*f.clrN+d]
		}
	}
	if lit && f.nrmN >= 3 && (i+1)*f.nrmN <= len(f.nrm) {
		n := math32.Vec3(f.nrm[i*f.nrmN], f.nrm[i*f.nrmN+1], f.nrm[i*f.nrmN+2])
		diffuse := math32.Clamp(n.Dot(light), 0.1, 1)
		clr.X *= diffuse
		clr.Y *= diffuse
		clr.Z *= diffuse
	}
	ndc := clip.PerspDiv()
	vp := cx.viewport
	return &vertex{
		x:     float32(vp.Min.X) + (ndc.X+1)/2*float32(vp.Dx()),
		y:     float32(vp.Min.Y) + (1-ndc.Y)/2*float32(vp.Dy()),
		z:     (ndc.Z + 1) / 2,
		invW:  1 / clip.W,
		color: clr,
	}
}

// edge returns twice the signed area of the window-space triangle a, b, p.
// Window y points down, so counter-clockwise NDC triangles are negative.
func edge(a, b *vertex, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

func (cx *Context) triangle(a, b, c *vertex) {
	area := edge(a, b, c.x, c.y)
	if area == 0 {
		cx.Stats.Culled++
		return
	}
	if cx.caps[gpu.CullFace] && area > 0 {
		cx.Stats.Culled++
		return
	}
	bounds := cx.Frame.Rect.Intersect(cx.viewport)
	minX := max(bounds.Min.X, int(math32.Floor(min(a.x, b.x, c.x))))
	maxX := min(bounds.Max.X-1, int(math32.Floor(max(a.x, b.x, c.x))))
	minY := max(bounds.Min.Y, int(math32.Floor(min(a.y, b.y, c.y))))
	maxY := min(bounds.Max.Y-1, int(math32.Floor(max(a.y, b.y, c.y))))
	depthTest := cx.caps[gpu.DepthTest]
	stride := cx.Frame.Rect.Dx()

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			w0 := edge(b, c, px, py) / area
			w1 := edge(c, a, px, py) / area
			w2 := edge(a, b, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*a.z + w1*b.z + w2*c.z
			di := y*stride + x
			if depthTest {
				if z > cx.depth[di] || z < 0 {
					continue
				}
				cx.depth[di] = z
			}
			// perspective-correct color interpolation
			pa, pb, pc := w0*a.invW, w1*b.invW, w2*c.invW
			sum := pa + pb + pc
			pa, pb, pc = pa/sum, pb/sum, pc/sum
			r := pa*a.color.X + pb*b.color.X + pc*c.color.X
			g := pa*a.color.Y + pb*b.color.Y + pc*c.color.Y
			bl := pa*a.color.Z + pb*b.color.Z + pc*c.color.Z
			al := pa*a.color.W + pb*b.color.W + pc*c.color.W
			o := cx.Frame.PixOffset(x, y)
			cx.Frame.Pix[o] = unit8(r)
			cx.Frame.Pix[o+1] = unit8(g)
			cx.Frame.Pix[o+2] = unit8(bl)
			cx.Frame.Pix[o+3] = unit8(al)
			cx.Stats.Fragments++
		}
	}
}
