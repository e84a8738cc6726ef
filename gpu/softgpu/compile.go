// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softgpu

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"cogentcore.org/minirender/gpu"
)

// shader is a "compiled" GLSL ES 1.0 shader. The software pipeline
// does not execute GLSL: it checks the source structure and records
// the declared interface, then runs the fixed vertex color / diffuse
// lighting contract for any program that declares it.
type shader struct {
	typ      gpu.ShaderTypes
	src      string
	compiled bool
	log      string

	attributes []string
	uniforms   []string
	varyings   []string
}

var (
	declRe   = regexp.MustCompile(`(?m)^\s*(attribute|uniform|varying)\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)\s*;`)
	mainRe   = regexp.MustCompile(`\bvoid\s+main\s*\(\s*(?:void)?\s*\)`)
	posRe    = regexp.MustCompile(`\bgl_Position\s*=`)
	fragRe   = regexp.MustCompile(`\bgl_FragColor\s*=`)
	commentR = regexp.MustCompile(`(?s)//[^\n]*|/\*.*?\*/`)
)

// compile checks the source and fills in the shader interface,
// returning whether it succeeded. Diagnostics follow the
// "ERROR: 0:line: message" layout of GLSL compilers.
func (sh *shader) compile() bool {
	sh.compiled = false
	sh.attributes, sh.uniforms, sh.varyings = nil, nil, nil
	var errs []string
	fail := func(line int, format string, args ...any) {
		errs = append(errs, fmt.Sprintf("ERROR: 0:%d: %s", line, fmt.Sprintf(format, args...)))
	}

	src := commentR.ReplaceAllStringFunc(sh.src, func(c string) string {
		// keep line numbers stable
		return strings.Repeat("\n", strings.Count(c, "\n"))
	})
	if strings.TrimSpace(src) == "" {
		fail(0, "empty shader source")
		sh.log = strings.Join(errs, "\n")
		return false
	}

	depth := map[rune]int{}
	pairs := map[rune]rune{'}': '{', ')': '(', ']': '['}
	line := 1
	for _, r := range src {
		switch r {
		case '\n':
			line++
		case '{', '(', '[':
			depth[r]++
		case '}', ')', ']':
			open := pairs[r]
			depth[open]--
			if depth[open] < 0 {
				fail(line, "'%c' : syntax error", r)
				depth[open] = 0
			}
		}
	}
	for _, open := range []rune{'{', '(', '['} {
		if depth[open] > 0 {
			fail(line, "'%c' : unexpected end of file, unclosed", open)
		}
	}

	if !mainRe.MatchString(src) {
		fail(0, "'main' : function not defined")
	}

	for _, m := range declRe.FindAllStringSubmatchIndex(src, -1) {
		qual := src[m[2]:m[3]]
		name := src[m[6]:m[7]]
		ln := strings.Count(src[:m[0]], "\n") + 1
		switch qual {
		case "attribute":
			if sh.typ != gpu.VertexShader {
				fail(ln, "'attribute' : supported in vertex shaders only")
				continue
			}
			sh.attributes = append(sh.attributes, name)
		case "uniform":
			sh.uniforms = append(sh.uniforms, name)
		case "varying":
			sh.varyings = append(sh.varyings, name)
		}
	}

	switch sh.typ {
	case gpu.VertexShader:
		if !posRe.MatchString(src) {
			fail(0, "'gl_Position' : vertex shader must write gl_Position")
		}
	case gpu.FragmentShader:
		if !fragRe.MatchString(src) {
			fail(0, "'gl_FragColor' : fragment shader must write gl_FragColor")
		}
	}

	sh.log = strings.Join(errs, "\n")
	sh.compiled = len(errs) == 0
	return sh.compiled
}

// program is a linked pair of shaders. Attribute and uniform
// locations are the declaration order indexes.
type program struct {
	shaders []*shader
	linked  bool
	log     string

	attributes []string
	uniforms   []string
	matrices   map[int]mat4Value
	vectors    map[int]vec3Value
}

// link checks the attached stages and builds the program interface.
func (pr *program) link() bool {
	pr.linked = false
	var errs []string
	var vs, fs *shader
	for _, sh := range pr.shaders {
		if !sh.compiled {
			errs = append(errs, fmt.Sprintf("ERROR: %s is not compiled", sh.typ))
			continue
		}
		switch sh.typ {
		case gpu.VertexShader:
			vs = sh
		case gpu.FragmentShader:
			fs = sh
		}
	}
	if vs == nil {
		errs = append(errs, "ERROR: missing VertexShader")
	}
	if fs == nil {
		errs = append(errs, "ERROR: missing FragmentShader")
	}
	if vs != nil && fs != nil {
		for _, v := range fs.varyings {
			if !slices.Contains(vs.varyings, v) {
				errs = append(errs, fmt.Sprintf("ERROR: varying '%s' not declared in VertexShader", v))
			}
		}
		if !slices.Contains(vs.attributes, attrPosition) {
			errs = append(errs, fmt.Sprintf("ERROR: attribute '%s' is required", attrPosition))
		}
	}
	pr.log = strings.Join(errs, "\n")
	if len(errs) > 0 {
		return false
	}
	pr.attributes = slices.Clone(vs.attributes)
	pr.uniforms = slices.Clone(vs.uniforms)
	for _, u := range fs.uniforms {
		if !slices.Contains(pr.uniforms, u) {
			pr.uniforms = append(pr.uniforms, u)
		}
	}
	pr.matrices = map[int]mat4Value{}
	pr.vectors = map[int]vec3Value{}
	pr.linked = true
	return true
}

func (pr *program) attrib(name string) int {
	return slices.Index(pr.attributes, name)
}

func (pr *program) uniform(name string) int {
	return slices.Index(pr.uniforms, name)
}
