// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedContext is returned when no graphics context is available.
var ErrUnsupportedContext = errors.New("gpu: graphics context unavailable")

// ShaderCompileError is returned when a shader fails to compile,
// with the compiler diagnostics.
type ShaderCompileError struct {
	Type ShaderTypes
	Log  string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("gpu: %s compile failed: %s", e.Type, strings.TrimSpace(e.Log))
}

// ProgramLinkError is returned when a program fails to link,
// with the linker diagnostics.
type ProgramLinkError struct {
	Log string
}

func (e *ProgramLinkError) Error() string {
	return fmt.Sprintf("gpu: program link failed: %s", strings.TrimSpace(e.Log))
}
