// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config provides the renderer settings, loaded from TOML
// or YAML files.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/minirender/colors"
	"cogentcore.org/minirender/math32"
	"github.com/jinzhu/copier"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by [Config.Validate] for settings
// that cannot be rendered with.
var ErrInvalid = errors.New("config: invalid setting")

// Config has the settings for a [render.Renderer].
type Config struct {
	// Width and Height of the drawing area; zero means use the
	// size of the graphics context.
	Width  int
	Height int

	// Shaders, if empty, are the built-in sources.
	Shaders Shaders

	Camera Camera

	Light Light

	// ClearColor is the background color of each frame.
	ClearColor colors.RGBA

	// DepthTest enables the less-or-equal depth test.
	DepthTest bool

	// CullFace enables culling of back (clockwise) faces.
	CullFace bool

	// AngleStep is the rotation in radians per frame tick
	// for placements with a rotation axis.
	AngleStep float32

	// CarryModel keeps the model matrix of one placement as the
	// starting point of the next placement of the same object,
	// instead of resetting it to the identity for each placement.
	CarryModel bool
}

// Shaders specifies the vertex and fragment shader sources, inline
// or as file paths. Inline sources take precedence over files.
type Shaders struct {
	Vertex       string
	Fragment     string
	VertexFile   string
	FragmentFile string
}

// Camera is the view and perspective projection.
type Camera struct {
	Eye    math32.Vector3
	Target math32.Vector3
	Up     math32.Vector3

	// FOV is the vertical field of view in degrees.
	FOV float32

	Near float32
	Far  float32
}

// Light is a directional light used with the lit shader variant.
type Light struct {
	Enabled bool

	// Direction toward the light, in world coordinates.
	Direction math32.Vector3
}

// Defaults returns the default settings: a camera at z = 20 looking
// at the origin with a 45 degree field of view, lighting from the
// upper left front, depth test and culling on, and one degree of
// rotation per tick.
func Defaults() *Config {
	return &Config{
		Camera: Camera{
			Eye:    math32.Vec3(0, 0, 20),
			Target: math32.Vec3(0, 0, 0),
			Up:     math32.Vec3(0, 1, 0),
			FOV:    45,
			Near:   0.1,
			Far:    100,
		},
		Light: Light{
			Enabled:   true,
			Direction: math32.Vec3(-0.5, 0.5, 0.5),
		},
		ClearColor: colors.RGBA{A: 1},
		DepthTest:  true,
		CullFace:   true,
		AngleStep:  math32.Pi / 180,
	}
}

// Open reads the config file at path on top of [Defaults]. Files
// ending in .yaml or .yml are YAML, with lower case keys; all others
// are TOML. Relative shader file paths are resolved against the
// directory of the config file.
func Open(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	read := Read
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".yaml" || ext == ".yml" {
		read = ReadYAML
	}
	cfg, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("config.Open %q: %w", path, err)
	}
	dir := filepath.Dir(path)
	for _, p := range []*string{&cfg.Shaders.VertexFile, &cfg.Shaders.FragmentFile} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	return cfg, nil
}

// Read decodes TOML from r on top of [Defaults] and validates it.
// Unknown keys are an error.
func Read(r io.Reader) (*Config, error) {
	cfg := Defaults()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadYAML decodes YAML from r on top of [Defaults] and validates it.
// Unknown keys are an error.
func ReadYAML(r io.Reader) (*Config, error) {
	cfg := Defaults()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Clone returns a deep copy of the config.
func (cfg *Config) Clone() *Config {
	cp := &Config{}
	if err := copier.CopyWithOption(cp, cfg, copier.Option{DeepCopy: true}); err != nil {
		// only reachable with mismatched types, which Config never has
		panic(err)
	}
	return cp
}

// Save writes the config as TOML to path.
func (cfg *Config) Save(path string) error {
	b, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Validate checks the settings that do not depend on the graphics
// context. Projection parameters are checked when they are applied.
func (cfg *Config) Validate() error {
	if cfg.Width < 0 || cfg.Height < 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, cfg.Width, cfg.Height)
	}
	if cfg.Light.Enabled && cfg.Light.Direction.LengthSquared() == 0 {
		return fmt.Errorf("%w: light direction is zero", ErrInvalid)
	}
	if math32.IsNaN(cfg.AngleStep) {
		return fmt.Errorf("%w: angle step is NaN", ErrInvalid)
	}
	return nil
}

// ShaderSources returns the vertex and fragment sources, reading
// them from files where not given inline. Empty results mean the
// built-in source is used for that stage.
func (cfg *Config) ShaderSources() (vertex, fragment string, err error) {
	vertex, err = source(cfg.Shaders.Vertex, cfg.Shaders.VertexFile)
	if err != nil {
		return
	}
	fragment, err = source(cfg.Shaders.Fragment, cfg.Shaders.FragmentFile)
	return
}

func source(inline, file string) (string, error) {
	if inline != "" || file == "" {
		return inline, nil
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
