package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Default raster size used when a builder is given a non-positive size
const (
	DefaultWidth  = 500
	DefaultHeight = 500
)

// ErrUnknownScene is returned by New for names that are not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a built-in scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name passed to New
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"`
}

type builtin struct {
	description string
	build       func(width, height int) *Scene
}

var builtins = map[string]builtin{
	"cornell": {
		description: "Triangle Cornell box with a ceiling light opening and a mirror sphere",
		build:       NewCornellScene,
	},
	"spheres": {
		description: "3x3 grid of glossy spheres over a reflective floor",
		build:       NewSphereGridScene,
	},
	"focus": {
		description: "Row of spheres seen through a thin lens focused on the middle one",
		build:       NewFocusScene,
	},
	"mirror": {
		description: "Two mirror spheres reflecting each other",
		build:       NewMirrorScene,
	},
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListScenes returns metadata for every registered scene, sorted by ID
func ListScenes() []SceneInfo {
	var scenes []SceneInfo
	for _, name := range Names() {
		scenes = append(scenes, SceneInfo{
			ID:          name,
			DisplayName: titleCase(name),
			Description: builtins[name].description,
		})
	}
	return scenes
}

// New builds the named scene at the given raster size and preprocesses it
func New(name string, width, height int) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
	}

	s := b.build(width, height)
	if err := s.Preprocess(); err != nil {
		return nil, fmt.Errorf("failed to prepare scene %s: %w", name, err)
	}
	return s, nil
}

// titleCase converts "my-scene_name" to "My Scene Name"
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}

func rasterOrDefault(width, height int) (int, int) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return width, height
}

func tri(v0, v1, v2 core.Vec3) geometry.Primitive {
	return geometry.NewTriangle(v0, v1, v2)
}

// add appends a named model; it panics on invalid literal geometry
func (s *Scene) add(name string, mat material.Material, primitives ...geometry.Primitive) {
	s.Models = append(s.Models, geometry.MustModel(mat, primitives...).Named(name))
}
