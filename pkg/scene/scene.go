package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// ErrEmptyScene is returned by Preprocess when the scene has no models
var ErrEmptyScene = errors.New("scene has no models")

// Scene contains all the elements needed for rendering. It is mutable only
// until Preprocess succeeds; after that the tracer treats it as read-only.
type Scene struct {
	Name           string
	Models         []*geometry.Model // Iteration order decides ties between equal distances
	Lights         []lights.Light
	Background     core.Vec3 // Radiance returned when a ray hits nothing
	CameraConfig   geometry.CameraConfig
	Camera         *geometry.Camera // Built by Preprocess
	SamplingConfig SamplingConfig

	// Fit, when set, is applied to every model once during Preprocess.
	// Lights and the camera are given in the fitted space.
	Fit *geometry.Transform

	fitted bool
	ready  bool
}

// SamplingConfig contains rendering configuration. Zero fields take the
// values of DefaultSamplingConfig during Preprocess.
type SamplingConfig struct {
	GridSize int // N for an N×N sub-pixel grid; 1 traces one ray through the pixel center
	MaxDepth int // Reflection recursion bound
}

// DefaultSamplingConfig returns a 5×5 grid with three reflection bounces
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		GridSize: 5,
		MaxDepth: 3,
	}
}

// Preprocess validates the scene, applies the fit transform and builds the
// camera. Calling it again on a prepared scene does nothing.
func (s *Scene) Preprocess() error {
	if s.ready {
		return nil
	}
	if len(s.Models) == 0 {
		return ErrEmptyScene
	}

	for i, m := range s.Models {
		if m == nil {
			return fmt.Errorf("model %d is nil", i)
		}
		if err := m.Validate(); err != nil {
			return fmt.Errorf("model %d (%s): %w", i, m.Name, err)
		}
	}

	// Every model is fitted before any is replaced, so a failure leaves the
	// scene as it was and a later retry fits each model exactly once
	if s.Fit != nil && !s.fitted {
		fitted := make([]*geometry.Model, len(s.Models))
		for i, m := range s.Models {
			out, err := m.Transformed(*s.Fit)
			if err != nil {
				return fmt.Errorf("fitting model %d (%s): %w", i, m.Name, err)
			}
			fitted[i] = out
		}
		for i, m := range s.Models {
			*m = *fitted[i]
		}
		s.fitted = true
	}

	for i, l := range s.Lights {
		if l == nil {
			return fmt.Errorf("light %d is nil", i)
		}
		if err := l.Validate(); err != nil {
			return fmt.Errorf("light %d: %w", i, err)
		}
	}

	if s.SamplingConfig.GridSize < 0 || s.SamplingConfig.MaxDepth < 0 {
		return fmt.Errorf("invalid sampling config %+v", s.SamplingConfig)
	}
	defaults := DefaultSamplingConfig()
	if s.SamplingConfig.GridSize == 0 {
		s.SamplingConfig.GridSize = defaults.GridSize
	}
	if s.SamplingConfig.MaxDepth == 0 {
		s.SamplingConfig.MaxDepth = defaults.MaxDepth
	}

	camera, err := geometry.NewCamera(s.CameraConfig)
	if err != nil {
		return err
	}
	s.Camera = camera
	s.ready = true
	return nil
}

// Hit returns the nearest intersection across every model. Models whose
// bounding box the ray misses are skipped; on equal distances the model
// earlier in Models wins.
func (s *Scene) Hit(ray core.Ray) (*geometry.HitRecord, bool) {
	var nearest *geometry.HitRecord
	closest := geometry.NoLimit

	for _, m := range s.Models {
		if !m.Bounds().Hit(ray) {
			continue
		}
		if hit, ok := m.Hit(ray, closest); ok {
			nearest = hit
			closest = hit.Distance
		}
	}

	return nearest, nearest != nil
}

// Occluded reports whether any opaque model other than owner intersects the
// ray. The distance to the light is not considered.
func (s *Scene) Occluded(ray core.Ray, owner *geometry.Model) bool {
	for _, m := range s.Models {
		if m == owner || m.Material.Transparent {
			continue
		}
		if m.Occludes(ray) {
			return true
		}
	}
	return false
}

// GetPrimitiveCount returns the total number of primitives in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, m := range s.Models {
		count += len(m.Primitives)
	}
	return count
}

// Ready reports whether Preprocess has completed
func (s *Scene) Ready() bool {
	return s.ready
}
