package renderer

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Tracer computes the radiance arriving along a ray: direct shading from
// every light at the nearest hit plus recursive mirror reflection.
// It only reads the scene and is safe for concurrent use.
type Tracer struct {
	scene    *scene.Scene
	maxDepth int
}

// NewTracer creates a tracer bounded by the scene's MaxDepth
func NewTracer(s *scene.Scene) *Tracer {
	return &Tracer{
		scene:    s,
		maxDepth: s.SamplingConfig.MaxDepth,
	}
}

// MaxDepth returns the reflection recursion bound
func (t *Tracer) MaxDepth() int {
	return t.maxDepth
}

// Trace returns the radiance along the ray. depth is 0 for primary rays and
// grows by one per reflection; once it exceeds MaxDepth the hit is shaded
// without reflecting further.
func (t *Tracer) Trace(ray core.Ray, depth int) core.Vec3 {
	hit, isHit := t.scene.Hit(ray)
	if !isHit {
		return t.scene.Background
	}

	color := lights.ShadeAll(t.scene.Lights, hit, t.scene)

	if depth > t.maxDepth {
		return color
	}
	reflectivity := hit.Model.Material.Reflectivity
	if reflectivity == 0 {
		return color
	}

	// Mirror the incoming direction about the surface normal
	d := ray.Direction
	n := hit.Normal
	reflected := core.NewRay(hit.Point, d.Subtract(n.Multiply(2*d.Dot(n))))

	return color.Add(t.Trace(reflected, depth+1).Multiply(reflectivity))
}
