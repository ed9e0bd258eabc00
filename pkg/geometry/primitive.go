package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

var (
	// ErrDegenerateTriangle is returned for triangles with zero area
	ErrDegenerateTriangle = errors.New("degenerate triangle")
	// ErrInvalidRadius is returned for spheres without a positive radius
	ErrInvalidRadius = errors.New("sphere radius must be positive")
	// ErrEmptyModel is returned when a model is built without primitives
	ErrEmptyModel = errors.New("model has no primitives")
)

// Primitive is a geometric shape a ray can intersect. The set of
// implementations is closed: *Sphere and *Triangle.
type Primitive interface {
	// Intersect returns the distance along the ray to the nearest hit in front
	// of the origin. Distances at or below core.Epsilon are reported as misses.
	Intersect(ray core.Ray) (float64, bool)

	// NormalAt returns the unit surface normal at a point on the primitive
	NormalAt(point core.Vec3) core.Vec3

	// Bounds returns the primitive's axis-aligned extent
	Bounds() core.AABB

	// Validate reports geometry that would make shading undefined
	Validate() error

	transformed(t Transform) Primitive
}

// Describe returns a short human-readable name for a primitive
func Describe(p Primitive) string {
	switch p.(type) {
	case *Sphere:
		return "sphere"
	case *Triangle:
		return "triangle"
	default:
		panic(fmt.Sprintf("geometry: unknown primitive type %T", p))
	}
}
