package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Transform is a uniform scale, then a translation, then a per-axis sign flip.
// Axes components must be +1 or -1 so lengths only change by |Scale|.
type Transform struct {
	Scale  float64
	Offset core.Vec3
	Axes   core.Vec3
}

// IdentityTransform leaves geometry unchanged
func IdentityTransform() Transform {
	return Transform{
		Scale: 1,
		Axes:  core.NewVec3(1, 1, 1),
	}
}

// FitTransform maps a scene authored in [0, extent]³ into [-1, 1]³ camera space,
// flipping X and Y so +Y points down the raster.
func FitTransform(extent float64) Transform {
	return Transform{
		Scale:  2 / extent,
		Offset: core.NewVec3(-1, -1, -1),
		Axes:   core.NewVec3(-1, -1, 1),
	}
}

// Apply transforms a point
func (t Transform) Apply(point core.Vec3) core.Vec3 {
	return point.Multiply(t.Scale).Add(t.Offset).MultiplyVec(t.Axes)
}

// ApplyLength transforms a length such as a sphere radius
func (t Transform) ApplyLength(length float64) float64 {
	return length * math.Abs(t.Scale)
}
