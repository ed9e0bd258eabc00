package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// Intersect solves a·t² + b·t + c = 0 for the ray and returns the smaller root.
// A ray starting inside the sphere has a negative smaller root and misses.
func (s *Sphere) Intersect(ray core.Ray) (float64, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, false
	}

	t := (-b - math.Sqrt(discriminant)) / (2 * a)
	if t <= core.Epsilon {
		return 0, false
	}
	return t, true
}

// NormalAt returns the outward normal (point - center) / radius
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Multiply(1.0 / s.Radius)
}

// Bounds returns center ± radius along each axis
func (s *Sphere) Bounds() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}

// Validate rejects non-positive and non-finite radii
func (s *Sphere) Validate() error {
	if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
		return fmt.Errorf("%w: got %g", ErrInvalidRadius, s.Radius)
	}
	return nil
}

func (s *Sphere) transformed(t Transform) Primitive {
	return NewSphere(t.Apply(s.Center), t.ApplyLength(s.Radius))
}
