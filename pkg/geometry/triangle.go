package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3 // The three vertices

	edge1, edge2 core.Vec3 // V1-V0 and V2-V0
	normal       core.Vec3 // Cached unit face normal
}

// NewTriangle creates a new triangle from three vertices.
// The face normal is (v2-v0) × (v1-v0), so the winding decides which side
// the surface faces. A degenerate triangle gets a zero normal and fails Validate.
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	t := &Triangle{
		V0: v0,
		V1: v1,
		V2: v2,
	}
	t.computeNormal()
	return t
}

// computeNormal calculates and caches the edges and face normal
func (t *Triangle) computeNormal() {
	t.edge1 = t.V1.Subtract(t.V0)
	t.edge2 = t.V2.Subtract(t.V0)

	normal := t.edge2.Cross(t.edge1)
	if normal.IsZero() {
		t.normal = core.Vec3{}
		return
	}
	t.normal = normal.Unit()
}

// Intersect tests the ray against the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Intersect(ray core.Ray) (float64, bool) {
	// Calculate determinant
	h := ray.Direction.Cross(t.edge2)
	a := t.edge1.Dot(h)

	// If determinant is near zero, ray lies in plane of triangle
	if a > -core.Epsilon && a < core.Epsilon {
		return 0, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, false
	}

	q := s.Cross(t.edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, false
	}

	distance := f * t.edge2.Dot(q)
	if distance <= core.Epsilon {
		return 0, false
	}
	return distance, true
}

// Barycentric returns the (u, v) coordinates of the ray's hit, if any
func (t *Triangle) Barycentric(ray core.Ray) (u, v float64, ok bool) {
	if _, hit := t.Intersect(ray); !hit {
		return 0, 0, false
	}
	h := ray.Direction.Cross(t.edge2)
	f := 1.0 / t.edge1.Dot(h)
	s := ray.Origin.Subtract(t.V0)
	u = f * s.Dot(h)
	v = f * ray.Direction.Dot(s.Cross(t.edge1))
	return u, v, true
}

// NormalAt returns the precomputed face normal; the point is ignored
func (t *Triangle) NormalAt(core.Vec3) core.Vec3 {
	return t.normal
}

// Normal returns the triangle's unit face normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// Bounds returns the per-axis min/max of the three vertices
func (t *Triangle) Bounds() core.AABB {
	return core.NewAABBFromPoints(t.V0, t.V1, t.V2)
}

// Validate rejects zero-area triangles, whose normal is undefined
func (t *Triangle) Validate() error {
	if t.normal.IsZero() || math.IsNaN(t.normal.X) {
		return fmt.Errorf("%w: %v %v %v", ErrDegenerateTriangle, t.V0, t.V1, t.V2)
	}
	return nil
}

func (t *Triangle) transformed(tr Transform) Primitive {
	return NewTriangle(tr.Apply(t.V0), tr.Apply(t.V1), tr.Apply(t.V2))
}
