package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Ray       core.Ray  // Ray that produced the hit
	Point     core.Vec3 // World-space point of intersection
	Normal    core.Vec3 // Surface normal at the point, as the primitive defines it
	Distance  float64   // Distance along the ray, always > core.Epsilon
	Primitive Primitive // Primitive that was hit
	Model     *Model    // Model owning the primitive
}

// NewHitRecord builds the record for a hit at the given distance
func NewHitRecord(ray core.Ray, distance float64, primitive Primitive, model *Model) *HitRecord {
	point := ray.At(distance)
	return &HitRecord{
		Ray:       ray,
		Point:     point,
		Normal:    primitive.NormalAt(point),
		Distance:  distance,
		Primitive: primitive,
		Model:     model,
	}
}
