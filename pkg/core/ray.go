package core

// Epsilon rejects near-parallel triangle hits and near-zero hit distances.
// It also serves as the self-intersection guard for shadow and reflection rays.
const Epsilon = 1e-6

// Ray represents a ray with an origin and direction
type Ray struct {
	Origin    Vec3
	Direction Vec3

	// InvDirection is the component-wise reciprocal of Direction, used by the
	// AABB slab test. Zero direction components become ±Inf.
	InvDirection Vec3
}

// NewRay creates a new ray and caches its reciprocal direction
func NewRay(origin, direction Vec3) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction,
		InvDirection: Vec3{
			X: 1.0 / direction.X,
			Y: 1.0 / direction.Y,
			Z: 1.0 / direction.Z,
		},
	}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
