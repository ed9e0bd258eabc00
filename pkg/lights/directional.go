package lights

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Directional is a light infinitely far away along a constant direction.
// It casts no shadows.
type Directional struct {
	Emission
	Direction core.Vec3 // Points from surfaces toward the light

	toLight core.Vec3 // Unit Direction, zero if Direction is zero
}

// NewDirectional creates a directional light; direction points toward the light
func NewDirectional(radiance float64, color, direction core.Vec3) *Directional {
	d := &Directional{
		Emission:  Emission{Radiance: radiance, Color: color},
		Direction: direction,
	}
	if !direction.IsZero() {
		d.toLight = direction.Unit()
	}
	return d
}

// Type returns LightTypeDirectional
func (d *Directional) Type() LightType { return LightTypeDirectional }

// Shade returns the Lambertian term for the fixed light direction
func (d *Directional) Shade(hit *geometry.HitRecord, _ Occluder) core.Vec3 {
	return lambert(hit, d.toLight, d.Emission)
}

// Validate rejects negative emission and a zero direction
func (d *Directional) Validate() error {
	if d.toLight.IsZero() {
		return fmt.Errorf("%w: directional light needs a non-zero direction", ErrInvalidLight)
	}
	return d.validate(LightTypeDirectional)
}

func (d *Directional) light() {}
