package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Ambient adds a constant term independent of position, normal and view
type Ambient struct {
	Emission
}

// NewAmbient creates an ambient light
func NewAmbient(radiance float64, color core.Vec3) *Ambient {
	return &Ambient{Emission{Radiance: radiance, Color: color}}
}

// Type returns LightTypeAmbient
func (a *Ambient) Type() LightType { return LightTypeAmbient }

// Shade returns cd * kd * cl * ls
func (a *Ambient) Shade(hit *geometry.HitRecord, _ Occluder) core.Vec3 {
	m := hit.Model.Material
	return m.DiffuseColor.Multiply(m.DiffuseReflectance).MultiplyVec(a.radiance())
}

// Validate rejects negative radiance or color
func (a *Ambient) Validate() error {
	return a.validate(LightTypeAmbient)
}

func (a *Ambient) light() {}
