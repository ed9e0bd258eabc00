package material

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidMaterial is returned by Validate for out-of-range parameters
var ErrInvalidMaterial = errors.New("invalid material")

// Material describes how a surface responds to the local lighting model.
// Every Model owns exactly one Material; the zero value is a black, matte,
// non-reflective, opaque surface.
type Material struct {
	DiffuseReflectance  float64   // kd
	DiffuseColor        core.Vec3 // cd, RGB reflectance
	Reflectivity        float64   // 0 = no mirror reflection, 1 = perfect mirror
	SpecularReflectance float64   // ks
	Shininess           float64   // Phong exponent
	Transparent         bool      // Excluded from shadow occlusion tests
}

// NewMatte creates a purely diffuse material
func NewMatte(color core.Vec3, kd float64) Material {
	return Material{
		DiffuseReflectance: kd,
		DiffuseColor:       color,
	}
}

// NewPhong creates a diffuse material with a specular highlight
func NewPhong(color core.Vec3, kd, ks, shininess float64) Material {
	return Material{
		DiffuseReflectance:  kd,
		DiffuseColor:        color,
		SpecularReflectance: ks,
		Shininess:           shininess,
	}
}

// NewMirror creates a perfect mirror with no diffuse or specular term
func NewMirror() Material {
	return Material{Reflectivity: 1}
}

// WithReflectivity returns a copy of the material with the given reflectivity
func (m Material) WithReflectivity(reflectivity float64) Material {
	m.Reflectivity = reflectivity
	return m
}

// WithSpecular returns a copy of the material with a Phong highlight
func (m Material) WithSpecular(ks, shininess float64) Material {
	m.SpecularReflectance = ks
	m.Shininess = shininess
	return m
}

// AsTransparent returns a copy of the material that does not cast shadows
func (m Material) AsTransparent() Material {
	m.Transparent = true
	return m
}

// Validate checks that the material parameters are usable by the shading model
func (m Material) Validate() error {
	switch {
	case m.DiffuseReflectance < 0:
		return fmt.Errorf("%w: negative diffuse reflectance %g", ErrInvalidMaterial, m.DiffuseReflectance)
	case m.SpecularReflectance < 0:
		return fmt.Errorf("%w: negative specular reflectance %g", ErrInvalidMaterial, m.SpecularReflectance)
	case m.Reflectivity < 0:
		return fmt.Errorf("%w: negative reflectivity %g", ErrInvalidMaterial, m.Reflectivity)
	case m.Shininess < 0:
		return fmt.Errorf("%w: negative shininess %g", ErrInvalidMaterial, m.Shininess)
	}
	return nil
}
