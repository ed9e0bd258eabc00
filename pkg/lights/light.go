package lights

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// ErrInvalidLight is returned by Validate for unusable light parameters
var ErrInvalidLight = errors.New("invalid light")

// LightType identifies a light implementation
type LightType string

// Light types
const (
	LightTypeAmbient     LightType = "ambient"
	LightTypeDirectional LightType = "directional"
	LightTypePoint       LightType = "point"
)

// Light computes a radiance contribution at a surface hit.
// The set of implementations is closed: *Ambient, *Directional and *Point.
type Light interface {
	Type() LightType

	// Shade returns the RGB radiance this light adds at the hit point.
	// The occluder answers shadow queries; lights that cast no shadows ignore it.
	Shade(hit *geometry.HitRecord, occluder Occluder) core.Vec3

	// Validate reports parameters that would make shading undefined
	Validate() error

	light()
}

// Occluder answers shadow-ray queries against the scene
type Occluder interface {
	// Occluded reports whether an opaque model other than owner intersects the ray
	Occluded(ray core.Ray, owner *geometry.Model) bool
}

// Emission holds the quantities every light type shares
type Emission struct {
	Radiance float64   // ls
	Color    core.Vec3 // cl
}

// radiance returns cl * ls
func (e Emission) radiance() core.Vec3 {
	return e.Color.Multiply(e.Radiance)
}

func (e Emission) validate(kind LightType) error {
	if e.Radiance < 0 || math.IsNaN(e.Radiance) {
		return fmt.Errorf("%w: %s light radiance %g", ErrInvalidLight, kind, e.Radiance)
	}
	if e.Color.X < 0 || e.Color.Y < 0 || e.Color.Z < 0 {
		return fmt.Errorf("%w: %s light color %v", ErrInvalidLight, kind, e.Color)
	}
	return nil
}

// lambert returns the diffuse term cd * kd * (1/π) * max(0, n·l) * cl * ls
func lambert(hit *geometry.HitRecord, toLight core.Vec3, e Emission) core.Vec3 {
	m := hit.Model.Material
	cosine := math.Max(0, hit.Normal.Dot(toLight))
	return m.DiffuseColor.
		Multiply(m.DiffuseReflectance / math.Pi * cosine).
		MultiplyVec(e.radiance())
}

// ShadeAll sums every light's contribution at the hit, starting from black
func ShadeAll(lights []Light, hit *geometry.HitRecord, occluder Occluder) core.Vec3 {
	var total core.Vec3
	for _, l := range lights {
		total = total.Add(l.Shade(hit, occluder))
	}
	return total
}
