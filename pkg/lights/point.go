package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Point is a positional light with hard shadows and a Phong highlight
type Point struct {
	Emission
	Position core.Vec3
}

// NewPoint creates a point light
func NewPoint(radiance float64, color, position core.Vec3) *Point {
	return &Point{
		Emission: Emission{Radiance: radiance, Color: color},
		Position: position,
	}
}

// Type returns LightTypePoint
func (p *Point) Type() LightType { return LightTypePoint }

// Shade returns diffuse + specular, or black when the point is in shadow.
// The shadow test only runs for surfaces facing the viewer.
func (p *Point) Shade(hit *geometry.HitRecord, occluder Occluder) core.Vec3 {
	m := hit.Model.Material
	n := hit.Normal
	w := hit.Ray.Origin.Subtract(hit.Point).Unit()
	l := p.Position.Subtract(hit.Point).Unit()

	if n.Dot(w) > 0 && occluder != nil {
		shadowRay := core.NewRay(hit.Point.Add(l.Multiply(core.Epsilon)), l)
		if occluder.Occluded(shadowRay, hit.Model) {
			return core.Vec3{}
		}
	}

	diffuse := lambert(hit, l, p.Emission)

	// Phong: mirror l about n, compare with the view direction
	cosine := math.Max(0, n.Dot(l))
	r := n.Multiply(2 * cosine).Subtract(l)
	specularAmount := math.Max(0, r.Dot(w))
	specular := p.Color.Multiply(
		m.SpecularReflectance * math.Pow(specularAmount, m.Shininess) * cosine * p.Radiance)

	return diffuse.Add(specular)
}

// Validate rejects negative radiance or color
func (p *Point) Validate() error {
	return p.validate(LightTypePoint)
}

func (p *Point) light() {}
