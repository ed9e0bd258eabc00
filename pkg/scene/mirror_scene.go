package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewMirrorScene creates two mirror spheres facing each other over a matte
// floor with a small red ball between them. Reflections bounce until the
// recursion bound cuts them off.
func NewMirrorScene(width, height int) *Scene {
	width, height = rasterOrDefault(width, height)

	s := &Scene{
		Name: "mirror",
		CameraConfig: geometry.CameraConfig{
			Eye:          core.NewVec3(0, -60, 600),
			LookAt:       core.NewVec3(0, 50, 0),
			Up:           core.NewVec3(0, 1, 0),
			ViewDistance: 500,
			Width:        width,
			Height:       height,
		},
		SamplingConfig: DefaultSamplingConfig(),
	}

	chrome := material.NewMirror().WithSpecular(0.5, 40)
	s.add("left mirror", chrome, geometry.NewSphere(core.NewVec3(-110, 20, 0), 80))
	s.add("right mirror", chrome, geometry.NewSphere(core.NewVec3(110, 20, 0), 80))

	red := material.NewPhong(core.NewVec3(0.9, 0.1, 0.1), 0.9, 0.3, 30)
	s.add("red ball", red, geometry.NewSphere(core.NewVec3(0, 70, -150), 30))

	floor := material.NewMatte(core.NewVec3(0.8, 0.8, 0.8), 0.8)
	s.add("floor", floor, floorQuad(100, 5000)...)

	s.Lights = []lights.Light{
		lights.NewAmbient(0.1, core.NewVec3(1, 1, 1)),
		lights.NewPoint(2, core.NewVec3(1, 1, 1), core.NewVec3(0, -1000, 500)),
	}

	return s
}
