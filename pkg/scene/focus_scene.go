package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewFocusScene creates a diagonal row of spheres seen through a thin lens
// focused on the middle one, so the nearer and farther spheres blur
func NewFocusScene(width, height int) *Scene {
	width, height = rasterOrDefault(width, height)

	eye := core.NewVec3(0, -40, 500)
	lookAt := core.NewVec3(0, 60, 0)
	s := &Scene{
		Name: "focus",
		CameraConfig: geometry.CameraConfig{
			Eye:           eye,
			LookAt:        lookAt,
			Up:            core.NewVec3(0, 1, 0),
			ViewDistance:  500,
			Width:         width,
			Height:        height,
			Aperture:      8,
			FocusDistance: eye.Subtract(lookAt).Length(),
		},
		SamplingConfig: DefaultSamplingConfig(),
	}

	colors := []core.Vec3{
		core.NewVec3(0.9, 0.2, 0.2),
		core.NewVec3(0.9, 0.6, 0.1),
		core.NewVec3(0.2, 0.8, 0.3),
		core.NewVec3(0.2, 0.4, 0.9),
		core.NewVec3(0.6, 0.3, 0.8),
	}
	names := []string{"far left ball", "left ball", "center ball", "right ball", "near right ball"}
	for i, c := range colors {
		offset := float64(i - 2)
		center := core.NewVec3(offset*160, 60, -offset*240)
		s.add(names[i], material.NewPhong(c, 0.9, 0.4, 40), geometry.NewSphere(center, 40))
	}

	floor := material.NewMatte(core.NewVec3(0.8, 0.8, 0.8), 0.8)
	s.add("floor", floor, floorQuad(100, 5000)...)

	s.Lights = []lights.Light{
		lights.NewAmbient(0.1, core.NewVec3(1, 1, 1)),
		lights.NewPoint(2, core.NewVec3(1, 1, 1), core.NewVec3(0, -1000, 500)),
	}

	return s
}
