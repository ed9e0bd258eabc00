package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

const (
	sphereGridSpacingX = 150.0
	sphereGridSpacingZ = 200.0
	sphereGridRadius   = 50.0
	sphereFloorY       = 100.0   // +Y points down the raster, so the floor is below the spheres
	sphereFloorExtent  = 10000.0 // Half-width of the floor square
)

// NewSphereGridScene creates a 3×3 grid of glossy spheres resting on a
// reflective floor, lit by ambient, directional and point lights
func NewSphereGridScene(width, height int) *Scene {
	width, height = rasterOrDefault(width, height)

	s := &Scene{
		Name: "spheres",
		CameraConfig: geometry.CameraConfig{
			Eye:          core.NewVec3(0, -100, 500),
			LookAt:       core.NewVec3(0, 0, -50),
			Up:           core.NewVec3(0, 1, 0),
			ViewDistance: 400,
			Width:        width,
			Height:       height,
		},
		SamplingConfig: DefaultSamplingConfig(),
	}

	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			fi, fj := float64(i), float64(j)
			color := core.NewVec3(math.Max(0, fi), math.Max(0, fj), math.Max(0, fi*fj))
			mat := material.NewPhong(color, 0.8, 0.2, 20).WithReflectivity(0.2)
			center := core.NewVec3(sphereGridSpacingX*fi, sphereFloorY-sphereGridRadius, sphereGridSpacingZ*fj)
			s.add("sphere", mat, geometry.NewSphere(center, sphereGridRadius))
		}
	}

	floor := material.NewMatte(core.NewVec3(0.5, 0.5, 0.5), 0.5).WithReflectivity(0.5)
	s.add("floor", floor, floorQuad(sphereFloorY, sphereFloorExtent)...)

	s.Lights = []lights.Light{
		lights.NewAmbient(0.1, core.NewVec3(0.05, 0.05, 0.05)),
		lights.NewDirectional(1, core.NewVec3(1, 1, 1), core.NewVec3(1, -1, 0)),
		lights.NewPoint(3, core.NewVec3(1, 1, 1), core.NewVec3(1000, -5000, 0)),
	}

	return s
}

// floorQuad returns two triangles covering the square |x|, |z| <= extent at
// height y, both facing -Y
func floorQuad(y, extent float64) []geometry.Primitive {
	nearLeft := core.NewVec3(-extent, y, -extent)
	farLeft := core.NewVec3(-extent, y, extent)
	nearRight := core.NewVec3(extent, y, -extent)
	farRight := core.NewVec3(extent, y, extent)

	return []geometry.Primitive{
		tri(nearLeft, farLeft, nearRight),
		tri(farRight, nearRight, farLeft),
	}
}
