package renderer

import (
	"image/color"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Sampler maps pixels to camera rays and averages the traced radiance
type Sampler struct {
	camera *geometry.Camera
	tracer *Tracer
}

// NewSampler creates a sampler for a preprocessed scene
func NewSampler(s *scene.Scene) *Sampler {
	return &Sampler{
		camera: s.Camera,
		tracer: NewTracer(s),
	}
}

// SamplePixel returns the linear radiance of pixel (i, j). A gridSize of 0 or
// 1 traces a single ray at the pixel's offset; larger values trace an N×N
// grid of sub-pixel offsets (k+0.5)/N and average them. With a lens camera
// each grid point also picks the lens point, mapped onto the disk, so
// the result stays deterministic for a given gridSize.
func (s *Sampler) SamplePixel(i, j, gridSize int) core.Vec3 {
	x, y := s.camera.PixelOffset(i, j)

	if gridSize <= 1 {
		return s.tracer.Trace(s.camera.GetRay(x, y), 0)
	}

	n := float64(gridSize)
	var colorAccum core.Vec3
	for k := 0; k < gridSize; k++ {
		dx := (float64(k) + 0.5) / n
		for m := 0; m < gridSize; m++ {
			dy := (float64(m) + 0.5) / n
			var ray core.Ray
			if s.camera.HasLens() {
				lx, ly := core.ConcentricDisk(dx, dy)
				ray = s.camera.GetLensRay(x+dx, y+dy, lx, ly)
			} else {
				ray = s.camera.GetRay(x+dx, y+dy)
			}
			colorAccum = colorAccum.Add(s.tracer.Trace(ray, 0))
		}
	}
	return colorAccum.Multiply(1 / (n * n))
}

// SamplesPerPixel returns the number of primary rays SamplePixel traces
func SamplesPerPixel(gridSize int) int {
	if gridSize <= 1 {
		return 1
	}
	return gridSize * gridSize
}

// ToRGBA converts linear radiance to an opaque 8-bit color: each channel is
// scaled by 255, rounded and clamped to [0, 255]
func ToRGBA(radiance core.Vec3) color.RGBA {
	return color.RGBA{
		R: toByte(radiance.X),
		G: toByte(radiance.Y),
		B: toByte(radiance.Z),
		A: 255,
	}
}

func toByte(channel float64) uint8 {
	v := math.Round(channel * 255)
	if !(v > 0) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
