package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Cornell box dimensions (standard 555x555x555 units)
const (
	cornellSize     = 555.0
	cornellFront    = -cornellSize // Walls extend behind the camera so the mirror sees a closed room
	cornellHole     = 75.0         // Half-width of the square light opening in the ceiling
	cornellFrameGap = 5.0          // Depth of the frame hanging below the opening
	cornellLip      = 5.0          // Ceiling overhang past the side and back walls
)

// NewCornellScene creates a triangle-only Cornell box with a light opening in
// the ceiling, two blocks and a mirror sphere. Geometry is authored in
// [0, 555]³ and fitted into [-1, 1]³; the camera sits on the open front face.
func NewCornellScene(width, height int) *Scene {
	width, height = rasterOrDefault(width, height)

	s := &Scene{
		Name: "cornell",
		CameraConfig: geometry.CameraConfig{
			Eye:          core.NewVec3(0, 0, -3),
			ViewDistance: float64(width), // Focal length equals the raster width
			Width:        width,
			Height:       height,
			AxisAligned:  true,
		},
		SamplingConfig: DefaultSamplingConfig(),
	}
	fit := geometry.FitTransform(cornellSize)
	s.Fit = &fit

	// Create materials
	beige := material.NewMatte(core.NewVec3(0.85, 0.85, 0.7), 1)
	red := material.NewMatte(core.NewVec3(0.75, 0.15, 0.15), 1)
	green := material.NewMatte(core.NewVec3(0.15, 0.75, 0.15), 1)
	blue := material.NewMatte(core.NewVec3(0.05, 0.6, 1), 1)
	orange := material.NewMatte(core.NewVec3(0.8, 0.7, 0.05), 1)
	lightPanel := material.NewMatte(core.NewVec3(1, 1, 1), 10).AsTransparent()
	lightFrame := material.NewMatte(core.NewVec3(0.2, 0.2, 0.2), 5).AsTransparent()
	mirror := material.NewMirror().WithSpecular(1, 5)

	const l = cornellSize
	a := core.NewVec3(l, 0, cornellFront)
	b := core.NewVec3(0, 0, cornellFront)
	c := core.NewVec3(l, 0, l)
	d := core.NewVec3(0, 0, l)
	e := core.NewVec3(l, l, cornellFront)
	f := core.NewVec3(0, l, cornellFront)
	g := core.NewVec3(l, l, l)
	h := core.NewVec3(0, l, l)

	s.add("floor", beige, tri(c, b, a), tri(c, d, b))
	s.add("left wall", red, tri(a, e, c), tri(c, e, g))
	s.add("right wall", green, tri(f, b, d), tri(h, f, d))
	s.add("back wall", beige, tri(g, d, c), tri(g, h, d))

	// Ceiling with a square opening around its center
	mid := l / 2
	holeA := core.NewVec3(mid+cornellHole, l, mid-cornellHole)
	holeB := core.NewVec3(mid-cornellHole, l, mid-cornellHole)
	holeC := core.NewVec3(mid+cornellHole, l, mid+cornellHole)
	holeD := core.NewVec3(mid-cornellHole, l, mid+cornellHole)
	stripFrontR := core.NewVec3(mid+cornellHole, l, cornellFront)
	stripFrontL := core.NewVec3(mid-cornellHole, l, cornellFront)
	stripBackR := core.NewVec3(mid+cornellHole, l, l+cornellLip)
	stripBackL := core.NewVec3(mid-cornellHole, l, l+cornellLip)
	ceilFrontR := core.NewVec3(l+cornellLip, l, cornellFront)
	ceilFrontL := core.NewVec3(-cornellLip, l, cornellFront)
	ceilBackR := core.NewVec3(l+cornellLip, l, l+cornellLip)
	ceilBackL := core.NewVec3(-cornellLip, l, l+cornellLip)

	s.add("ceiling", beige,
		tri(ceilFrontR, stripFrontR, ceilBackR),
		tri(stripFrontR, stripBackR, ceilBackR),
		tri(stripFrontR, stripFrontL, holeA),
		tri(stripFrontL, holeB, holeA),
		tri(stripFrontL, ceilFrontL, stripBackL),
		tri(ceilFrontL, ceilBackL, stripBackL),
		tri(holeC, holeD, stripBackR),
		tri(holeD, stripBackL, stripBackR),
	)

	s.add("light panel", lightPanel, tri(holeD, holeC, holeA), tri(holeD, holeA, holeB))

	// Frame hanging below the opening
	frameA := core.NewVec3(mid+cornellHole, l-cornellFrameGap, mid-cornellHole)
	frameB := core.NewVec3(mid-cornellHole, l-cornellFrameGap, mid-cornellHole)
	frameC := core.NewVec3(mid+cornellHole, l-cornellFrameGap, mid+cornellHole)
	frameD := core.NewVec3(mid-cornellHole, l-cornellFrameGap, mid+cornellHole)
	s.add("light frame", lightFrame,
		tri(holeA, holeB, frameA),
		tri(holeB, frameB, frameA),
		tri(holeB, holeD, frameB),
		tri(holeD, frameD, frameB),
		tri(holeD, holeC, frameC),
		tri(holeD, frameC, frameD),
		tri(holeA, frameA, frameC),
		tri(holeC, holeA, frameC),
	)

	s.add("short block", blue, block(
		[4]core.Vec3{{X: 290, Z: 114}, {X: 130, Z: 65}, {X: 240, Z: 272}, {X: 82, Z: 225}}, 165)...)
	s.add("tall block", orange, block(
		[4]core.Vec3{{X: 423, Z: 247}, {X: 265, Z: 296}, {X: 472, Z: 406}, {X: 314, Z: 456}}, 330)...)

	s.add("mirror sphere", mirror, geometry.NewSphere(core.NewVec3(200, 165+40, 120), 40))

	// Lights are in fitted space. The ceiling sits at y = -1 and the point
	// light hangs above the opening, so only the opening lets its light in.
	s.Lights = []lights.Light{
		lights.NewAmbient(0.1, core.NewVec3(1, 1, 1)),
		lights.NewPoint(2, core.NewVec3(1, 1, 1), core.NewVec3(0, -1.2, 0)),
	}

	return s
}

// block returns the ten triangles of a box standing on the floor. The base
// corners are ordered front-right, front-left, back-right, back-left.
func block(base [4]core.Vec3, height float64) []geometry.Primitive {
	a, b, c, d := base[0], base[1], base[2], base[3]
	up := core.NewVec3(0, height, 0)
	e, f, g, h := a.Add(up), b.Add(up), c.Add(up), d.Add(up)

	return []geometry.Primitive{
		tri(e, b, a), tri(e, f, b),
		tri(f, d, b), tri(f, h, d),
		tri(h, c, d), tri(h, g, c),
		tri(g, e, c), tri(e, a, c),
		tri(g, f, e), tri(g, h, f),
	}
}
