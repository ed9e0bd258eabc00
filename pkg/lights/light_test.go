package lights

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// mockOccluder implements Occluder for testing
type mockOccluder struct {
	occluded bool
	calls    int
	lastRay  core.Ray
	owner    *geometry.Model
}

func (m *mockOccluder) Occluded(ray core.Ray, owner *geometry.Model) bool {
	m.calls++
	m.lastRay = ray
	m.owner = owner
	return m.occluded
}

// floorHit returns a hit on the plane y=0 with normal +Y, seen from above
func floorHit(t *testing.T, mat material.Material) *geometry.HitRecord {
	t.Helper()
	floor := geometry.NewTriangle(
		core.NewVec3(-10, 0, -10),
		core.NewVec3(30, 0, -10),
		core.NewVec3(-10, 0, 30),
	)
	model, err := geometry.NewModel(mat, floor)
	if err != nil {
		t.Fatalf("Failed to build model: %v", err)
	}
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))
	hit, ok := model.Hit(ray, geometry.NoLimit)
	if !ok {
		t.Fatal("Expected test ray to hit the floor")
	}
	if hit.Normal.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-12 {
		t.Fatalf("Expected floor normal +Y, got %v", hit.Normal)
	}
	return hit
}

func assertVec(t *testing.T, expected, got core.Vec3) {
	t.Helper()
	if got.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestAmbient_Shade(t *testing.T) {
	white := core.NewVec3(1, 1, 1)
	hit := floorHit(t, material.NewMatte(white, 1))

	got := NewAmbient(1, white).Shade(hit, nil)
	if got != white {
		t.Errorf("Expected exactly (1, 1, 1), got %v", got)
	}
}

func TestAmbient_ShadeIsColorProduct(t *testing.T) {
	hit := floorHit(t, material.NewMatte(core.NewVec3(0.5, 1, 0.25), 0.8))
	got := NewAmbient(0.5, core.NewVec3(1, 0.5, 1)).Shade(hit, nil)

	assertVec(t, core.NewVec3(0.2, 0.2, 0.1), got)
}

func TestDirectional_Shade(t *testing.T) {
	white := core.NewVec3(1, 1, 1)
	hit := floorHit(t, material.NewMatte(white, 1))

	tests := []struct {
		name      string
		direction core.Vec3
		expected  float64
	}{
		{"overhead", core.NewVec3(0, 1, 0), 1 / math.Pi},
		{"45 degrees", core.NewVec3(1, 1, 0), math.Sqrt2 / 2 / math.Pi},
		{"below horizon", core.NewVec3(0, -1, 0), 0},
		{"grazing", core.NewVec3(1, 0, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occluder := &mockOccluder{occluded: true}
			got := NewDirectional(1, white, tt.direction).Shade(hit, occluder)

			assertVec(t, core.NewVec3(tt.expected, tt.expected, tt.expected), got)
			if occluder.calls != 0 {
				t.Error("Directional lights must not cast shadow rays")
			}
		})
	}
}

func TestPoint_ShadeDiffuseOnly(t *testing.T) {
	white := core.NewVec3(1, 1, 1)
	hit := floorHit(t, material.NewMatte(white, 1))
	occluder := &mockOccluder{}

	got := NewPoint(2, white, core.NewVec3(0, 10, 0)).Shade(hit, occluder)

	expected := 2 / math.Pi
	assertVec(t, core.NewVec3(expected, expected, expected), got)
	if occluder.calls != 1 {
		t.Fatalf("Expected one shadow query, got %d", occluder.calls)
	}
	if occluder.owner != hit.Model {
		t.Error("Expected shadow query to exclude the hit model")
	}
	if occluder.lastRay.Direction.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-12 {
		t.Errorf("Expected shadow ray toward the light, got %v", occluder.lastRay.Direction)
	}
	if occluder.lastRay.Origin.Y <= hit.Point.Y {
		t.Error("Expected shadow ray origin offset along the light direction")
	}
}

func TestPoint_ShadeSpecular(t *testing.T) {
	// Light and viewer both straight above: r == w, so specularAmount is 1
	mat := material.Material{SpecularReflectance: 0.5, Shininess: 20}
	hit := floorHit(t, mat)

	got := NewPoint(1, core.NewVec3(1, 1, 1), core.NewVec3(0, 10, 0)).Shade(hit, &mockOccluder{})
	assertVec(t, core.NewVec3(0.5, 0.5, 0.5), got)
}

func TestPoint_ShadeNegativeSpecularClamped(t *testing.T) {
	// Viewer and light on the same grazing side: r·w < 0 with a fractional exponent
	mat := material.Material{SpecularReflectance: 1, Shininess: 2.5}
	hit := floorHit(t, mat)
	eye := core.NewVec3(-10, 0.1, 0)
	hit.Ray = core.NewRay(eye, hit.Point.Subtract(eye))

	got := NewPoint(1, core.NewVec3(1, 1, 1), core.NewVec3(-10, 0.1, 1)).Shade(hit, &mockOccluder{})
	if got != (core.Vec3{}) {
		t.Errorf("Expected clamped specular term to contribute nothing, got %v", got)
	}
}

func TestPoint_ShadeInShadow(t *testing.T) {
	white := core.NewVec3(1, 1, 1)
	hit := floorHit(t, material.NewPhong(white, 1, 1, 10))

	got := NewPoint(5, white, core.NewVec3(0, 10, 0)).Shade(hit, &mockOccluder{occluded: true})
	if got != (core.Vec3{}) {
		t.Errorf("Expected zero contribution in shadow, got %v", got)
	}
}

func TestPoint_NoShadowTestWhenFacingAway(t *testing.T) {
	white := core.NewVec3(1, 1, 1)
	hit := floorHit(t, material.NewMatte(white, 1))
	// Viewer below the floor: n·w < 0
	hit.Ray = core.NewRay(core.NewVec3(0, -5, 0), core.NewVec3(0, 1, 0))
	occluder := &mockOccluder{occluded: true}

	NewPoint(1, white, core.NewVec3(0, 10, 0)).Shade(hit, occluder)
	if occluder.calls != 0 {
		t.Errorf("Expected no shadow query for a back-facing hit, got %d", occluder.calls)
	}
}

func TestShadeAll_SumsFromBlack(t *testing.T) {
	white := core.NewVec3(1, 1, 1)
	hit := floorHit(t, material.NewMatte(white, 1))

	lights := []Light{
		NewAmbient(0.25, white),
		NewDirectional(1, white, core.NewVec3(0, 1, 0)),
	}
	got := ShadeAll(lights, hit, &mockOccluder{})

	expected := 0.25 + 1/math.Pi
	assertVec(t, core.NewVec3(expected, expected, expected), got)

	if ShadeAll(nil, hit, nil) != (core.Vec3{}) {
		t.Error("Expected no lights to shade black")
	}
}

func TestLight_Validate(t *testing.T) {
	white := core.NewVec3(1, 1, 1)

	tests := []struct {
		name    string
		light   Light
		wantErr bool
	}{
		{"ambient", NewAmbient(0.1, white), false},
		{"directional", NewDirectional(1, white, core.NewVec3(1, -1, 0)), false},
		{"point", NewPoint(3, white, core.NewVec3(0, 5, 0)), false},
		{"zero direction", NewDirectional(1, white, core.Vec3{}), true},
		{"negative radiance", NewPoint(-1, white, core.Vec3{}), true},
		{"negative color", NewAmbient(1, core.NewVec3(-1, 0, 0)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.light.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidLight) {
				t.Errorf("Expected ErrInvalidLight, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}
