package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

var testCamera = geometry.CameraConfig{
	Eye:          core.NewVec3(0, 0, -10),
	ViewDistance: 10,
	Width:        8,
	Height:       8,
	AxisAligned:  true,
}

func newTestScene(models ...*geometry.Model) *Scene {
	return &Scene{
		Models:         models,
		Lights:         []lights.Light{lights.NewAmbient(1, core.NewVec3(1, 1, 1))},
		CameraConfig:   testCamera,
		SamplingConfig: DefaultSamplingConfig(),
	}
}

func sphereModel(center core.Vec3, radius float64, mat material.Material) *geometry.Model {
	return geometry.MustModel(mat, geometry.NewSphere(center, radius))
}

func TestScene_PreprocessErrors(t *testing.T) {
	matte := material.NewMatte(core.NewVec3(1, 1, 1), 1)

	tests := []struct {
		name    string
		scene   *Scene
		wantErr error
	}{
		{
			name:    "no models",
			scene:   newTestScene(),
			wantErr: ErrEmptyScene,
		},
		{
			name: "degenerate triangle",
			scene: newTestScene(&geometry.Model{
				Material: matte,
				Primitives: []geometry.Primitive{geometry.NewTriangle(
					core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), core.NewVec3(2, 2, 2))},
			}),
			wantErr: geometry.ErrDegenerateTriangle,
		},
		{
			name:    "zero radius",
			scene:   newTestScene(&geometry.Model{Material: matte, Primitives: []geometry.Primitive{geometry.NewSphere(core.Vec3{}, 0)}}),
			wantErr: geometry.ErrInvalidRadius,
		},
		{
			name:    "empty model",
			scene:   newTestScene(&geometry.Model{Material: matte}),
			wantErr: geometry.ErrEmptyModel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scene.Preprocess()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if tt.scene.Ready() {
				t.Error("Scene must not be ready after a failed Preprocess")
			}
		})
	}
}

func TestScene_PreprocessRejectsBadLightAndCamera(t *testing.T) {
	model := sphereModel(core.Vec3{}, 1, material.NewMatte(core.NewVec3(1, 1, 1), 1))

	s := newTestScene(model)
	s.Lights = append(s.Lights, lights.NewDirectional(1, core.NewVec3(1, 1, 1), core.Vec3{}))
	if err := s.Preprocess(); !errors.Is(err, lights.ErrInvalidLight) {
		t.Errorf("Expected ErrInvalidLight, got %v", err)
	}

	s = newTestScene(model)
	s.CameraConfig.Width = 0
	if err := s.Preprocess(); !errors.Is(err, geometry.ErrInvalidCamera) {
		t.Errorf("Expected ErrInvalidCamera, got %v", err)
	}
}

func TestScene_FitAppliedOnce(t *testing.T) {
	model := sphereModel(core.NewVec3(277.5, 277.5, 277.5), 55.5, material.NewMatte(core.NewVec3(1, 1, 1), 1))
	s := newTestScene(model)
	fit := geometry.FitTransform(555)
	s.Fit = &fit

	for i := 0; i < 2; i++ {
		if err := s.Preprocess(); err != nil {
			t.Fatalf("Preprocess #%d failed: %v", i+1, err)
		}
	}

	sphere := model.Primitives[0].(*geometry.Sphere)
	if sphere.Center.Length() > 1e-12 || math.Abs(sphere.Radius-0.2) > 1e-12 {
		t.Errorf("Expected fitted sphere at origin with radius 0.2, got %v r=%v", sphere.Center, sphere.Radius)
	}
}

func TestScene_FitSurvivesFailedPreprocess(t *testing.T) {
	model := sphereModel(core.NewVec3(277.5, 277.5, 277.5), 55.5, material.NewMatte(core.NewVec3(1, 1, 1), 1))
	s := newTestScene(model)
	fit := geometry.FitTransform(555)
	s.Fit = &fit
	s.CameraConfig.Width = 0

	if err := s.Preprocess(); !errors.Is(err, geometry.ErrInvalidCamera) {
		t.Fatalf("Expected ErrInvalidCamera, got %v", err)
	}

	s.CameraConfig.Width = 8
	if err := s.Preprocess(); err != nil {
		t.Fatalf("Retry failed: %v", err)
	}

	sphere := model.Primitives[0].(*geometry.Sphere)
	if sphere.Center.Length() > 1e-12 || math.Abs(sphere.Radius-0.2) > 1e-12 {
		t.Errorf("Expected the sphere fitted exactly once, got %v r=%v", sphere.Center, sphere.Radius)
	}
}

func TestScene_FailedFitLeavesEveryModel(t *testing.T) {
	matte := material.NewMatte(core.NewVec3(1, 1, 1), 1)
	big := sphereModel(core.Vec3{}, 1, matte)
	tiny := sphereModel(core.Vec3{}, 1e-300, matte)
	s := newTestScene(big, tiny)
	s.Fit = &geometry.Transform{Scale: 1e-100, Axes: core.NewVec3(1, 1, 1)}

	// The tiny radius underflows to zero once scaled
	if err := s.Preprocess(); !errors.Is(err, geometry.ErrInvalidRadius) {
		t.Fatalf("Expected ErrInvalidRadius, got %v", err)
	}
	if r := big.Primitives[0].(*geometry.Sphere).Radius; r != 1 {
		t.Errorf("Expected the first model untouched, got radius %v", r)
	}
}

func TestScene_PreprocessFillsSamplingDefaults(t *testing.T) {
	tests := []struct {
		name     string
		config   SamplingConfig
		expected SamplingConfig
	}{
		{"zero value", SamplingConfig{}, DefaultSamplingConfig()},
		{"single sample", SamplingConfig{GridSize: 1}, SamplingConfig{GridSize: 1, MaxDepth: 3}},
		{"explicit", SamplingConfig{GridSize: 3, MaxDepth: 1}, SamplingConfig{GridSize: 3, MaxDepth: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScene(sphereModel(core.Vec3{}, 1, material.NewMatte(core.NewVec3(1, 1, 1), 1)))
			s.SamplingConfig = tt.config
			if err := s.Preprocess(); err != nil {
				t.Fatalf("Preprocess failed: %v", err)
			}
			if s.SamplingConfig != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, s.SamplingConfig)
			}
		})
	}
}

func TestScene_HitNearestAcrossModels(t *testing.T) {
	matte := material.NewMatte(core.NewVec3(1, 1, 1), 1)
	far := sphereModel(core.NewVec3(0, 0, 10), 1, matte).Named("far")
	near := sphereModel(core.NewVec3(0, 0, 5), 1, matte).Named("near")
	aside := sphereModel(core.NewVec3(50, 0, 5), 1, matte).Named("aside")
	s := newTestScene(far, aside, near)

	hit, ok := s.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)))
	if !ok {
		t.Fatal("Expected a hit")
	}
	if hit.Model != near {
		t.Errorf("Expected the near model, got %q", hit.Model.Name)
	}
	if math.Abs(hit.Distance-4) > 1e-9 {
		t.Errorf("Expected distance 4, got %v", hit.Distance)
	}

	if _, ok := s.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))); ok {
		t.Error("Expected a miss for a ray pointing away from every model")
	}
}

func TestScene_HitTieKeepsFirstModel(t *testing.T) {
	matte := material.NewMatte(core.NewVec3(1, 1, 1), 1)
	first := sphereModel(core.NewVec3(0, 0, 5), 1, matte).Named("first")
	second := sphereModel(core.NewVec3(0, 0, 5), 1, matte).Named("second")
	s := newTestScene(first, second)

	hit, ok := s.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)))
	if !ok || hit.Model != first {
		t.Errorf("Expected the first of two coincident models to win")
	}
}

func TestScene_HitMatchesBruteForce(t *testing.T) {
	s, err := New("cornell", 32, 32)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for j := 0; j < 32; j += 3 {
		for i := 0; i < 32; i += 3 {
			x, y := s.Camera.PixelOffset(i, j)
			ray := s.Camera.GetRay(x, y)

			closest := geometry.NoLimit
			for _, m := range s.Models {
				for _, p := range m.Primitives {
					if d, ok := p.Intersect(ray); ok && d < closest {
						closest = d
					}
				}
			}

			hit, ok := s.Hit(ray)
			if ok != !math.IsInf(closest, 1) {
				t.Fatalf("Pixel (%d,%d): broad phase changed hit/miss", i, j)
			}
			if ok && hit.Distance != closest {
				t.Errorf("Pixel (%d,%d): expected distance %v, got %v", i, j, closest, hit.Distance)
			}
		}
	}
}

func TestScene_OccludedSkipsOwnerAndTransparent(t *testing.T) {
	opaque := material.NewMatte(core.NewVec3(1, 1, 1), 1)
	floor := geometry.MustModel(opaque, geometry.NewTriangle(
		core.NewVec3(-10, 0, -10), core.NewVec3(30, 0, -10), core.NewVec3(-10, 0, 30)))
	blocker := sphereModel(core.NewVec3(0, 5, 0), 1, opaque)
	s := newTestScene(floor, blocker)

	up := core.NewRay(core.NewVec3(0, core.Epsilon, 0), core.NewVec3(0, 1, 0))

	if !s.Occluded(up, floor) {
		t.Error("Expected the opaque sphere to occlude")
	}
	if s.Occluded(up, blocker) {
		t.Error("The owning model must be ignored")
	}

	blocker.Material = blocker.Material.AsTransparent()
	if s.Occluded(up, floor) {
		t.Error("Transparent models must not occlude")
	}
}

func TestScene_OccludedBeyondLight(t *testing.T) {
	opaque := material.NewMatte(core.NewVec3(1, 1, 1), 1)
	blocker := sphereModel(core.NewVec3(0, 100, 0), 1, opaque)
	s := newTestScene(blocker)

	// No distance limit: anything along the ray counts, even past the light
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))
	if !s.Occluded(ray, nil) {
		t.Error("Expected occlusion from a model behind the light position")
	}
}

func TestScene_GetPrimitiveCount(t *testing.T) {
	s, err := New("cornell", 16, 16)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	// 4 walls x2, ceiling 8, light 2, frame 8, two blocks x10, one sphere
	if got := s.GetPrimitiveCount(); got != 47 {
		t.Errorf("Expected 47 primitives, got %d", got)
	}
}

func TestCornellScene_FittedIntoCameraSpace(t *testing.T) {
	s, err := New("cornell", 16, 16)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for _, m := range s.Models {
		b := m.Bounds()
		if b.Min.X < -1.05 || b.Max.X > 1.05 || b.Min.Y < -1.05 || b.Max.Y > 1.05 || b.Min.Z < -3.05 || b.Max.Z > 1.05 {
			t.Errorf("Model %q bounds %v escape the fitted box", m.Name, b)
		}
	}
}

func TestFocusScene_FocusesOnCenterBall(t *testing.T) {
	s, err := New("focus", 40, 30)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !s.Camera.HasLens() {
		t.Fatal("Expected the focus scene to use a lens camera")
	}

	ray := s.Camera.GetLensRay(0, 0, 0.6, -0.8)
	config := s.Camera.Config()
	focal := ray.At(config.FocusDistance / ray.Direction.Dot(config.LookAt.Subtract(config.Eye).Unit()))
	if d := focal.Subtract(config.LookAt).Length(); d > 1e-6 {
		t.Errorf("Expected the center ray to focus on %v, missed by %v", config.LookAt, d)
	}
}
