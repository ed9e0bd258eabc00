package main

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

type testLogger struct {
	lines []string
}

func (l *testLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		gridSize    int
		expectError bool
	}{
		{"cornell scene", "cornell", 5, false},
		{"spheres scene", "spheres", 1, false},
		{"mirror scene", "mirror", 0, false},
		{"unknown scene", "nonexistent", 5, true},
		{"empty scene name", "", 5, true},
		{"negative grid", "cornell", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(Config{SceneType: tt.sceneType, Width: 40, Height: 30, GridSize: tt.gridSize})

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid input, got %v", s.Name)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.CameraConfig.Width != 40 || s.CameraConfig.Height != 30 {
				t.Errorf("Expected 40x30 raster, got %dx%d", s.CameraConfig.Width, s.CameraConfig.Height)
			}
			if s.SamplingConfig.GridSize != tt.gridSize {
				t.Errorf("Expected grid size %d, got %d", tt.gridSize, s.SamplingConfig.GridSize)
			}
		})
	}
}

func TestCreateScene_UnknownSceneError(t *testing.T) {
	_, err := createScene(Config{SceneType: "teapot", Width: 10, Height: 10})
	if !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestNewFlagSet(t *testing.T) {
	fs, config := newFlagSet()
	if err := fs.Parse([]string{"-scene", "mirror", "-width", "64", "-aa", "3", "-workers", "2", "-tile", "16"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if config.SceneType != "mirror" || config.Width != 64 || config.GridSize != 3 ||
		config.NumWorkers != 2 || config.TileSize != 16 {
		t.Errorf("Unexpected config %+v", config)
	}
	if config.Height != scene.DefaultHeight || config.OutputDir != "output" || config.Help {
		t.Errorf("Expected defaults for unset flags, got %+v", config)
	}
}

func TestRun_WritesPNG(t *testing.T) {
	config := Config{
		SceneType: "spheres",
		Width:     20,
		Height:    10,
		GridSize:  1,
		TileSize:  8,
		OutputDir: t.TempDir(),
	}
	logger := &testLogger{}

	filename, err := run(context.Background(), config, logger)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if dir := filepath.Dir(filename); dir != filepath.Join(config.OutputDir, "spheres") {
		t.Errorf("Expected output under the scene directory, got %s", filename)
	}
	if !strings.HasPrefix(filepath.Base(filename), "render_") {
		t.Errorf("Unexpected output file name %s", filename)
	}

	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("Expected 20x10 image, got %v", b)
	}

	if len(logger.lines) == 0 || !strings.Contains(logger.lines[len(logger.lines)-1], "Render saved as") {
		t.Errorf("Expected final log line to report the output path, got %v", logger.lines)
	}
}
