package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Config holds the command line options
type Config struct {
	SceneType  string
	Width      int
	Height     int
	GridSize   int
	NumWorkers int
	TileSize   int
	OutputDir  string
	Help       bool
}

func main() {
	fs, config := newFlagSet()
	fs.Parse(os.Args[1:])

	// Show help if requested
	if config.Help {
		fmt.Println("Whitted Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		fs.SetOutput(os.Stdout)
		fs.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, info := range scene.ListScenes() {
			fmt.Printf("  %-8s - %s\n", info.ID, info.Description)
		}
		fmt.Println()
		fmt.Println("Output will be saved to <output>/<scene>/render_<timestamp>.png")
		return
	}

	if _, err := run(context.Background(), *config, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newFlagSet defines the command line flags and the config they fill in
func newFlagSet() (*flag.FlagSet, *Config) {
	fs := flag.NewFlagSet("raytracer", flag.ExitOnError)
	config := &Config{}

	fs.StringVar(&config.SceneType, "scene", "cornell", "Scene type: "+strings.Join(scene.Names(), ", "))
	fs.IntVar(&config.Width, "width", scene.DefaultWidth, "Image width in pixels")
	fs.IntVar(&config.Height, "height", scene.DefaultHeight, "Image height in pixels")
	fs.IntVar(&config.GridSize, "aa", scene.DefaultSamplingConfig().GridSize,
		"Anti-aliasing grid size N (N×N samples per pixel, 0 or 1 = single sample)")
	fs.IntVar(&config.NumWorkers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	fs.IntVar(&config.TileSize, "tile", renderer.DefaultProgressiveConfig().TileSize, "Tile size in pixels")
	fs.StringVar(&config.OutputDir, "output", "output", "Output directory")
	fs.BoolVar(&config.Help, "help", false, "Show help information")

	return fs, config
}

// createScene builds and preprocesses the scene selected by config
func createScene(config Config) (*scene.Scene, error) {
	s, err := scene.New(config.SceneType, config.Width, config.Height)
	if err != nil {
		return nil, err
	}
	if config.GridSize < 0 {
		return nil, fmt.Errorf("anti-aliasing grid size must not be negative, got %d", config.GridSize)
	}
	s.SamplingConfig.GridSize = config.GridSize
	return s, nil
}

// run renders the configured scene to a timestamped PNG and returns its path
func run(ctx context.Context, config Config, logger core.Logger) (string, error) {
	logger.Printf("Starting Whitted Raytracer...\n")

	s, err := createScene(config)
	if err != nil {
		return "", err
	}
	logger.Printf("Using %s scene (%d models, %d primitives, %d lights)\n",
		s.Name, len(s.Models), s.GetPrimitiveCount(), len(s.Lights))

	progressiveConfig := renderer.DefaultProgressiveConfig()
	progressiveConfig.TileSize = config.TileSize
	progressiveConfig.NumWorkers = config.NumWorkers

	raytracer, err := renderer.NewProgressiveRaytracer(s, progressiveConfig, logger)
	if err != nil {
		return "", err
	}

	// Create timestamped filename in a per-scene directory
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(config.OutputDir, s.Name, fmt.Sprintf("render_%s.png", timestamp))

	width, height := raytracer.Size()
	stats, err := raytracer.Render(ctx, renderer.NewPNGSink(width, height, filename))
	if err != nil {
		return "", err
	}

	logger.Printf("Traced %d primary rays (%d per pixel), average luminance %.4f\n",
		stats.TotalSamples, stats.SamplesPerPixel, stats.AverageLuminance)
	logger.Printf("Render saved as %s\n", filename)
	return filename, nil
}
