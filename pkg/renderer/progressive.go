package renderer

import (
	"context"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

// Printf implements core.Logger
func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// LogLogger implements core.Logger on top of a standard library logger
type LogLogger struct {
	logger *log.Logger
}

// NewLogLogger wraps a *log.Logger
func NewLogLogger(logger *log.Logger) core.Logger {
	return &LogLogger{logger: logger}
}

// Printf implements core.Logger
func (ll *LogLogger) Printf(format string, args ...interface{}) {
	ll.logger.Printf(format, args...)
}

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	TileSize   int   // Size of each tile in pixels
	GridSizes  []int // Anti-aliasing grid per pass; 1 is a single sample per pixel
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
}

// DefaultProgressiveConfig returns a single-sample preview followed by a 5×5 pass
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:   32,
		GridSizes:  []int{1, 5},
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// ProgressiveRaytracer renders a scene as a sequence of complete frames,
// each at a finer anti-aliasing grid than the last
type ProgressiveRaytracer struct {
	scene         *scene.Scene
	width, height int
	config        ProgressiveConfig
	tiles         []*Tile
	workerPool    *WorkerPool
	logger        core.Logger
}

// NewProgressiveRaytracer prepares the scene if needed and sets up the tile grid and worker pool
func NewProgressiveRaytracer(s *scene.Scene, config ProgressiveConfig, logger core.Logger) (*ProgressiveRaytracer, error) {
	if err := s.Preprocess(); err != nil {
		return nil, fmt.Errorf("failed to preprocess scene: %w", err)
	}
	if config.TileSize <= 0 {
		return nil, fmt.Errorf("tile size must be positive, got %d", config.TileSize)
	}
	if len(config.GridSizes) == 0 {
		return nil, fmt.Errorf("at least one pass is required")
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	cameraConfig := s.Camera.Config()
	tileRenderer := NewTileRenderer(NewSampler(s))

	return &ProgressiveRaytracer{
		scene:      s,
		width:      cameraConfig.Width,
		height:     cameraConfig.Height,
		config:     config,
		tiles:      NewTileGrid(cameraConfig.Width, cameraConfig.Height, config.TileSize),
		workerPool: NewWorkerPool(tileRenderer, config.NumWorkers),
		logger:     logger,
	}, nil
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	GridSize   int
	Image      *image.RGBA
	Stats      RenderStats
	IsLast     bool
}

// RenderPass renders one complete frame at the given grid size
func (pr *ProgressiveRaytracer) RenderPass(ctx context.Context, passNumber, gridSize int) (*image.RGBA, RenderStats, error) {
	pr.logger.Printf("Pass %d: %d samples per pixel (using %d workers)...\n",
		passNumber, SamplesPerPixel(gridSize), pr.workerPool.GetNumWorkers())

	sink := NewImageSink(pr.width, pr.height)
	stats, err := pr.renderTiles(ctx, gridSize, sink)
	if err != nil {
		return nil, RenderStats{}, err
	}
	return sink.Image(), stats, nil
}

// Render renders the scene once at its configured grid size into sink and
// flushes it
func (pr *ProgressiveRaytracer) Render(ctx context.Context, sink PixelSink) (RenderStats, error) {
	gridSize := pr.scene.SamplingConfig.GridSize
	pr.logger.Printf("Rendering %dx%d at %d samples per pixel (using %d workers)...\n",
		pr.width, pr.height, SamplesPerPixel(gridSize), pr.workerPool.GetNumWorkers())

	stats, err := pr.renderTiles(ctx, gridSize, sink)
	if err != nil {
		return stats, err
	}
	if err := sink.Render(); err != nil {
		return stats, err
	}

	pr.logger.Printf("Render completed in %v\n", stats.Elapsed)
	return stats, nil
}

// renderTiles submits every tile and waits for all results. The context is
// checked between tile submissions; tiles already running finish on their own.
func (pr *ProgressiveRaytracer) renderTiles(ctx context.Context, gridSize int, sink PixelSink) (RenderStats, error) {
	startTime := time.Now()
	results := make(chan TileResult, len(pr.tiles))

	for taskID, tile := range pr.tiles {
		select {
		case <-ctx.Done():
			return RenderStats{}, ctx.Err()
		default:
		}

		pr.workerPool.SubmitTask(TileTask{
			Tile:     tile,
			GridSize: gridSize,
			TaskID:   taskID,
			Sink:     sink,
			Results:  results,
		})
	}

	stats := RenderStats{SamplesPerPixel: SamplesPerPixel(gridSize)}
	for range pr.tiles {
		select {
		case result := <-results:
			if result.Error != nil {
				return RenderStats{}, result.Error
			}
			stats.Merge(result.Stats)
		case <-ctx.Done():
			return RenderStats{}, ctx.Err()
		}
	}

	stats.Elapsed = time.Since(startTime)
	return stats, nil
}

// RenderProgressive renders with channel-based communication. Passes are sent
// on the first channel in order; the error channel receives at most one error.
// Both channels are closed when rendering stops.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(errChan)

		pr.logger.Printf("Starting progressive rendering with %d passes...\n", len(pr.config.GridSizes))

		for i, gridSize := range pr.config.GridSizes {
			pass := i + 1

			// Check if client disconnected before starting this pass
			select {
			case <-ctx.Done():
				pr.logger.Printf("Rendering cancelled before pass %d\n", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			img, stats, err := pr.RenderPass(ctx, pass, gridSize)
			if err != nil {
				errChan <- err
				return
			}

			pr.logger.Printf("Pass %d completed in %v (average luminance %.4f)\n",
				pass, stats.Elapsed, stats.AverageLuminance)

			result := PassResult{
				PassNumber: pass,
				GridSize:   gridSize,
				Image:      img,
				Stats:      stats,
				IsLast:     pass == len(pr.config.GridSizes),
			}

			select {
			case passChan <- result:
			case <-ctx.Done():
				return
			}
		}
	}()

	return passChan, errChan
}

// Size returns the raster size
func (pr *ProgressiveRaytracer) Size() (width, height int) {
	return pr.width, pr.height
}
