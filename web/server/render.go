package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// RenderRequest contains the parameters of a progressive render
type RenderRequest struct {
	SceneParams
	GridSize int // Anti-aliasing grid of the final pass
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "pass", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// PassUpdate is the payload of a "pass" event
type PassUpdate struct {
	PassNumber       int     `json:"passNumber"`
	TotalPasses      int     `json:"totalPasses"`
	GridSize         int     `json:"gridSize"`
	SamplesPerPixel  int     `json:"samplesPerPixel"`
	ElapsedMs        int64   `json:"elapsedMs"`
	PassMs           int64   `json:"passMs"`
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int     `json:"totalSamples"`
	AverageLuminance float64 `json:"averageLuminance"`
	PrimitiveCount   int     `json:"primitiveCount"`
	IsLast           bool    `json:"isLast"`
	ImageData        string  `json:"imageData"` // Base64 encoded PNG of the whole frame
}

// RenderingPipeline contains the configured scene and raytracer
type RenderingPipeline struct {
	Scene     *scene.Scene
	Raytracer *renderer.ProgressiveRaytracer
	Passes    int
}

// handleRender handles progressive rendering with one SSE event per finished pass
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Single writer goroutine owns the response; it is drained and joined
	// before the handler returns
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(ctx, w, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()
	stopConsole := func() {
		close(consoleChan)
		<-consoleDone
	}

	pipeline, err := s.setupRenderingPipeline(req, webLogger)
	if err != nil {
		stopConsole()
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	startTime := time.Now()
	passChan, errChan := pipeline.Raytracer.RenderProgressive(ctx)
	renderErr := s.handleRenderingEvents(ctx, sseEventChan, passChan, errChan, pipeline, startTime)

	// The render goroutine has exited, so nothing logs after this point
	stopConsole()

	if renderErr != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", renderErr))
		return
	}
	s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "complete", Data: "Rendering completed"})
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return consoleChan, NewWebLogger(renderID, consoleChan)
}

// writeSSEEvents writes events until the channel is closed or the client goes away
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// Client disconnected during write
				return
			}
			if flusher != nil {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards console messages until the console channel is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for {
		select {
		case consoleMsg, ok := <-consoleChan:
			if !ok {
				return
			}

			data, err := json.Marshal(consoleMsg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}
			s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "console", Data: string(data)})

		case <-ctx.Done():
			return
		}
	}
}

// parseRenderRequest parses request parameters
func parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	params, err := parseSceneParams(r.URL.Query())
	if err != nil {
		return nil, err
	}

	req := &RenderRequest{SceneParams: params}
	defaultGrid := scene.DefaultSamplingConfig().GridSize
	if req.GridSize, err = parseIntParam(r.URL.Query(), "aa", defaultGrid, 1, MaxGridSize); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.GridSize > 8 {
		log.Printf("Render warning: Large image with a %dx%d grid may render slowly", req.GridSize, req.GridSize)
	}

	return req, nil
}

// setupRenderingPipeline creates the scene and a raytracer that previews with
// one sample per pixel before the full anti-aliasing pass
func (s *Server) setupRenderingPipeline(req *RenderRequest, logger core.Logger) (*RenderingPipeline, error) {
	sceneObj, err := scene.New(req.Scene, req.Width, req.Height)
	if err != nil {
		return nil, err
	}
	sceneObj.SamplingConfig.GridSize = req.GridSize

	gridSizes := []int{1}
	if req.GridSize > 1 {
		gridSizes = append(gridSizes, req.GridSize)
	}

	logger.Printf("Scene %s: %d models, %d primitives, %d lights\n",
		sceneObj.Name, len(sceneObj.Models), sceneObj.GetPrimitiveCount(), len(sceneObj.Lights))

	config := renderer.ProgressiveConfig{
		TileSize:   DefaultTileSize,
		GridSizes:  gridSizes,
		NumWorkers: 0, // Auto-detect
	}
	raytracer, err := renderer.NewProgressiveRaytracer(sceneObj, config, logger)
	if err != nil {
		return nil, err
	}

	return &RenderingPipeline{
		Scene:     sceneObj,
		Raytracer: raytracer,
		Passes:    len(gridSizes),
	}, nil
}

// handleRenderingEvents forwards passes until rendering stops. It returns
// only after the render goroutine has closed its channels.
func (s *Server) handleRenderingEvents(ctx context.Context, sseEventChan chan<- SSEEvent,
	passChan <-chan renderer.PassResult, errChan <-chan error,
	pipeline *RenderingPipeline, startTime time.Time) error {

	passes := passChan
	defer func() {
		for range passes {
		}
	}()

	for passChan != nil || errChan != nil {
		select {
		case passResult, ok := <-passChan:
			if !ok {
				passChan = nil
				continue
			}
			s.handlePassComplete(ctx, sseEventChan, passResult, pipeline, startTime)

		case err, ok := <-errChan:
			if !ok {
				errChan = nil
				continue
			}
			return err

		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// handlePassComplete encodes a finished frame and sends it as a "pass" event
func (s *Server) handlePassComplete(ctx context.Context, sseEventChan chan<- SSEEvent,
	passResult renderer.PassResult, pipeline *RenderingPipeline, startTime time.Time) {

	imageData, err := imageToBase64PNG(passResult.Image)
	if err != nil {
		log.Printf("Error encoding pass %d image: %v", passResult.PassNumber, err)
		return
	}

	update := PassUpdate{
		PassNumber:       passResult.PassNumber,
		TotalPasses:      pipeline.Passes,
		GridSize:         passResult.GridSize,
		SamplesPerPixel:  passResult.Stats.SamplesPerPixel,
		ElapsedMs:        time.Since(startTime).Milliseconds(),
		PassMs:           passResult.Stats.Elapsed.Milliseconds(),
		TotalPixels:      passResult.Stats.TotalPixels,
		TotalSamples:     passResult.Stats.TotalSamples,
		AverageLuminance: passResult.Stats.AverageLuminance,
		PrimitiveCount:   pipeline.Scene.GetPrimitiveCount(),
		IsLast:           passResult.IsLast,
		ImageData:        imageData,
	}

	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("Error marshaling pass update: %v", err)
		return
	}
	s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "pass", Data: string(data)})
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan<- SSEEvent, message string) {
	s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "error", Data: message})
}

// sendEvent queues an event unless the client has disconnected
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan<- SSEEvent, event SSEEvent) {
	select {
	case sseEventChan <- event:
	case <-ctx.Done():
	}
}
