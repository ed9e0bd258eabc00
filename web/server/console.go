package server

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Console levels shown by the browser console panel
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// ConsoleMessage is one line of render output streamed to the client
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
}

// WebLogger implements core.Logger for a single render. Every line goes to
// the server log tagged with the render ID and, when a console channel is
// attached, to the client without ever blocking the renderer.
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a logger for the render with the given ID
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{renderID: renderID, consoleChan: consoleChan}
}

// Printf implements core.Logger
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	log.Printf("[%s] %s", wl.renderID, strings.TrimSuffix(message, "\n"))

	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{Message: message, Timestamp: time.Now(), Level: levelOf(message)}:
	default:
		// Console is behind; drop the line rather than stall a render
	}
}

// levelOf classifies a message by its leading word
func levelOf(message string) string {
	lower := strings.ToLower(strings.TrimSpace(message))
	switch {
	case strings.HasPrefix(lower, "error"), strings.HasPrefix(lower, "failed"):
		return LevelError
	case strings.HasPrefix(lower, "warning"), strings.Contains(lower, "cancelled"):
		return LevelWarning
	default:
		return LevelInfo
	}
}
