package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/df07/go-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by forwarding messages to a render's console channel
type WebLogger struct {
	renderID    string
	server      core.Logger
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a logger for one render. Messages also go to the server log.
func NewWebLogger(renderID string, server core.Logger, consoleChan chan<- ConsoleMessage) core.Logger {
	if server == nil {
		server = core.NopLogger{}
	}
	return &WebLogger{
		renderID:    renderID,
		server:      server,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	wl.server.Printf("[%s] %s", wl.renderID, strings.TrimRight(message, "\n"))

	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{
		Message:   message,
		Timestamp: time.Now(),
		Level:     "info",
	}:
	default:
		// Channel full, skip (don't block render workers)
	}
}
