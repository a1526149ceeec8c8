package loaders

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-raytracer/pkg/renderer"
)

// Options holds the render settings read from the script's render table
type Options struct {
	Integrator      string // "direct" or "whitted"
	Shadows         bool   // Cast shadow rays
	MaxDepth        int    // Reflection depth for "whitted"
	Threads         int    // Worker goroutines (0 = hardware threads)
	Bands           int    // Row bands (0 = one per thread)
	Remainder       string // "last-band" or "drop"
	Progressive     bool   // Report progress while rendering
	ProgressiveRows int    // Rows between progress updates
	Display         bool   // Show the image in a window
	Output          string // Output image path (.bmp or .png)
}

// DefaultOptions returns the settings used when a script has no render table
func DefaultOptions() Options {
	return Options{
		Integrator:      "direct",
		Shadows:         true,
		MaxDepth:        4,
		Threads:         0,
		Bands:           0,
		Remainder:       renderer.RemainderLastBand.String(),
		Progressive:     true,
		ProgressiveRows: 10,
		Display:         true,
		Output:          "output.bmp",
	}
}

// Validate checks the options for values the renderer cannot use
func (o Options) Validate() error {
	if o.Threads < 0 {
		return fmt.Errorf("threads must not be negative, got %d", o.Threads)
	}
	if o.Bands < 0 {
		return fmt.Errorf("bands must not be negative, got %d", o.Bands)
	}
	if o.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", o.MaxDepth)
	}
	if o.ProgressiveRows < 0 {
		return fmt.Errorf("progressive_rows must not be negative, got %d", o.ProgressiveRows)
	}
	if _, err := o.remainderPolicy(); err != nil {
		return err
	}
	if ext := strings.ToLower(filepath.Ext(o.Output)); ext != ".bmp" && ext != ".png" {
		return fmt.Errorf("output %q must end in .bmp or .png", o.Output)
	}
	return nil
}

func (o Options) remainderPolicy() (renderer.RemainderPolicy, error) {
	switch o.Remainder {
	case "", renderer.RemainderLastBand.String():
		return renderer.RemainderLastBand, nil
	case renderer.RemainderDrop.String():
		return renderer.RemainderDrop, nil
	default:
		return 0, fmt.Errorf("unknown remainder policy %q", o.Remainder)
	}
}

// RenderConfig converts the options into a renderer configuration.
// Progress callbacks are left for the caller to attach.
func (o Options) RenderConfig() renderer.RenderConfig {
	config := renderer.DefaultRenderConfig()
	config.Workers = o.Threads
	config.Bands = o.Bands
	config.Remainder, _ = o.remainderPolicy()
	config.ProgressRows = 0
	if o.Progressive {
		config.ProgressRows = o.ProgressiveRows
	}
	return config
}
