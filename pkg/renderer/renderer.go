package renderer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-raytracer/pkg/core"
)

// ErrSceneNotPrepared is returned by Render when the scene has not been preprocessed
var ErrSceneNotPrepared = errors.New("scene must be preprocessed before rendering")

// Scene is what the renderer needs from a scene. Implemented by *scene.Scene.
type Scene interface {
	// Trace returns the linear colour at camera-plane point (u, v); safe for concurrent use
	Trace(u, v float64) core.Colour
	IsPrepared() bool
	Size() (width, height int)
}

// ProgressUpdate reports rows finished within one band
type ProgressUpdate struct {
	Band      Band
	RowsDone  int // Rows of this band written so far
	TotalRows int // Rows in this band
}

// RenderConfig contains configuration for a render
type RenderConfig struct {
	Workers      int                  // Parallel workers (0 = hardware threads)
	Bands        int                  // Row bands (0 = one per worker)
	Remainder    RemainderPolicy      // Handling of rows that do not divide evenly
	ProgressRows int                  // Rows between progress callbacks (0 = no callbacks)
	OnProgress   func(ProgressUpdate) // Called from worker goroutines; must be safe for concurrent use
}

// DefaultRenderConfig returns one band per hardware thread with progress every 10 rows
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Workers:      0,
		Bands:        0,
		Remainder:    RemainderLastBand,
		ProgressRows: 10,
	}
}

// Renderer partitions the image into row bands and traces them in parallel
type Renderer struct {
	scene       Scene
	config      RenderConfig
	logger      core.Logger
	framebuffer atomic.Pointer[Framebuffer]
}

// NewRenderer creates a renderer. A nil logger discards output.
func NewRenderer(scene Scene, config RenderConfig, logger core.Logger) *Renderer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Renderer{
		scene:  scene,
		config: config,
		logger: logger,
	}
}

// Framebuffer returns the framebuffer of the render in progress, or nil before Render starts.
// Use Snapshot to read it while workers are still writing.
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.framebuffer.Load()
}

// plan resolves the worker and band counts for an image of the given height
func (r *Renderer) plan(height int) (int, []Band) {
	workers := r.config.Workers
	if workers <= 0 {
		workers = HardwareThreads()
	}
	bandCount := r.config.Bands
	if bandCount <= 0 {
		bandCount = workers
	}
	bands := PartitionRows(height, bandCount, r.config.Remainder)
	return min(workers, len(bands)), bands
}

// Render traces every pixel once and returns the finished image.
// Cancelling ctx stops all workers at their next row boundary; Render then
// returns ctx's error and no framebuffer.
func (r *Renderer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	if !r.scene.IsPrepared() {
		return nil, RenderStats{}, ErrSceneNotPrepared
	}
	width, height := r.scene.Size()
	if width <= 0 || height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid image size %dx%d", width, height)
	}

	workers, bands := r.plan(height)
	fb := NewFramebuffer(width, height)
	r.framebuffer.Store(fb)

	r.logger.Printf("Rendering %dx%d with %d workers over %d bands (%s remainder)\n",
		width, height, workers, len(bands), r.config.Remainder)
	start := time.Now()

	queue := make(chan Band, len(bands))
	for _, band := range bands {
		queue <- band
	}
	close(queue)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			row := make([]core.Colour, width)
			for band := range queue {
				if err := r.renderBand(gctx, fb, band, row); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		r.logger.Printf("Render cancelled after %v: %v\n", time.Since(start), err)
		return nil, RenderStats{}, err
	}

	covered := coveredRows(bands)
	stats := RenderStats{
		Width:            width,
		Height:           height,
		Workers:          workers,
		Bands:            len(bands),
		Pixels:           covered * width,
		DroppedRows:      height - covered,
		Duration:         time.Since(start),
		AverageLuminance: CalculateAverageLuminance(fb.Image()),
	}
	r.logger.Printf("Render completed in %v (%d pixels, %d rows dropped)\n", stats.Duration, stats.Pixels, stats.DroppedRows)

	return fb, stats, nil
}

// renderBand traces every row of band, checking for cancellation before each row
func (r *Renderer) renderBand(ctx context.Context, fb *Framebuffer, band Band, row []core.Colour) error {
	width, height := fb.Width(), fb.Height()

	for y := band.Start; y < band.End; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		for x := range row {
			u, v := PixelToCamera(x, y, width, height)
			row[x] = r.scene.Trace(u, v)
		}
		fb.SetRow(y, row)

		done := y - band.Start + 1
		if r.config.OnProgress != nil && r.config.ProgressRows > 0 &&
			(done%r.config.ProgressRows == 0 || y == band.End-1) {
			r.config.OnProgress(ProgressUpdate{Band: band, RowsDone: done, TotalRows: band.Rows()})
		}
	}

	return nil
}
