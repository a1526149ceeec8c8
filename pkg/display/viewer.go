package display

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Frame is a pixel source the viewer can copy from while it is being written.
// *renderer.Framebuffer implements it.
type Frame interface {
	Snapshot(dst []byte) []byte
}

// FrameSource returns the frame to show, or nil while none exists yet
type FrameSource func() Frame

// Viewer shows a render in a desktop window and reports when the user aborts it.
// Run must be called from the main goroutine; every other method is safe from any goroutine.
type Viewer struct {
	width  int
	height int

	mu     sync.Mutex
	title  string
	source FrameSource

	dirty     atomic.Bool
	finished  atomic.Bool
	closing   atomic.Bool
	aborted   chan struct{}
	abortOnce sync.Once

	pixels     []byte
	image      *ebiten.Image
	shownTitle string
}

// NewViewer creates a viewer for a width x height frame
func NewViewer(title string, width, height int, source FrameSource) *Viewer {
	return &Viewer{
		width:   width,
		height:  height,
		source:  source,
		title:   title,
		aborted: make(chan struct{}),
	}
}

// Aborted is closed when the user presses Escape or closes the window before Finish
func (v *Viewer) Aborted() <-chan struct{} {
	return v.aborted
}

// SetSource replaces the frame source, for frames that only exist once rendering starts
func (v *Viewer) SetSource(source FrameSource) {
	v.mu.Lock()
	v.source = source
	v.mu.Unlock()
	v.Invalidate()
}

// Close asks the window to close on its next tick without reporting an abort
func (v *Viewer) Close() {
	v.closing.Store(true)
}

// Invalidate asks the viewer to copy the frame again on its next tick
func (v *Viewer) Invalidate() {
	v.dirty.Store(true)
}

// SetTitle changes the window title
func (v *Viewer) SetTitle(title string) {
	v.mu.Lock()
	v.title = title
	v.mu.Unlock()
}

// Finish shows the final frame and puts the render time in the title.
// Closing the window after Finish is not an abort.
func (v *Viewer) Finish(elapsed time.Duration) {
	v.SetTitle(RenderTimeTitle(elapsed))
	v.finished.Store(true)
	v.Invalidate()
}

// RenderTimeTitle formats the title shown once rendering is complete
func RenderTimeTitle(elapsed time.Duration) string {
	return fmt.Sprintf("Render time: %.3fs", elapsed.Seconds())
}

// Run opens the window and blocks until it is closed or Escape is pressed
func (v *Viewer) Run() error {
	ebiten.SetWindowTitle(v.currentTitle())
	ebiten.SetWindowSize(v.width, v.height)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(30)

	err := ebiten.RunGame(v)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (v *Viewer) abort() {
	if v.finished.Load() {
		return
	}
	v.abortOnce.Do(func() { close(v.aborted) })
}

func (v *Viewer) currentTitle() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.title
}

// copyFrame snapshots the source into the viewer's pixel buffer.
// It reports false when there is nothing to show yet.
func (v *Viewer) copyFrame() bool {
	v.mu.Lock()
	source := v.source
	v.mu.Unlock()
	if source == nil {
		return false
	}
	frame := source()
	if frame == nil {
		return false
	}
	pixels := frame.Snapshot(v.pixels)
	if len(pixels) != v.width*v.height*4 {
		return false
	}
	v.pixels = pixels
	return true
}

// Update implements ebiten.Game
func (v *Viewer) Update() error {
	if v.closing.Load() {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || ebiten.IsWindowBeingClosed() {
		v.abort()
		return ebiten.Termination
	}

	if title := v.currentTitle(); title != v.shownTitle {
		ebiten.SetWindowTitle(title)
		v.shownTitle = title
	}

	if v.dirty.Swap(false) && v.copyFrame() {
		if v.image == nil {
			v.image = ebiten.NewImage(v.width, v.height)
		}
		v.image.WritePixels(v.pixels)
	}
	return nil
}

// Draw implements ebiten.Game
func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.image != nil {
		screen.DrawImage(v.image, nil)
	}
}

// Layout implements ebiten.Game
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.width, v.height
}
