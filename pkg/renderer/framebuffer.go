package renderer

import (
	"image"
	"sync"

	"github.com/df07/go-raytracer/pkg/core"
)

// Framebuffer is the 8-bit output image shared by all render workers.
// Workers write disjoint rows concurrently under the shared lock;
// Snapshot takes the exclusive lock so readers never see a half-written row.
type Framebuffer struct {
	mu  sync.RWMutex
	img *image.RGBA
}

// NewFramebuffer creates a black, opaque framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return &Framebuffer{img: img}
}

// Width returns the framebuffer width in pixels
func (fb *Framebuffer) Width() int {
	return fb.img.Rect.Dx()
}

// Height returns the framebuffer height in pixels
func (fb *Framebuffer) Height() int {
	return fb.img.Rect.Dy()
}

// SetColour encodes a linear colour (sRGB, then clamp, then scale) into pixel (x, y)
func (fb *Framebuffer) SetColour(x, y int, c core.Colour) {
	fb.mu.RLock()
	fb.img.SetRGBA(x, y, c.ToRGBA())
	fb.mu.RUnlock()
}

// SetRow encodes a full row of linear colours starting at column 0
func (fb *Framebuffer) SetRow(y int, row []core.Colour) {
	fb.mu.RLock()
	defer fb.mu.RUnlock()

	offset := fb.img.PixOffset(0, y)
	for x, c := range row {
		rgba := c.ToRGBA()
		p := fb.img.Pix[offset+x*4 : offset+x*4+4 : offset+x*4+4]
		p[0], p[1], p[2], p[3] = rgba.R, rgba.G, rgba.B, rgba.A
	}
}

// Snapshot copies the current pixels into dst, allocating when dst is too small.
// The returned slice is in RGBA order, row-major, with no padding.
func (fb *Framebuffer) Snapshot(dst []byte) []byte {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	if cap(dst) < len(fb.img.Pix) {
		dst = make([]byte, len(fb.img.Pix))
	}
	dst = dst[:len(fb.img.Pix)]
	copy(dst, fb.img.Pix)
	return dst
}

// Image returns the underlying image. Only call it once rendering has finished.
func (fb *Framebuffer) Image() *image.RGBA {
	return fb.img
}

// PixelToCamera maps the centre of pixel (x, y) to camera-plane coordinates.
// The shorter image axis spans [-1, 1]; u grows to the right and v grows upwards.
func PixelToCamera(x, y, width, height int) (float64, float64) {
	scale := float64(min(width, height)) / 2.0
	u := (float64(x) + 0.5 - float64(width)/2.0) / scale
	v := -(float64(y) + 0.5 - float64(height)/2.0) / scale
	return u, v
}
