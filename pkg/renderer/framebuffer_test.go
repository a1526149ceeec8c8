package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
)

func TestPixelToCamera(t *testing.T) {
	tests := []struct {
		name          string
		x, y          int
		width, height int
		u, v          float64
	}{
		{"top-left of 4x4", 0, 0, 4, 4, -0.75, 0.75},
		{"bottom-right of 4x4", 3, 3, 4, 4, 0.75, -0.75},
		{"centre-adjacent of 4x4", 2, 1, 4, 4, 0.25, 0.25},
		{"wide image keeps vertical span", 0, 0, 8, 4, -1.75, 0.75},
		{"tall image keeps horizontal span", 3, 7, 4, 8, 0.75, -1.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, v := PixelToCamera(tt.x, tt.y, tt.width, tt.height)
			if math.Abs(u-tt.u) > 1e-12 || math.Abs(v-tt.v) > 1e-12 {
				t.Errorf("expected (%f, %f), got (%f, %f)", tt.u, tt.v, u, v)
			}
		})
	}
}

func TestPixelToCamera_Symmetric(t *testing.T) {
	const w, h = 7, 5
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			u1, v1 := PixelToCamera(x, y, w, h)
			u2, v2 := PixelToCamera(w-1-x, h-1-y, w, h)
			if math.Abs(u1+u2) > 1e-12 || math.Abs(v1+v2) > 1e-12 {
				t.Errorf("pixel (%d,%d) is not mirrored: (%f,%f) vs (%f,%f)", x, y, u1, v1, u2, v2)
			}
			if math.Abs(v1) >= 1 {
				t.Errorf("short axis should stay inside [-1,1], got v=%f", v1)
			}
		}
	}
}

func TestFramebuffer(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	if fb.Width() != 3 || fb.Height() != 2 {
		t.Fatalf("expected 3x2, got %dx%d", fb.Width(), fb.Height())
	}
	if got := fb.Image().RGBAAt(2, 1); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("new framebuffer should be opaque black, got %v", got)
	}

	fb.SetColour(1, 0, core.NewColour(1, 0, 2))
	if got := fb.Image().RGBAAt(1, 0); got != (color.RGBA{255, 0, 255, 255}) {
		t.Errorf("expected saturated magenta, got %v", got)
	}

	fb.SetRow(1, []core.Colour{core.Grey(1), core.Black, core.NewColour(-1, 0.5, math.NaN())})
	row := []color.RGBA{fb.Image().RGBAAt(0, 1), fb.Image().RGBAAt(1, 1), fb.Image().RGBAAt(2, 1)}
	if row[0] != (color.RGBA{255, 255, 255, 255}) || row[1] != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("unexpected row %v", row)
	}
	if row[2].R != 0 || row[2].B != 0 || row[2].G == 0 {
		t.Errorf("negative and NaN channels should clamp to 0, got %v", row[2])
	}

	snap := fb.Snapshot(nil)
	if len(snap) != 3*2*4 {
		t.Fatalf("expected %d bytes, got %d", 3*2*4, len(snap))
	}
	reused := fb.Snapshot(snap)
	if &reused[0] != &snap[0] {
		t.Error("Snapshot should reuse a large enough buffer")
	}
}

func TestCalculateAverageLuminance(t *testing.T) {
	// Red, green, blue and black: (0.2126 + 0.7152 + 0.0722 + 0) / 4 = 0.25
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	if avg := CalculateAverageLuminance(img); math.Abs(avg-0.25) > 1e-4 {
		t.Errorf("expected average luminance 0.25, got %f", avg)
	}

	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	white.Set(0, 0, color.RGBA{255, 255, 255, 255})
	if avg := CalculateAverageLuminance(white); math.Abs(avg-1) > 1e-4 {
		t.Errorf("expected average luminance 1, got %f", avg)
	}

	if avg := CalculateAverageLuminance(image.NewRGBA(image.Rectangle{})); avg != 0 {
		t.Errorf("empty image should have zero luminance, got %f", avg)
	}
}
