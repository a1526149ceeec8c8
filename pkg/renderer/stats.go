package renderer

import (
	"image"
	"time"

	"github.com/df07/go-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width            int           // Image width in pixels
	Height           int           // Image height in pixels
	Workers          int           // Goroutines that rendered bands
	Bands            int           // Number of row bands
	Pixels           int           // Pixels actually traced
	DroppedRows      int           // Rows left unrendered by RemainderDrop
	Duration         time.Duration // Wall time of the render
	AverageLuminance float64       // Mean Rec. 709 luminance of the 8-bit output
}

// CalculateAverageLuminance returns the mean luminance of an image's 8-bit values scaled to [0,1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += core.NewColour(float64(c.R), float64(c.G), float64(c.B)).Multiply(1.0 / 255.0).Luminance()
		}
	}
	return total / float64(pixels)
}
