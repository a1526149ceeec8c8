package core

import (
	"image/color"
	"math"
)

// Colour is a linear-light RGB triple. Channels are unbounded while light is
// accumulated and only brought into [0,1] when written to an 8-bit target.
type Colour struct {
	R, G, B float64
}

// Black is the zero colour
var Black = Colour{}

// NewColour creates a new Colour
func NewColour(r, g, b float64) Colour {
	return Colour{R: r, G: g, B: b}
}

// Grey returns a colour with all three channels set to v
func Grey(v float64) Colour {
	return Colour{R: v, G: v, B: v}
}

// Add returns the channel-wise sum of two colours
func (c Colour) Add(other Colour) Colour {
	return Colour{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply returns the colour scaled by a scalar
func (c Colour) Multiply(scalar float64) Colour {
	return Colour{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MultiplyColour returns the channel-wise product of two colours
func (c Colour) MultiplyColour(other Colour) Colour {
	return Colour{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Luminance returns the Rec. 709 luminance of a linear colour
func (c Colour) Luminance() float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// IsBlack reports whether every channel is zero or negative
func (c Colour) IsBlack() bool {
	return c.R <= 0 && c.G <= 0 && c.B <= 0
}

// ToSRGB applies the sRGB transfer function to each channel.
// Values outside [0,1] are not clamped; call Saturate afterwards.
func (c Colour) ToSRGB() Colour {
	return Colour{
		R: linearToSRGB(c.R),
		G: linearToSRGB(c.G),
		B: linearToSRGB(c.B),
	}
}

// ToLinear inverts ToSRGB, decoding gamma-encoded texture values
func (c Colour) ToLinear() Colour {
	return Colour{
		R: srgbToLinear(c.R),
		G: srgbToLinear(c.G),
		B: srgbToLinear(c.B),
	}
}

// Saturate clamps each channel into [0,1]. NaN channels become 0.
func (c Colour) Saturate() Colour {
	return Colour{
		R: saturate(c.R),
		G: saturate(c.G),
		B: saturate(c.B),
	}
}

// ToRGBA encodes the colour for an 8-bit framebuffer: sRGB encoding first,
// then clamping, then scaling to 0-255.
func (c Colour) ToRGBA() color.RGBA {
	encoded := c.ToSRGB().Saturate()
	return color.RGBA{
		R: uint8(encoded.R*255 + 0.5),
		G: uint8(encoded.G*255 + 0.5),
		B: uint8(encoded.B*255 + 0.5),
		A: 255,
	}
}

// linearToSRGB is the sRGB opto-electronic transfer function.
// The linear segment also covers negative inputs.
func linearToSRGB(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1.0/2.4) - 0.055
}

func srgbToLinear(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

func saturate(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
