package core

import "image/color"

// Color is an 8-bit RGB triple
type Color struct {
	R, G, B uint8
}

// NewColor creates a new Color
func NewColor(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// clampChannel truncates a channel value into [0, 255]
func clampChannel(value float64) uint8 {
	if value >= 255 {
		return 255
	}
	if value <= 0 {
		return 0
	}
	return uint8(value)
}

// Scale multiplies every channel by factor, truncating and clamping to [0, 255]
func (c Color) Scale(factor float64) Color {
	return Color{
		R: clampChannel(float64(c.R) * factor),
		G: clampChannel(float64(c.G) * factor),
		B: clampChannel(float64(c.B) * factor),
	}
}

// Blend mixes c with other as c*(1-weight) + other*weight per channel.
// The blend is computed in floating point and truncated once.
func (c Color) Blend(other Color, weight float64) Color {
	mix := func(a, b uint8) uint8 {
		return clampChannel(float64(a)*(1-weight) + float64(b)*weight)
	}
	return Color{
		R: mix(c.R, other.R),
		G: mix(c.G, other.G),
		B: mix(c.B, other.B),
	}
}

// ToRGBA converts the color to an opaque color.RGBA
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
