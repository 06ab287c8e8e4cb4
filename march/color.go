package march

import (
	"image/color"
	"math"
)

// Color is a linear RGB color. Components are nominally in [0, 1] but are not
// clamped until they are converted for a Target.
type Color struct {
	R, G, B Scalar
}

// RGBA8 converts c to 8-bit channels: each channel is clamped to [0, 1],
// scaled by 255 and truncated. NaN becomes 0.
func (c Color) RGBA8() color.RGBA {
	return color.RGBA{R: channel8(c.R), G: channel8(c.G), B: channel8(c.B), A: 0xFF}
}

// Finite reports whether every channel is a finite number.
func (c Color) Finite() bool {
	return isFinite(c.R) && isFinite(c.G) && isFinite(c.B)
}

// Saturated reports whether any channel exceeds 1 and is clipped on output.
func (c Color) Saturated() bool {
	return c.R > 1 || c.G > 1 || c.B > 1
}

func channel8(v Scalar) uint8 {
	if math.IsNaN(float64(v)) {
		return 0
	}
	return uint8(Clamp01(v) * 255)
}

func Clamp01(v Scalar) Scalar {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
