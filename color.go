package wgpu2d

import "github.com/gogpu/gputypes"

// Color is an RGBA color with unpremultiplied float components.
// Components are conventionally in [0, 1] but are not clamped anywhere in
// this package; out-of-range values pass through to the GPU unchanged.
type Color [4]float32

// Common colors.
var (
	// White is opaque white, the identity tint.
	White = Color{1, 1, 1, 1}

	// Black is opaque black.
	Black = Color{0, 0, 0, 1}

	// Transparent is fully transparent black.
	Transparent = Color{0, 0, 0, 0}
)

// RGBA constructs a color from its components.
func RGBA(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}

// RGBA returns the individual components.
func (c Color) RGBA() (r, g, b, a float32) {
	return c[0], c[1], c[2], c[3]
}

// WithAlpha returns the color with its alpha component replaced.
func (c Color) WithAlpha(a float32) Color {
	return Color{c[0], c[1], c[2], a}
}

// gpuColor converts to the gputypes clear/blend-constant color type.
func (c Color) gpuColor() gputypes.Color {
	return gputypes.Color{
		R: float64(c[0]),
		G: float64(c[1]),
		B: float64(c[2]),
		A: float64(c[3]),
	}
}
