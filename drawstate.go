package wgpu2d

import "fmt"

// Blend selects the color blending mode applied when a triangle list is
// composited onto the output attachment.
type Blend int

const (
	// BlendAlpha is standard alpha compositing, the default.
	BlendAlpha Blend = iota

	// BlendNone disables blending; source color overwrites the target.
	BlendNone

	// BlendAdd sums source and destination components.
	BlendAdd

	// BlendLighter adds the source scaled by its alpha, preserving the
	// destination alpha.
	BlendLighter

	// BlendMultiply multiplies source and destination components.
	BlendMultiply

	// BlendInvert subtracts the source from the blend constant (white),
	// inverting the destination where the source is opaque.
	BlendInvert

	blendCount // number of blend modes, for table sizing
)

// String returns the string representation of the blend mode.
func (b Blend) String() string {
	switch b {
	case BlendAlpha:
		return "Alpha"
	case BlendNone:
		return "None"
	case BlendAdd:
		return "Add"
	case BlendLighter:
		return "Lighter"
	case BlendMultiply:
		return "Multiply"
	case BlendInvert:
		return "Invert"
	default:
		return fmt.Sprintf("Blend(%d)", int(b))
	}
}

// StencilMode selects how triangle lists interact with the stencil buffer.
type StencilMode int

const (
	// StencilNoop ignores the stencil buffer entirely, the default.
	StencilNoop StencilMode = iota

	// StencilClip writes the reference value into the stencil buffer
	// without touching the color attachment. Use it to define a clipping
	// region for subsequent StencilInside/StencilOutside draws.
	StencilClip

	// StencilInside renders only where the stencil buffer equals the
	// reference value.
	StencilInside

	// StencilOutside renders only where the stencil buffer differs from
	// the reference value.
	StencilOutside

	// StencilIncrement increments stencil values under the rendered
	// geometry, clamping at 255, without touching the color attachment.
	// Use it for nested clipping regions.
	StencilIncrement

	stencilModeCount // number of stencil modes, for table sizing
)

// String returns the string representation of the stencil mode.
func (m StencilMode) String() string {
	switch m {
	case StencilNoop:
		return "Noop"
	case StencilClip:
		return "Clip"
	case StencilInside:
		return "Inside"
	case StencilOutside:
		return "Outside"
	case StencilIncrement:
		return "Increment"
	default:
		return fmt.Sprintf("StencilMode(%d)", int(m))
	}
}

// Stencil is a stencil mode paired with its reference value. The value is
// meaningful for StencilClip, StencilInside, and StencilOutside; it is
// ignored for StencilNoop and StencilIncrement.
type Stencil struct {
	Mode  StencilMode
	Value uint8
}

// Rect is a pixel rectangle with its origin at the top-left of the target.
type Rect struct {
	X, Y, W, H uint32
}

// DrawState is the per-triangle-list pipeline state: scissor rectangle,
// stencil interaction, and blend mode. DrawState is a comparable value
// type; submitting a triangle list with a state different from the
// previous one flushes the pending batch.
type DrawState struct {
	// Scissor clips rendering to a pixel rectangle when UseScissor is set.
	Scissor    Rect
	UseScissor bool

	// Stencil selects stencil buffer interaction.
	Stencil Stencil

	// Blend selects the color blending mode.
	Blend Blend
}

// DefaultDrawState returns the default state: alpha blending, no scissor,
// no stencil interaction.
func DefaultDrawState() DrawState {
	return DrawState{Blend: BlendAlpha}
}

// WithScissor returns the state with the scissor rectangle set.
func (s DrawState) WithScissor(r Rect) DrawState {
	s.Scissor = r
	s.UseScissor = true
	return s
}

// WithBlend returns the state with the blend mode set.
func (s DrawState) WithBlend(b Blend) DrawState {
	s.Blend = b
	return s
}

// WithStencil returns the state with the stencil interaction set.
func (s DrawState) WithStencil(mode StencilMode, value uint8) DrawState {
	s.Stencil = Stencil{Mode: mode, Value: value}
	return s
}

// scissorOr returns the scissor rectangle, or the full target rectangle
// when no scissor is set.
func (s DrawState) scissorOr(width, height uint32) Rect {
	if s.UseScissor {
		return s.Scissor
	}
	return Rect{X: 0, Y: 0, W: width, H: height}
}
