package wgpu2d

import "testing"

func TestDefaultDrawState(t *testing.T) {
	s := DefaultDrawState()
	if s.Blend != BlendAlpha {
		t.Errorf("Blend = %v, want Alpha", s.Blend)
	}
	if s.UseScissor {
		t.Error("UseScissor = true, want false")
	}
	if s.Stencil.Mode != StencilNoop {
		t.Errorf("Stencil.Mode = %v, want Noop", s.Stencil.Mode)
	}
}

func TestDrawStateBuilders(t *testing.T) {
	s := DefaultDrawState().
		WithBlend(BlendMultiply).
		WithScissor(Rect{X: 10, Y: 20, W: 30, H: 40}).
		WithStencil(StencilInside, 7)

	if s.Blend != BlendMultiply {
		t.Errorf("Blend = %v, want Multiply", s.Blend)
	}
	if !s.UseScissor || s.Scissor != (Rect{10, 20, 30, 40}) {
		t.Errorf("Scissor = %+v use=%v", s.Scissor, s.UseScissor)
	}
	if s.Stencil != (Stencil{Mode: StencilInside, Value: 7}) {
		t.Errorf("Stencil = %+v", s.Stencil)
	}

	// Builders must not mutate the receiver.
	if d := DefaultDrawState(); d.UseScissor || d.Blend != BlendAlpha {
		t.Error("DefaultDrawState changed by builder chain")
	}
}

func TestDrawStateComparable(t *testing.T) {
	a := DefaultDrawState().WithStencil(StencilClip, 1)
	b := DefaultDrawState().WithStencil(StencilClip, 1)
	if a != b {
		t.Error("identical states compare unequal")
	}
	if c := b.WithStencil(StencilClip, 2); a == c {
		t.Error("states with different stencil values compare equal")
	}
}

func TestScissorOr(t *testing.T) {
	full := DefaultDrawState().scissorOr(800, 600)
	if full != (Rect{0, 0, 800, 600}) {
		t.Errorf("no-scissor rect = %+v, want full target", full)
	}

	set := DefaultDrawState().WithScissor(Rect{1, 2, 3, 4}).scissorOr(800, 600)
	if set != (Rect{1, 2, 3, 4}) {
		t.Errorf("scissor rect = %+v, want {1 2 3 4}", set)
	}
}

func TestBlendString(t *testing.T) {
	tests := []struct {
		mode Blend
		want string
	}{
		{BlendAlpha, "Alpha"},
		{BlendNone, "None"},
		{BlendAdd, "Add"},
		{BlendLighter, "Lighter"},
		{BlendMultiply, "Multiply"},
		{BlendInvert, "Invert"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.mode), got, tt.want)
		}
	}
}

func TestStencilModeString(t *testing.T) {
	tests := []struct {
		mode StencilMode
		want string
	}{
		{StencilNoop, "Noop"},
		{StencilClip, "Clip"},
		{StencilInside, "Inside"},
		{StencilOutside, "Outside"},
		{StencilIncrement, "Increment"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.mode), got, tt.want)
		}
	}
}
