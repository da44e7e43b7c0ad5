package wgpu2d

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestVertexStrides(t *testing.T) {
	if got := coloredVertexStride; got != 24 {
		t.Errorf("colored stride = %d, want 24", got)
	}
	if got := texturedVertexStride; got != 32 {
		t.Errorf("textured stride = %d, want 32", got)
	}
}

func TestColoredVertexLayout(t *testing.T) {
	layouts := coloredVertexLayout()
	if len(layouts) != 1 {
		t.Fatalf("expected 1 buffer layout, got %d", len(layouts))
	}
	l := layouts[0]
	if l.ArrayStride != coloredVertexStride {
		t.Errorf("ArrayStride = %d, want %d", l.ArrayStride, coloredVertexStride)
	}
	if len(l.Attributes) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(l.Attributes))
	}
	pos, col := l.Attributes[0], l.Attributes[1]
	if pos.Format != gputypes.VertexFormatFloat32x2 || pos.Offset != 0 || pos.ShaderLocation != 0 {
		t.Errorf("position attribute = %+v", pos)
	}
	if col.Format != gputypes.VertexFormatFloat32x4 || col.Offset != 8 || col.ShaderLocation != 1 {
		t.Errorf("color attribute = %+v", col)
	}
}

func TestTexturedVertexLayout(t *testing.T) {
	layouts := texturedVertexLayout()
	if len(layouts) != 1 {
		t.Fatalf("expected 1 buffer layout, got %d", len(layouts))
	}
	l := layouts[0]
	if l.ArrayStride != texturedVertexStride {
		t.Errorf("ArrayStride = %d, want %d", l.ArrayStride, texturedVertexStride)
	}
	if len(l.Attributes) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(l.Attributes))
	}
	tests := []struct {
		name     string
		attr     gputypes.VertexAttribute
		format   gputypes.VertexFormat
		offset   uint64
		location uint32
	}{
		{"position", l.Attributes[0], gputypes.VertexFormatFloat32x2, 0, 0},
		{"uv", l.Attributes[1], gputypes.VertexFormatFloat32x2, 8, 1},
		{"color", l.Attributes[2], gputypes.VertexFormatFloat32x4, 16, 2},
	}
	for _, tt := range tests {
		if tt.attr.Format != tt.format {
			t.Errorf("%s: Format = %v, want %v", tt.name, tt.attr.Format, tt.format)
		}
		if tt.attr.Offset != tt.offset {
			t.Errorf("%s: Offset = %d, want %d", tt.name, tt.attr.Offset, tt.offset)
		}
		if tt.attr.ShaderLocation != tt.location {
			t.Errorf("%s: ShaderLocation = %d, want %d", tt.name, tt.attr.ShaderLocation, tt.location)
		}
	}
}

func readFloat32(data []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
}

func TestBuildColoredVertexData(t *testing.T) {
	verts := []ColoredVertex{
		{Position: [2]float32{-1, 1}, Color: Color{1, 0, 0, 1}},
		{Position: [2]float32{0.5, -0.25}, Color: Color{0, 1, 0, 0.5}},
	}
	data := buildColoredVertexData(verts)
	if len(data) != 2*coloredVertexStride {
		t.Fatalf("len(data) = %d, want %d", len(data), 2*coloredVertexStride)
	}

	want := []float32{-1, 1, 1, 0, 0, 1, 0.5, -0.25, 0, 1, 0, 0.5}
	for i, w := range want {
		if got := readFloat32(data, i*4); got != w {
			t.Errorf("float %d = %v, want %v", i, got, w)
		}
	}
}

func TestBuildTexturedVertexData(t *testing.T) {
	verts := []TexturedVertex{
		{Position: [2]float32{-1, -1}, UV: [2]float32{0, 1}, Color: Color{1, 1, 1, 1}},
	}
	data := buildTexturedVertexData(verts)
	if len(data) != texturedVertexStride {
		t.Fatalf("len(data) = %d, want %d", len(data), texturedVertexStride)
	}

	want := []float32{-1, -1, 0, 1, 1, 1, 1, 1}
	for i, w := range want {
		if got := readFloat32(data, i*4); got != w {
			t.Errorf("float %d = %v, want %v", i, got, w)
		}
	}
}
