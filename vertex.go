package wgpu2d

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// coloredVertexStride is the byte stride per colored vertex.
// Layout per vertex:
//
//	position (vec2<f32>) = 8 bytes  (location 0)
//	color    (vec4<f32>) = 16 bytes (location 1)
//
// Total = 24 bytes per vertex.
const coloredVertexStride = 24

// texturedVertexStride is the byte stride per textured vertex.
// Layout per vertex:
//
//	position (vec2<f32>) = 8 bytes  (location 0)
//	uv       (vec2<f32>) = 8 bytes  (location 1)
//	color    (vec4<f32>) = 16 bytes (location 2)
//
// Total = 32 bytes per vertex.
const texturedVertexStride = 32

// ColoredVertex is one vertex of the colored pipeline: a clip-space
// position and an RGBA color, interpolated across the triangle.
type ColoredVertex struct {
	// Position in clip space. The vertex stage appends Z=0, W=1.
	Position [2]float32

	// Color is the unpremultiplied RGBA vertex color.
	Color Color
}

// TexturedVertex is one vertex of the textured pipeline: a clip-space
// position, a texture coordinate, and an RGBA tint, all interpolated
// across the triangle.
type TexturedVertex struct {
	// Position in clip space. The vertex stage appends Z=0, W=1.
	Position [2]float32

	// UV is the texture coordinate, typically normalized to [0, 1].
	// Out-of-range values are resolved by the texture's sampler
	// addressing mode.
	UV [2]float32

	// Color is the unpremultiplied RGBA tint multiplied into the
	// sampled texel.
	Color Color
}

// coloredVertexLayout returns the vertex buffer layout for the colored
// pipeline. Matches VertexInput in colored.wgsl:
//
//	location 0: position (vec2<f32>)
//	location 1: color (vec4<f32>)
func coloredVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: coloredVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x4, Offset: 8, ShaderLocation: 1}, // color
			},
		},
	}
}

// texturedVertexLayout returns the vertex buffer layout for the textured
// pipeline. Matches VertexInput in textured.wgsl:
//
//	location 0: position (vec2<f32>)
//	location 1: uv (vec2<f32>)
//	location 2: color (vec4<f32>)
func texturedVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: texturedVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},  // uv
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2}, // color
			},
		},
	}
}

// buildColoredVertexData serializes colored vertices into raw little-endian
// bytes suitable for GPU upload.
func buildColoredVertexData(vertices []ColoredVertex) []byte {
	if len(vertices) == 0 {
		return nil
	}
	data := make([]byte, len(vertices)*coloredVertexStride)
	off := 0
	for _, v := range vertices {
		putFloat32(data[off:], v.Position[0])
		putFloat32(data[off+4:], v.Position[1])
		putFloat32(data[off+8:], v.Color[0])
		putFloat32(data[off+12:], v.Color[1])
		putFloat32(data[off+16:], v.Color[2])
		putFloat32(data[off+20:], v.Color[3])
		off += coloredVertexStride
	}
	return data
}

// buildTexturedVertexData serializes textured vertices into raw
// little-endian bytes suitable for GPU upload.
func buildTexturedVertexData(vertices []TexturedVertex) []byte {
	if len(vertices) == 0 {
		return nil
	}
	data := make([]byte, len(vertices)*texturedVertexStride)
	off := 0
	for _, v := range vertices {
		putFloat32(data[off:], v.Position[0])
		putFloat32(data[off+4:], v.Position[1])
		putFloat32(data[off+8:], v.UV[0])
		putFloat32(data[off+12:], v.UV[1])
		putFloat32(data[off+16:], v.Color[0])
		putFloat32(data[off+20:], v.Color[1])
		putFloat32(data[off+24:], v.Color[2])
		putFloat32(data[off+28:], v.Color[3])
		off += texturedVertexStride
	}
	return data
}

// putFloat32 writes a single float32 into buf in little-endian order.
func putFloat32(buf []byte, f float32) {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(f))
}
