package wgpu2d

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// blendConstantWhite backs the Invert blend mode, which computes
// constant - src*dst per channel.
var blendConstantWhite = gputypes.Color{R: 1, G: 1, B: 1, A: 1}

// Graphics records 2D drawing operations for one frame. Triangle lists
// accumulate in memory and are encoded as render passes lazily: a pass
// is emitted when the draw state changes, the bound texture changes,
// drawing switches between colored and textured geometry, or the
// accumulation buffer fills up.
//
// GPU errors encountered while encoding are sticky. The first one aborts
// the frame and is returned from Renderer.Draw; operations after it are
// no-ops.
type Graphics struct {
	r        *Renderer
	width    uint32
	height   uint32
	viewport Viewport

	encoder     hal.CommandEncoder
	outputView  hal.TextureView
	stencilView hal.TextureView

	state   DrawState
	texture *Texture

	frameBuffers []hal.Buffer
	err          error
}

// Viewport returns the viewport the frame was started with.
func (g *Graphics) Viewport() Viewport { return g.viewport }

// Transform returns the window-to-clip transform for the frame's
// viewport.
func (g *Graphics) Transform() Matrix { return g.viewport.Transform() }

// Err returns the first GPU error encountered while encoding, if any.
func (g *Graphics) Err() error { return g.err }

// ClearColor flushes pending geometry and clears the color target.
func (g *Graphics) ClearColor(color Color) {
	g.flushColored()
	g.flushTextured()
	if g.err != nil {
		return
	}

	rp := g.encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "wgpu2d:clear color",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       g.outputView,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: color.gpuColor(),
		}},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:           g.stencilView,
			DepthLoadOp:    gputypes.LoadOpLoad,
			DepthStoreOp:   gputypes.StoreOpStore,
			StencilLoadOp:  gputypes.LoadOpLoad,
			StencilStoreOp: gputypes.StoreOpStore,
		},
	})
	rp.End()
}

// ClearStencil flushes pending geometry and clears the stencil buffer
// to value.
func (g *Graphics) ClearStencil(value uint8) {
	g.flushColored()
	g.flushTextured()
	if g.err != nil {
		return
	}

	rp := g.encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "wgpu2d:clear stencil",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    g.outputView,
			LoadOp:  gputypes.LoadOpLoad,
			StoreOp: gputypes.StoreOpStore,
		}},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:              g.stencilView,
			DepthLoadOp:       gputypes.LoadOpLoad,
			DepthStoreOp:      gputypes.StoreOpStore,
			StencilLoadOp:     gputypes.LoadOpClear,
			StencilStoreOp:    gputypes.StoreOpStore,
			StencilClearValue: uint32(value),
		},
	})
	rp.End()
}

// TriList draws flat-colored triangles. f is called with an emit
// function accepting batches of triangle vertices in clip coordinates;
// each batch may hold at most maxChunkVertices vertices.
func (g *Graphics) TriList(state DrawState, color Color, f func(emit func(positions [][2]float32))) {
	g.prepareColored(state)
	f(func(positions [][2]float32) {
		if len(g.r.coloredData)+maxChunkVertices >= softBufferLimit {
			g.flushColored()
		}
		for _, p := range positions {
			g.r.coloredData = append(g.r.coloredData, ColoredVertex{Position: p, Color: color})
		}
	})
}

// TriListC draws triangles with a color per vertex.
func (g *Graphics) TriListC(state DrawState, f func(emit func(positions [][2]float32, colors []Color))) {
	g.prepareColored(state)
	f(func(positions [][2]float32, colors []Color) {
		if len(g.r.coloredData)+maxChunkVertices >= softBufferLimit {
			g.flushColored()
		}
		for i, p := range positions {
			g.r.coloredData = append(g.r.coloredData, ColoredVertex{Position: p, Color: colors[i]})
		}
	})
}

// TriListUV draws textured triangles tinted with a single color.
func (g *Graphics) TriListUV(state DrawState, color Color, texture *Texture, f func(emit func(positions, uvs [][2]float32))) {
	g.prepareTextured(state, texture)
	f(func(positions, uvs [][2]float32) {
		if len(g.r.texturedData)+maxChunkVertices >= softBufferLimit {
			g.flushTextured()
		}
		for i, p := range positions {
			g.r.texturedData = append(g.r.texturedData, TexturedVertex{
				Position: p, UV: uvs[i], Color: color,
			})
		}
	})
}

// TriListUVC draws textured triangles with a tint per vertex.
func (g *Graphics) TriListUVC(state DrawState, texture *Texture, f func(emit func(positions, uvs [][2]float32, colors []Color))) {
	g.prepareTextured(state, texture)
	f(func(positions, uvs [][2]float32, colors []Color) {
		if len(g.r.texturedData)+maxChunkVertices >= softBufferLimit {
			g.flushTextured()
		}
		for i, p := range positions {
			g.r.texturedData = append(g.r.texturedData, TexturedVertex{
				Position: p, UV: uvs[i], Color: colors[i],
			})
		}
	})
}

// Triangles is a convenience wrapper over TriList for a single batch.
func (g *Graphics) Triangles(state DrawState, color Color, positions [][2]float32) {
	g.TriList(state, color, func(emit func([][2]float32)) {
		for off := 0; off < len(positions); off += maxChunkVertices {
			end := min(off+maxChunkVertices, len(positions))
			emit(positions[off:end])
		}
	})
}

// TexturedTriangles is a convenience wrapper over TriListUV for a single
// batch.
func (g *Graphics) TexturedTriangles(state DrawState, color Color, texture *Texture, positions, uvs [][2]float32) {
	g.TriListUV(state, color, texture, func(emit func(_, _ [][2]float32)) {
		for off := 0; off < len(positions); off += maxChunkVertices {
			end := min(off+maxChunkVertices, len(positions))
			emit(positions[off:end], uvs[off:end])
		}
	})
}

// prepareColored flushes whatever the next colored batch cannot join:
// textured geometry always, colored geometry on a state change or a
// full buffer.
func (g *Graphics) prepareColored(state DrawState) {
	if len(g.r.coloredData) > 0 {
		if len(g.r.coloredData)+maxChunkVertices >= softBufferLimit || state != g.state {
			g.flushColored()
		}
	}
	if len(g.r.texturedData) > 0 {
		g.flushTextured()
	}
	g.state = state
}

func (g *Graphics) prepareTextured(state DrawState, texture *Texture) {
	if len(g.r.coloredData) > 0 {
		g.flushColored()
	}
	if len(g.r.texturedData) > 0 {
		if len(g.r.texturedData)+maxChunkVertices >= softBufferLimit || state != g.state {
			g.flushTextured()
		} else if g.texture != nil && g.texture != texture {
			g.flushTextured()
		}
	}
	g.texture = texture
	g.state = state
}

// flushColored encodes the accumulated colored vertices as one render
// pass and resets the accumulation buffer.
func (g *Graphics) flushColored() {
	if g.err != nil || len(g.r.coloredData) == 0 {
		return
	}

	count := uint32(len(g.r.coloredData))
	slogger().Debug("flush colored batch", "vertices", count, "state", g.state)
	buf := g.uploadVertices("wgpu2d:colored vertices", buildColoredVertexData(g.r.coloredData))
	g.r.coloredData = g.r.coloredData[:0]
	if buf == nil {
		return
	}

	pipeline, stencilRef, hasRef := g.r.pipes.lookupColored(g.state)

	rp := g.beginDrawPass("wgpu2d:colored pass")
	rp.SetPipeline(pipeline)
	g.applyPassState(rp, hasRef, stencilRef)
	rp.SetVertexBuffer(0, buf, 0)
	rp.Draw(count, 1, 0, 0)
	rp.End()
}

func (g *Graphics) flushTextured() {
	if g.err != nil || len(g.r.texturedData) == 0 {
		return
	}
	if g.texture == nil {
		g.err = fmt.Errorf("wgpu2d: textured geometry without a texture")
		return
	}

	count := uint32(len(g.r.texturedData))
	slogger().Debug("flush textured batch", "vertices", count, "state", g.state)
	buf := g.uploadVertices("wgpu2d:textured vertices", buildTexturedVertexData(g.r.texturedData))
	g.r.texturedData = g.r.texturedData[:0]
	if buf == nil {
		return
	}

	pipeline, stencilRef, hasRef := g.r.pipes.lookupTextured(g.state)

	rp := g.beginDrawPass("wgpu2d:textured pass")
	rp.SetPipeline(pipeline)
	g.applyPassState(rp, hasRef, stencilRef)
	rp.SetBindGroup(0, g.texture.group, nil)
	rp.SetVertexBuffer(0, buf, 0)
	rp.Draw(count, 1, 0, 0)
	rp.End()
}

func (g *Graphics) beginDrawPass(label string) hal.RenderPassEncoder {
	return g.encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: label,
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    g.outputView,
			LoadOp:  gputypes.LoadOpLoad,
			StoreOp: gputypes.StoreOpStore,
		}},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:           g.stencilView,
			DepthLoadOp:    gputypes.LoadOpLoad,
			DepthStoreOp:   gputypes.StoreOpStore,
			StencilLoadOp:  gputypes.LoadOpLoad,
			StencilStoreOp: gputypes.StoreOpStore,
		},
	})
}

func (g *Graphics) applyPassState(rp hal.RenderPassEncoder, hasRef bool, stencilRef uint32) {
	rp.SetBlendConstant(&blendConstantWhite)
	sc := g.state.scissorOr(g.width, g.height)
	rp.SetScissorRect(sc.X, sc.Y, sc.W, sc.H)
	if hasRef {
		rp.SetStencilReference(stencilRef)
	}
}

// uploadVertices creates a vertex buffer and writes data into it. The
// buffer is tracked on the frame and freed after submission. Returns nil
// after recording a sticky error.
func (g *Graphics) uploadVertices(label string, data []byte) hal.Buffer {
	buf, err := g.r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		g.err = fmt.Errorf("create vertex buffer: %w", err)
		return nil
	}
	g.r.queue.WriteBuffer(buf, 0, data)
	g.frameBuffers = append(g.frameBuffers, buf)
	return buf
}

func (g *Graphics) releaseBuffers() {
	for _, buf := range g.frameBuffers {
		g.r.device.DestroyBuffer(buf)
	}
	g.frameBuffers = nil
}
