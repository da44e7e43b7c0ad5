// Package wgpu2d is a 2D triangle-list rendering backend on gogpu/wgpu.
//
// # Overview
//
// wgpu2d renders buffered lists of pre-transformed 2D triangles, either
// flat-colored or textured with a per-vertex tint, in the style of the
// Piston graphics back-ends. Positions are expected in clip space; the
// vertex stage performs no projection. Use [Viewport.Transform] to map
// pixel coordinates into clip space on the CPU before submission.
//
// # Quick Start
//
//	dev, err := wgpu2d.Open(gputypes.BackendVulkan)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Close()
//
//	r, err := wgpu2d.NewRenderer(dev)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer r.Close()
//
//	vp := wgpu2d.NewViewport(800, 600)
//	frame, err := r.Draw(outputView, 800, 600, vp, func(g *wgpu2d.Graphics) {
//		g.ClearColor(wgpu2d.White)
//		g.Triangles(wgpu2d.DefaultDrawState(), wgpu2d.Color{1, 0, 0, 1}, positions)
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := frame.Submit(); err != nil {
//		log.Fatal(err)
//	}
//
// # Architecture
//
// The library is organized into:
//   - Public API: Device, Renderer, Graphics, Texture, DrawState, Viewport
//   - Pipelines: one render pipeline per (stencil mode, blend mode) pair,
//     for both the colored and the textured shader
//   - Internal: raster (CPU reference implementation of the shader contract)
//
// # Logging
//
// wgpu2d produces no log output by default. Call [SetLogger] with a
// *slog.Logger to enable diagnostics.
package wgpu2d
