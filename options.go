package wgpu2d

import "github.com/gogpu/gputypes"

// Option configures a Renderer during creation.
//
// Example:
//
//	// Default BGRA8 surface format
//	r, err := wgpu2d.NewRenderer(dev)
//
//	// Matching an RGBA8 offscreen target
//	r, err := wgpu2d.NewRenderer(dev, wgpu2d.WithFormat(gputypes.TextureFormatRGBA8Unorm))
type Option func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	format gputypes.TextureFormat
}

// defaultOptions returns the default renderer options.
func defaultOptions() rendererOptions {
	return rendererOptions{
		format: gputypes.TextureFormatBGRA8Unorm,
	}
}

// WithFormat sets the color target format the pipelines render to. It
// must match the format of the texture views passed to Renderer.Draw.
func WithFormat(format gputypes.TextureFormat) Option {
	return func(o *rendererOptions) {
		o.format = format
	}
}
