package wgpu2d

import "errors"

// Sentinel errors returned by this package. Callers can match them with
// errors.Is after unwrapping.
var (
	// ErrNoBackend indicates the requested GPU backend is not available.
	ErrNoBackend = errors.New("wgpu2d: GPU backend not available")

	// ErrNoAdapter indicates no GPU adapters were found on the instance.
	ErrNoAdapter = errors.New("wgpu2d: no GPU adapters found")

	// ErrTextureTooLarge indicates a texture exceeded the device limits.
	ErrTextureTooLarge = errors.New("wgpu2d: texture exceeds device limits")

	// ErrEmptyTexture indicates a texture with zero width or height.
	ErrEmptyTexture = errors.New("wgpu2d: texture has zero size")

	// ErrFrameInFlight indicates Draw was called while a previous frame's
	// command buffer had not been submitted or discarded.
	ErrFrameInFlight = errors.New("wgpu2d: previous frame not submitted")

	// ErrAtlasFull indicates a glyph atlas has no room for another glyph.
	ErrAtlasFull = errors.New("wgpu2d: glyph atlas full")
)
