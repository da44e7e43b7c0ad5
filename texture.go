package wgpu2d

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Wrap selects how a sampler handles UV coordinates outside [0, 1].
type Wrap uint8

const (
	WrapClampToEdge Wrap = iota
	WrapRepeat
	WrapMirrorRepeat
	// WrapClampToBorder is accepted for compatibility with APIs that
	// support border colors. WebGPU samplers have no border color, so
	// it behaves as WrapClampToEdge.
	WrapClampToBorder
)

func (w Wrap) addressMode() gputypes.AddressMode {
	switch w {
	case WrapRepeat:
		return gputypes.AddressModeRepeat
	case WrapMirrorRepeat:
		return gputypes.AddressModeMirrorRepeat
	default:
		return gputypes.AddressModeClampToEdge
	}
}

// Filter selects sampler interpolation.
type Filter uint8

const (
	FilterLinear Filter = iota
	FilterNearest
)

func (f Filter) filterMode() gputypes.FilterMode {
	if f == FilterNearest {
		return gputypes.FilterModeNearest
	}
	return gputypes.FilterModeLinear
}

// TextureSettings configures sampling for a texture.
type TextureSettings struct {
	WrapU     Wrap
	WrapV     Wrap
	MinFilter Filter
	MagFilter Filter
	MipFilter Filter
}

// DefaultTextureSettings returns clamped, linearly filtered settings.
func DefaultTextureSettings() TextureSettings {
	return TextureSettings{}
}

// TextureContext carries everything needed to create and upload textures.
// It is obtained from a Renderer and can be used independently of frame
// encoding, for example from an asset loading goroutine feeding uploads
// through the queue.
type TextureContext struct {
	device hal.Device
	queue  hal.Queue
	layout hal.BindGroupLayout
}

// Texture is a sampled RGBA8 texture together with the sampler and bind
// group the fragment stage reads it through.
type Texture struct {
	ctx     *TextureContext
	texture hal.Texture
	view    hal.TextureView
	sampler hal.Sampler
	group   hal.BindGroup

	width  uint32
	height uint32
}

// NewTexture creates an empty texture of the given pixel size.
func (c *TextureContext) NewTexture(width, height uint32, settings TextureSettings) (*Texture, error) {
	if width == 0 || height == 0 {
		return nil, ErrEmptyTexture
	}

	texture, err := c.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "wgpu2d:texture",
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}

	view, err := c.device.CreateTextureView(texture, &hal.TextureViewDescriptor{
		Label: "wgpu2d:texture view",
	})
	if err != nil {
		c.device.DestroyTexture(texture)
		return nil, fmt.Errorf("create texture view: %w", err)
	}

	sampler, err := c.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "wgpu2d:sampler",
		AddressModeU: settings.WrapU.addressMode(),
		AddressModeV: settings.WrapV.addressMode(),
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    settings.MagFilter.filterMode(),
		MinFilter:    settings.MinFilter.filterMode(),
		MipmapFilter: settings.MipFilter.filterMode(),
	})
	if err != nil {
		c.device.DestroyTextureView(view)
		c.device.DestroyTexture(texture)
		return nil, fmt.Errorf("create sampler: %w", err)
	}

	group, err := c.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "wgpu2d:texture bind group",
		Layout: c.layout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{
				TextureView: view.NativeHandle(),
			}},
			{Binding: 1, Resource: gputypes.SamplerBinding{
				Sampler: sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		c.device.DestroySampler(sampler)
		c.device.DestroyTextureView(view)
		c.device.DestroyTexture(texture)
		return nil, fmt.Errorf("create bind group: %w", err)
	}

	return &Texture{
		ctx:     c,
		texture: texture,
		view:    view,
		sampler: sampler,
		group:   group,
		width:   width,
		height:  height,
	}, nil
}

// NewTextureFromImage creates a texture from an image and uploads its
// pixels. Non-RGBA images are converted.
func (c *TextureContext) NewTextureFromImage(img image.Image, settings TextureSettings) (*Texture, error) {
	rgba := toRGBA(img)
	b := rgba.Bounds()
	tex, err := c.NewTexture(uint32(b.Dx()), uint32(b.Dy()), settings)
	if err != nil {
		return nil, err
	}
	tex.upload(rgba.Pix)
	return tex, nil
}

// NewTextureFromPath loads an image file and creates a texture from it.
// PNG and JPEG are supported.
func (c *TextureContext) NewTextureFromPath(path string, settings TextureSettings) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return c.NewTextureFromImage(img, settings)
}

// Width returns the texture width in pixels.
func (t *Texture) Width() uint32 { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() uint32 { return t.height }

// Update replaces the texture contents with the image. The image size
// must match the texture size.
func (t *Texture) Update(img image.Image) error {
	rgba := toRGBA(img)
	b := rgba.Bounds()
	if uint32(b.Dx()) != t.width || uint32(b.Dy()) != t.height {
		return fmt.Errorf("wgpu2d: update size %dx%d does not match texture %dx%d",
			b.Dx(), b.Dy(), t.width, t.height)
	}
	t.upload(rgba.Pix)
	return nil
}

// UpdateBytes replaces the texture contents with raw RGBA8 pixels.
// len(pix) must equal width*height*4.
func (t *Texture) UpdateBytes(pix []byte) error {
	if uint64(len(pix)) != uint64(t.width)*uint64(t.height)*4 {
		return fmt.Errorf("wgpu2d: pixel data is %d bytes, want %d",
			len(pix), uint64(t.width)*uint64(t.height)*4)
	}
	t.upload(pix)
	return nil
}

func (t *Texture) upload(pix []byte) {
	t.ctx.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: t.texture, MipLevel: 0},
		pix,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  t.width * 4,
			RowsPerImage: t.height,
		},
		&hal.Extent3D{Width: t.width, Height: t.height, DepthOrArrayLayers: 1},
	)
}

// Destroy releases the GPU resources backing the texture.
func (t *Texture) Destroy() {
	if t.ctx == nil {
		return
	}
	dev := t.ctx.device
	if t.group != nil {
		dev.DestroyBindGroup(t.group)
		t.group = nil
	}
	if t.sampler != nil {
		dev.DestroySampler(t.sampler)
		t.sampler = nil
	}
	if t.view != nil {
		dev.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		dev.DestroyTexture(t.texture)
		t.texture = nil
	}
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
