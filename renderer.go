package wgpu2d

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// maxChunkVertices is the largest triangle batch an emit callback may
// deliver in one call. Matches the chunk size 2D tessellators produce.
const maxChunkVertices = 1024

// bufferChunks is the number of chunks accumulated before a flush.
// Memory used per vertex kind: maxChunkVertices * bufferChunks * stride.
const bufferChunks = 100

const softBufferLimit = maxChunkVertices * bufferChunks

// fenceTimeout bounds how long Submit waits for the GPU.
const fenceTimeout = 5 * time.Second

// Renderer owns the pipeline matrix and vertex accumulation buffers for
// 2D drawing. One Renderer serves many frames; encode each frame with
// Draw and submit the result with Frame.Submit.
type Renderer struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat

	pipes  *pipelineSet
	texCtx *TextureContext

	coloredData  []ColoredVertex
	texturedData []TexturedVertex

	stencilTexture hal.Texture
	stencilView    hal.TextureView
	stencilWidth   uint32
	stencilHeight  uint32

	frame *Frame
}

// NewRenderer creates a renderer targeting color attachments of the
// configured format (BGRA8Unorm unless changed with WithFormat).
func NewRenderer(dev *Device, opts ...Option) (*Renderer, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	pipes, err := newPipelineSet(dev.HAL(), cfg.format)
	if err != nil {
		return nil, fmt.Errorf("create pipelines: %w", err)
	}

	slogger().Debug("renderer created", "format", cfg.format)

	return &Renderer{
		device: dev.HAL(),
		queue:  dev.Queue(),
		format: cfg.format,
		pipes:  pipes,
		texCtx: &TextureContext{
			device: dev.HAL(),
			queue:  dev.Queue(),
			layout: pipes.textureLayout,
		},
		coloredData:  make([]ColoredVertex, 0, softBufferLimit),
		texturedData: make([]TexturedVertex, 0, softBufferLimit),
	}, nil
}

// Textures returns the context for creating and uploading textures
// compatible with this renderer's pipelines.
func (r *Renderer) Textures() *TextureContext { return r.texCtx }

// Format returns the color target format the pipelines were built for.
func (r *Renderer) Format() gputypes.TextureFormat { return r.format }

// Draw runs f against a fresh Graphics recording into a new command
// encoder targeting outputView, which must be width by height pixels in
// the renderer's format. The returned Frame holds the encoded commands
// and the resources they reference; call Submit or Discard on it before
// the next Draw.
func (r *Renderer) Draw(outputView hal.TextureView, width, height uint32, viewport Viewport, f func(*Graphics)) (*Frame, error) {
	if r.frame != nil {
		return nil, ErrFrameInFlight
	}

	if err := r.ensureStencil(width, height); err != nil {
		return nil, err
	}

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "wgpu2d:encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("wgpu2d:frame"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	g := &Graphics{
		r:           r,
		width:       width,
		height:      height,
		viewport:    viewport,
		encoder:     encoder,
		outputView:  outputView,
		stencilView: r.stencilView,
		state:       DefaultDrawState(),
	}

	f(g)
	g.flushColored()
	g.flushTextured()

	if g.err != nil {
		encoder.DiscardEncoding()
		g.releaseBuffers()
		r.coloredData = r.coloredData[:0]
		r.texturedData = r.texturedData[:0]
		return nil, g.err
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		g.releaseBuffers()
		return nil, fmt.Errorf("end encoding: %w", err)
	}

	frame := &Frame{
		r:       r,
		cmdBuf:  cmdBuf,
		buffers: g.frameBuffers,
	}
	r.frame = frame
	return frame, nil
}

// ensureStencil creates or recreates the cached stencil attachment when
// the target size changes.
func (r *Renderer) ensureStencil(width, height uint32) error {
	if r.stencilTexture != nil && r.stencilWidth == width && r.stencilHeight == height {
		return nil
	}
	r.destroyStencil()

	texture, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "wgpu2d:stencil",
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatDepth24PlusStencil8,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create stencil texture: %w", err)
	}
	view, err := r.device.CreateTextureView(texture, &hal.TextureViewDescriptor{
		Label: "wgpu2d:stencil view",
	})
	if err != nil {
		r.device.DestroyTexture(texture)
		return fmt.Errorf("create stencil view: %w", err)
	}

	r.stencilTexture = texture
	r.stencilView = view
	r.stencilWidth = width
	r.stencilHeight = height
	return nil
}

func (r *Renderer) destroyStencil() {
	if r.stencilView != nil {
		r.device.DestroyTextureView(r.stencilView)
		r.stencilView = nil
	}
	if r.stencilTexture != nil {
		r.device.DestroyTexture(r.stencilTexture)
		r.stencilTexture = nil
	}
}

// Close releases the renderer's GPU resources. Textures created from the
// renderer's TextureContext must be destroyed separately.
func (r *Renderer) Close() {
	r.destroyStencil()
	if r.pipes != nil {
		r.pipes.destroy()
		r.pipes = nil
	}
}

// Frame is an encoded frame awaiting submission. The vertex buffers it
// references stay alive until Submit or Discard.
type Frame struct {
	r       *Renderer
	cmdBuf  hal.CommandBuffer
	buffers []hal.Buffer
	done    bool
}

// CommandBuffer returns the encoded commands for hosts that batch
// submission themselves. A frame whose buffer was submitted externally
// must still be released with Discard.
func (f *Frame) CommandBuffer() hal.CommandBuffer { return f.cmdBuf }

// Submit sends the frame to the GPU and blocks until it completes, then
// releases the frame's resources.
func (f *Frame) Submit() error {
	if f.done {
		return nil
	}
	defer f.release()

	fence, err := f.r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer f.r.device.DestroyFence(fence)

	if err := f.r.queue.Submit([]hal.CommandBuffer{f.cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	ok, err := f.r.device.Wait(fence, 1, fenceTimeout)
	if err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	if !ok {
		return fmt.Errorf("wait for GPU: timed out after %v", fenceTimeout)
	}
	return nil
}

// Discard drops the frame without submitting it.
func (f *Frame) Discard() {
	if f.done {
		return
	}
	f.release()
}

func (f *Frame) release() {
	dev := f.r.device
	dev.FreeCommandBuffer(f.cmdBuf)
	for _, buf := range f.buffers {
		dev.DestroyBuffer(buf)
	}
	f.buffers = nil
	f.done = true
	f.r.frame = nil
}
