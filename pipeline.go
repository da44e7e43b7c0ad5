package wgpu2d

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// stencilFaces carries the per-mode stencil configuration shared by the
// front and back faces.
type stencilFaces struct {
	face      hal.StencilFaceState
	readMask  uint32
	writeMask uint32
}

// blendState returns the color target blend for a mode, or nil for
// BlendNone (blending disabled, source overwrites destination).
func blendState(mode Blend) *gputypes.BlendState {
	switch mode {
	case BlendAlpha:
		return &gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorSrcAlpha,
				DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
				Operation: gputypes.BlendOperationAdd,
			},
			Alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorOne,
				DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
				Operation: gputypes.BlendOperationAdd,
			},
		}
	case BlendAdd:
		return &gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorOne,
				DstFactor: gputypes.BlendFactorOne,
				Operation: gputypes.BlendOperationAdd,
			},
			Alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorOne,
				DstFactor: gputypes.BlendFactorOne,
				Operation: gputypes.BlendOperationAdd,
			},
		}
	case BlendLighter:
		return &gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorSrcAlpha,
				DstFactor: gputypes.BlendFactorOne,
				Operation: gputypes.BlendOperationAdd,
			},
			Alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorZero,
				DstFactor: gputypes.BlendFactorOne,
				Operation: gputypes.BlendOperationAdd,
			},
		}
	case BlendMultiply:
		return &gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorDst,
				DstFactor: gputypes.BlendFactorZero,
				Operation: gputypes.BlendOperationAdd,
			},
			Alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorDstAlpha,
				DstFactor: gputypes.BlendFactorZero,
				Operation: gputypes.BlendOperationAdd,
			},
		}
	case BlendInvert:
		// Inversion relies on the blend constant being set to white:
		// out = white - src*dst.
		return &gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorConstant,
				DstFactor: gputypes.BlendFactorSrc,
				Operation: gputypes.BlendOperationSubtract,
			},
			Alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorZero,
				DstFactor: gputypes.BlendFactorOne,
				Operation: gputypes.BlendOperationAdd,
			},
		}
	default:
		return nil
	}
}

// stencilState returns the stencil face configuration for a mode.
//
// Clip and Increment use CompareFunctionNever with a fail op so that the
// geometry writes the stencil buffer without touching the color target.
// Inside and Outside gate color output against the reference value set
// on the render pass.
func stencilState(mode StencilMode) stencilFaces {
	keepAll := hal.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}
	switch mode {
	case StencilClip:
		return stencilFaces{
			face: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionNever,
				FailOp:      hal.StencilOperationReplace,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
			readMask:  0xFF,
			writeMask: 0xFF,
		}
	case StencilInside:
		inside := keepAll
		inside.Compare = gputypes.CompareFunctionEqual
		return stencilFaces{face: inside, readMask: 0xFF, writeMask: 0xFF}
	case StencilOutside:
		outside := keepAll
		outside.Compare = gputypes.CompareFunctionNotEqual
		return stencilFaces{face: outside, readMask: 0xFF, writeMask: 0xFF}
	case StencilIncrement:
		return stencilFaces{
			face: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionNever,
				FailOp:      hal.StencilOperationIncrementClamp,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
			readMask:  0xFF,
			writeMask: 0xFF,
		}
	default:
		return stencilFaces{face: keepAll}
	}
}

// pipelineSet holds one render pipeline per (shader, stencil, blend)
// combination, created up front so state changes during a frame never
// stall on pipeline compilation.
type pipelineSet struct {
	device hal.Device
	format gputypes.TextureFormat

	coloredShader  hal.ShaderModule
	texturedShader hal.ShaderModule
	textureLayout  hal.BindGroupLayout
	coloredLayout  hal.PipelineLayout
	texturedLayout hal.PipelineLayout

	colored  [stencilModeCount][blendCount]hal.RenderPipeline
	textured [stencilModeCount][blendCount]hal.RenderPipeline
}

func newPipelineSet(device hal.Device, format gputypes.TextureFormat) (*pipelineSet, error) {
	ps := &pipelineSet{device: device, format: format}
	if err := ps.create(); err != nil {
		ps.destroy()
		return nil, err
	}
	return ps, nil
}

func (ps *pipelineSet) create() error {
	coloredShader, err := createShaderModule(ps.device, "wgpu2d:colored shader", coloredWGSL)
	if err != nil {
		return err
	}
	ps.coloredShader = coloredShader

	texturedShader, err := createShaderModule(ps.device, "wgpu2d:textured shader", texturedWGSL)
	if err != nil {
		return err
	}
	ps.texturedShader = texturedShader

	// Texture plus filtering sampler at group(0), fragment stage only.
	textureLayout, err := ps.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "wgpu2d:texture layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create texture bind group layout: %w", err)
	}
	ps.textureLayout = textureLayout

	coloredLayout, err := ps.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "wgpu2d:colored pipe layout",
		BindGroupLayouts: nil,
	})
	if err != nil {
		return fmt.Errorf("create colored pipeline layout: %w", err)
	}
	ps.coloredLayout = coloredLayout

	texturedLayout, err := ps.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "wgpu2d:textured pipe layout",
		BindGroupLayouts: []hal.BindGroupLayout{ps.textureLayout},
	})
	if err != nil {
		return fmt.Errorf("create textured pipeline layout: %w", err)
	}
	ps.texturedLayout = texturedLayout

	for s := StencilMode(0); s < stencilModeCount; s++ {
		for b := Blend(0); b < blendCount; b++ {
			colored, err := ps.createPipeline(
				fmt.Sprintf("wgpu2d:colored %v %v", s, b),
				ps.coloredShader, ps.coloredLayout, coloredVertexLayout(), s, b)
			if err != nil {
				return err
			}
			ps.colored[s][b] = colored

			textured, err := ps.createPipeline(
				fmt.Sprintf("wgpu2d:textured %v %v", s, b),
				ps.texturedShader, ps.texturedLayout, texturedVertexLayout(), s, b)
			if err != nil {
				return err
			}
			ps.textured[s][b] = textured
		}
	}
	return nil
}

func (ps *pipelineSet) createPipeline(
	label string,
	shader hal.ShaderModule,
	layout hal.PipelineLayout,
	buffers []gputypes.VertexBufferLayout,
	stencil StencilMode,
	blend Blend,
) (hal.RenderPipeline, error) {
	sf := stencilState(stencil)
	pipeline, err := ps.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label,
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    buffers,
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    ps.format,
					Blend:     blendState(blend),
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: &hal.DepthStencilState{
			Format:            gputypes.TextureFormatDepth24PlusStencil8,
			DepthWriteEnabled: false,
			DepthCompare:      gputypes.CompareFunctionAlways,
			StencilFront:      sf.face,
			StencilBack:       sf.face,
			StencilReadMask:   sf.readMask,
			StencilWriteMask:  sf.writeMask,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create pipeline %s: %w", label, err)
	}
	return pipeline, nil
}

// lookupColored returns the colored pipeline matching the draw state and
// the stencil reference to set on the pass, if any.
func (ps *pipelineSet) lookupColored(state DrawState) (hal.RenderPipeline, uint32, bool) {
	p := ps.colored[state.Stencil.Mode][state.Blend]
	return p, uint32(state.Stencil.Value), state.Stencil.Mode != StencilNoop
}

// lookupTextured is the textured counterpart of lookupColored.
func (ps *pipelineSet) lookupTextured(state DrawState) (hal.RenderPipeline, uint32, bool) {
	p := ps.textured[state.Stencil.Mode][state.Blend]
	return p, uint32(state.Stencil.Value), state.Stencil.Mode != StencilNoop
}

func (ps *pipelineSet) destroy() {
	if ps.device == nil {
		return
	}
	for s := range ps.colored {
		for b := range ps.colored[s] {
			if ps.colored[s][b] != nil {
				ps.device.DestroyRenderPipeline(ps.colored[s][b])
				ps.colored[s][b] = nil
			}
			if ps.textured[s][b] != nil {
				ps.device.DestroyRenderPipeline(ps.textured[s][b])
				ps.textured[s][b] = nil
			}
		}
	}
	if ps.texturedLayout != nil {
		ps.device.DestroyPipelineLayout(ps.texturedLayout)
		ps.texturedLayout = nil
	}
	if ps.coloredLayout != nil {
		ps.device.DestroyPipelineLayout(ps.coloredLayout)
		ps.coloredLayout = nil
	}
	if ps.textureLayout != nil {
		ps.device.DestroyBindGroupLayout(ps.textureLayout)
		ps.textureLayout = nil
	}
	if ps.texturedShader != nil {
		ps.device.DestroyShaderModule(ps.texturedShader)
		ps.texturedShader = nil
	}
	if ps.coloredShader != nil {
		ps.device.DestroyShaderModule(ps.coloredShader)
		ps.coloredShader = nil
	}
}
