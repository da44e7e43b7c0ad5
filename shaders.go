package wgpu2d

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/textured.wgsl
var texturedWGSL string

//go:embed shaders/colored.wgsl
var coloredWGSL string

// ShaderSources returns the WGSL sources for the colored and textured
// pipelines, for hosts that compile shaders through their own toolchain.
func ShaderSources() (colored, textured string) {
	return coloredWGSL, texturedWGSL
}

// CompileSPIRV compiles WGSL source to SPIR-V words. It is exported for
// hosts that feed shader modules to backends expecting SPIR-V directly.
func CompileSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

func createShaderModule(device hal.Device, label, wgslSource string) (hal.ShaderModule, error) {
	words, err := CompileSPIRV(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: words},
	})
	if err != nil {
		return nil, fmt.Errorf("create shader module %s: %w", label, err)
	}
	return module, nil
}
