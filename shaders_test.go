package wgpu2d

import (
	"strings"
	"testing"
)

// spirvMagic is the first word of every valid SPIR-V module.
const spirvMagic = 0x07230203

func TestShaderSources(t *testing.T) {
	colored, textured := ShaderSources()
	for name, src := range map[string]string{"colored": colored, "textured": textured} {
		if !strings.Contains(src, "vs_main") || !strings.Contains(src, "fs_main") {
			t.Errorf("%s shader missing entry points", name)
		}
	}
	if !strings.Contains(textured, "textureSample") {
		t.Error("textured shader does not sample a texture")
	}
	if strings.Contains(colored, "textureSample") {
		t.Error("colored shader samples a texture")
	}
}

func TestCompileSPIRV(t *testing.T) {
	colored, textured := ShaderSources()
	for name, src := range map[string]string{"colored": colored, "textured": textured} {
		words, err := CompileSPIRV(src)
		if err != nil {
			t.Fatalf("%s: CompileSPIRV failed: %v", name, err)
		}
		if len(words) == 0 {
			t.Fatalf("%s: empty SPIR-V output", name)
		}
		if words[0] != spirvMagic {
			t.Errorf("%s: first word = %#x, want SPIR-V magic %#x", name, words[0], spirvMagic)
		}
	}
}

func TestCompileSPIRVRejectsInvalidSource(t *testing.T) {
	if _, err := CompileSPIRV("not wgsl at all {"); err == nil {
		t.Error("invalid WGSL compiled without error")
	}
}
