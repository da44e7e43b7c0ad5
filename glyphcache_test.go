package wgpu2d

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func newTestGlyphCache(t *testing.T, r *Renderer) *GlyphCache {
	t.Helper()
	cache, err := NewGlyphCache(r.Textures(), goregular.TTF, 24)
	if err != nil {
		t.Fatalf("NewGlyphCache failed: %v", err)
	}
	return cache
}

func TestGlyphCacheBasicGlyph(t *testing.T) {
	r, _, cleanup := newTestRenderer(t)
	defer cleanup()
	cache := newTestGlyphCache(t, r)
	defer cache.Close()

	g, err := cache.Glyph('A')
	if err != nil {
		t.Fatalf("Glyph('A') failed: %v", err)
	}
	if g.Size[0] <= 0 || g.Size[1] <= 0 {
		t.Errorf("glyph size = %v, want positive", g.Size)
	}
	if g.Advance <= 0 {
		t.Errorf("advance = %v, want positive", g.Advance)
	}
	if g.UV[2] <= g.UV[0] || g.UV[3] <= g.UV[1] {
		t.Errorf("UV rect %v is empty", g.UV)
	}

	// Second lookup hits the cache and returns the same entry.
	again, err := cache.Glyph('A')
	if err != nil {
		t.Fatalf("cached Glyph('A') failed: %v", err)
	}
	if again != g {
		t.Errorf("cached glyph = %+v, want %+v", again, g)
	}
}

func TestGlyphCachePacksDistinctRegions(t *testing.T) {
	r, _, cleanup := newTestRenderer(t)
	defer cleanup()
	cache := newTestGlyphCache(t, r)
	defer cache.Close()

	a, err := cache.Glyph('a')
	if err != nil {
		t.Fatalf("Glyph('a') failed: %v", err)
	}
	b, err := cache.Glyph('b')
	if err != nil {
		t.Fatalf("Glyph('b') failed: %v", err)
	}
	if a.UV == b.UV {
		t.Error("distinct glyphs share an atlas region")
	}
}

func TestGlyphCacheMetrics(t *testing.T) {
	r, _, cleanup := newTestRenderer(t)
	defer cleanup()
	cache := newTestGlyphCache(t, r)
	defer cache.Close()

	ascent, descent, lineHeight := cache.Metrics()
	if ascent <= 0 || descent <= 0 {
		t.Errorf("metrics ascent=%v descent=%v, want positive", ascent, descent)
	}
	if lineHeight < ascent {
		t.Errorf("line height %v smaller than ascent %v", lineHeight, ascent)
	}
}

func TestGlyphCacheDrawText(t *testing.T) {
	r, dev, cleanup := newTestRenderer(t)
	defer cleanup()
	cache := newTestGlyphCache(t, r)
	defer cache.Close()

	view, viewCleanup := createTargetView(t, dev, 256, 128)
	defer viewCleanup()

	viewport := NewViewport(256, 128)
	frame, err := r.Draw(view, 256, 128, viewport, func(g *Graphics) {
		if err := cache.DrawText(g, DefaultDrawState(), White, g.Transform(), 10, 50, "Hello, wgpu2d"); err != nil {
			t.Errorf("DrawText failed: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if err := frame.Submit(); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
}
