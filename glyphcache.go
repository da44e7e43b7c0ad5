package wgpu2d

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// glyphAtlasSize is the width and height of the glyph atlas texture.
const glyphAtlasSize = 1024

// glyphPadding separates packed glyphs to avoid filtering bleed.
const glyphPadding = 1

// Glyph describes one cached glyph inside the atlas.
type Glyph struct {
	// UV is the atlas region [u0, v0, u1, v1] in texture coordinates.
	UV [4]float32

	// Size is the glyph bitmap size in pixels.
	Size [2]float32

	// Offset positions the bitmap relative to the pen, y down from the
	// baseline.
	Offset [2]float32

	// Advance is the pen advance in pixels.
	Advance float32
}

// GlyphCache rasterizes glyphs on demand into a texture atlas, packing
// them on horizontal shelves. All glyphs of one cache share a single
// texture, so text rendered from it batches into one draw.
type GlyphCache struct {
	face    font.Face
	texture *Texture
	atlas   *image.RGBA
	glyphs  map[rune]Glyph

	shelfX int
	shelfY int
	shelfH int
	dirty  bool
}

// NewGlyphCache parses TTF/OTF font data and prepares an atlas for
// glyphs rasterized at the given pixel size.
func NewGlyphCache(ctx *TextureContext, fontData []byte, size float64) (*GlyphCache, error) {
	parsed, err := opentype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}

	texture, err := ctx.NewTexture(glyphAtlasSize, glyphAtlasSize, TextureSettings{
		MinFilter: FilterLinear,
		MagFilter: FilterLinear,
	})
	if err != nil {
		face.Close()
		return nil, err
	}

	return &GlyphCache{
		face:    face,
		texture: texture,
		atlas:   image.NewRGBA(image.Rect(0, 0, glyphAtlasSize, glyphAtlasSize)),
		glyphs:  make(map[rune]Glyph),
	}, nil
}

// Glyph returns the cached entry for r, rasterizing and packing it on
// first use.
func (c *GlyphCache) Glyph(r rune) (Glyph, error) {
	if g, ok := c.glyphs[r]; ok {
		return g, nil
	}

	dr, mask, maskp, advance, ok := c.face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return Glyph{}, fmt.Errorf("wgpu2d: font has no glyph for %q", r)
	}

	w, h := dr.Dx(), dr.Dy()
	x, y, err := c.pack(w, h)
	if err != nil {
		return Glyph{}, err
	}

	dst := image.Rect(x, y, x+w, y+h)
	draw.DrawMask(c.atlas, dst, image.White, image.Point{}, mask, maskp, draw.Over)
	c.dirty = true

	g := Glyph{
		UV: [4]float32{
			float32(x) / glyphAtlasSize,
			float32(y) / glyphAtlasSize,
			float32(x+w) / glyphAtlasSize,
			float32(y+h) / glyphAtlasSize,
		},
		Size:    [2]float32{float32(w), float32(h)},
		Offset:  [2]float32{float32(dr.Min.X), float32(dr.Min.Y)},
		Advance: float32(advance) / 64,
	}
	c.glyphs[r] = g
	return g, nil
}

// pack reserves a w by h region on the current shelf, opening a new
// shelf when the current one is full.
func (c *GlyphCache) pack(w, h int) (int, int, error) {
	if w > glyphAtlasSize || h > glyphAtlasSize {
		return 0, 0, fmt.Errorf("wgpu2d: glyph %dx%d exceeds atlas size", w, h)
	}
	if c.shelfX+w > glyphAtlasSize {
		c.shelfY += c.shelfH + glyphPadding
		c.shelfX = 0
		c.shelfH = 0
	}
	if c.shelfY+h > glyphAtlasSize {
		return 0, 0, ErrAtlasFull
	}
	x, y := c.shelfX, c.shelfY
	c.shelfX += w + glyphPadding
	if h > c.shelfH {
		c.shelfH = h
	}
	return x, y, nil
}

// Texture uploads any pending atlas changes and returns the atlas
// texture for binding.
func (c *GlyphCache) Texture() (*Texture, error) {
	if c.dirty {
		if err := c.texture.UpdateBytes(c.atlas.Pix); err != nil {
			return nil, err
		}
		c.dirty = false
	}
	return c.texture, nil
}

// Metrics returns the face metrics in pixels.
func (c *GlyphCache) Metrics() (ascent, descent, lineHeight float32) {
	m := c.face.Metrics()
	return float32(m.Ascent) / 64, float32(m.Descent) / 64, float32(m.Height) / 64
}

// DrawText draws a string with its baseline origin at (x, y) in window
// coordinates, transformed to clip space by transform. Missing glyphs
// are skipped.
func (c *GlyphCache) DrawText(g *Graphics, state DrawState, color Color, transform Matrix, x, y float32, text string) error {
	// Rasterize everything first so the atlas upload precedes the draw.
	pen := x
	var positions, uvs [][2]float32
	for _, r := range text {
		glyph, err := c.Glyph(r)
		if err != nil {
			if err == ErrAtlasFull {
				return err
			}
			continue
		}

		x0 := pen + glyph.Offset[0]
		y0 := y + glyph.Offset[1]
		x1 := x0 + glyph.Size[0]
		y1 := y0 + glyph.Size[1]
		pen += glyph.Advance
		if glyph.Size[0] == 0 || glyph.Size[1] == 0 {
			continue
		}

		quad := [4][2]float32{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
		for i := range quad {
			quad[i][0], quad[i][1] = transform.Apply(quad[i][0], quad[i][1])
		}
		u0, v0, u1, v1 := glyph.UV[0], glyph.UV[1], glyph.UV[2], glyph.UV[3]
		quadUV := [4][2]float32{{u0, v0}, {u1, v0}, {u1, v1}, {u0, v1}}

		for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
			positions = append(positions, quad[i])
			uvs = append(uvs, quadUV[i])
		}
	}
	if len(positions) == 0 {
		return nil
	}

	texture, err := c.Texture()
	if err != nil {
		return err
	}
	g.TexturedTriangles(state, color, texture, positions, uvs)
	return g.Err()
}

// Close releases the font face and the atlas texture.
func (c *GlyphCache) Close() {
	if c.face != nil {
		c.face.Close()
		c.face = nil
	}
	if c.texture != nil {
		c.texture.Destroy()
		c.texture = nil
	}
}
