// Package raster is a CPU implementation of the 2D pipeline's shading
// contract: pass-through vertex stage, barycentric interpolation, texture
// sampling, and color tint multiply. It exists so the pipeline semantics
// can be executed and inspected without a GPU. It is not a performance
// path.
package raster

import "math"

// Vertex mirrors the textured pipeline's vertex input. Position is in
// clip space; the vertex stage maps it straight through as
// (x, y, 0, 1). For flat-colored geometry UV is unused.
type Vertex struct {
	Position [2]float32
	UV       [2]float32
	Color    [4]float32
}

// AddressMode selects UV wrapping outside [0, 1].
type AddressMode uint8

const (
	ClampToEdge AddressMode = iota
	Repeat
	MirrorRepeat
)

// FilterMode selects texel interpolation.
type FilterMode uint8

const (
	Nearest FilterMode = iota
	Linear
)

// Sampler configures texture addressing and filtering.
type Sampler struct {
	AddressU AddressMode
	AddressV AddressMode
	Filter   FilterMode
}

// Texture is an RGBA texture with float components in [0, 1].
type Texture struct {
	Width  int
	Height int
	Pix    [][4]float32
}

// NewTexture returns a transparent black texture.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pix:    make([][4]float32, width*height),
	}
}

// FromRGBA8 builds a texture from 8-bit RGBA pixels, row-major,
// len(pix) = width*height*4.
func FromRGBA8(width, height int, pix []byte) *Texture {
	t := NewTexture(width, height)
	for i := range t.Pix {
		t.Pix[i] = [4]float32{
			float32(pix[i*4]) / 255,
			float32(pix[i*4+1]) / 255,
			float32(pix[i*4+2]) / 255,
			float32(pix[i*4+3]) / 255,
		}
	}
	return t
}

// Texel returns the texel at (x, y) without filtering.
func (t *Texture) Texel(x, y int) [4]float32 {
	return t.Pix[y*t.Width+x]
}

// SetTexel stores a texel.
func (t *Texture) SetTexel(x, y int, c [4]float32) {
	t.Pix[y*t.Width+x] = c
}

func wrap(coord float32, mode AddressMode) float32 {
	f := float64(coord)
	switch mode {
	case Repeat:
		f -= math.Floor(f)
	case MirrorRepeat:
		period := math.Mod(f, 2)
		if period < 0 {
			period += 2
		}
		if period > 1 {
			period = 2 - period
		}
		f = period
	default:
		f = math.Min(1, math.Max(0, f))
	}
	return float32(f)
}

// Sample reads the texture at (u, v) with the sampler's addressing and
// filtering, matching GPU sampler semantics with texel centers at +0.5.
func (t *Texture) Sample(s Sampler, u, v float32) [4]float32 {
	u = wrap(u, s.AddressU)
	v = wrap(v, s.AddressV)

	if s.Filter == Nearest {
		x := clampInt(int(u*float32(t.Width)), 0, t.Width-1)
		y := clampInt(int(v*float32(t.Height)), 0, t.Height-1)
		return t.Texel(x, y)
	}

	// Bilinear. Shift by half a texel so interpolation happens between
	// texel centers.
	fx := u*float32(t.Width) - 0.5
	fy := v*float32(t.Height) - 0.5
	x0 := int(math.Floor(float64(fx)))
	y0 := int(math.Floor(float64(fy)))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	c00 := t.Texel(clampInt(x0, 0, t.Width-1), clampInt(y0, 0, t.Height-1))
	c10 := t.Texel(clampInt(x0+1, 0, t.Width-1), clampInt(y0, 0, t.Height-1))
	c01 := t.Texel(clampInt(x0, 0, t.Width-1), clampInt(y0+1, 0, t.Height-1))
	c11 := t.Texel(clampInt(x0+1, 0, t.Width-1), clampInt(y0+1, 0, t.Height-1))

	var out [4]float32
	for i := 0; i < 4; i++ {
		top := c00[i] + (c10[i]-c00[i])*tx
		bot := c01[i] + (c11[i]-c01[i])*tx
		out[i] = top + (bot-top)*ty
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Target is a render target with float RGBA pixels.
type Target struct {
	Width  int
	Height int
	Pix    [][4]float32
}

// NewTarget returns a target cleared to transparent black.
func NewTarget(width, height int) *Target {
	return &Target{
		Width:  width,
		Height: height,
		Pix:    make([][4]float32, width*height),
	}
}

// Clear fills the target with a color.
func (t *Target) Clear(color [4]float32) {
	for i := range t.Pix {
		t.Pix[i] = color
	}
}

// At returns the pixel at (x, y).
func (t *Target) At(x, y int) [4]float32 {
	return t.Pix[y*t.Width+x]
}

// DrawTriangles rasterizes vertices as a triangle list into dst,
// overwriting covered pixels (no blending). When tex is non-nil each
// fragment is sampled and multiplied componentwise by the interpolated
// vertex color; when tex is nil the interpolated color is written
// directly. Both windings are drawn.
func DrawTriangles(dst *Target, verts []Vertex, tex *Texture, s Sampler) {
	for i := 0; i+2 < len(verts); i += 3 {
		drawTriangle(dst, verts[i], verts[i+1], verts[i+2], tex, s)
	}
}

// toPixel maps clip space to framebuffer coordinates: x in [-1, 1] to
// [0, w], y in [-1, 1] to [h, 0] (clip +y is up, framebuffer y is down).
func toPixel(v [2]float32, w, h int) (float32, float32) {
	return (v[0] + 1) / 2 * float32(w), (1 - v[1]) / 2 * float32(h)
}

func drawTriangle(dst *Target, a, b, c Vertex, tex *Texture, s Sampler) {
	ax, ay := toPixel(a.Position, dst.Width, dst.Height)
	bx, by := toPixel(b.Position, dst.Width, dst.Height)
	cx, cy := toPixel(c.Position, dst.Width, dst.Height)

	area := (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
	if area == 0 {
		return
	}

	minX := clampInt(int(math.Floor(float64(min3(ax, bx, cx)))), 0, dst.Width-1)
	maxX := clampInt(int(math.Ceil(float64(max3(ax, bx, cx)))), 0, dst.Width-1)
	minY := clampInt(int(math.Floor(float64(min3(ay, by, cy)))), 0, dst.Height-1)
	maxY := clampInt(int(math.Ceil(float64(max3(ay, by, cy)))), 0, dst.Height-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			// Sample at the pixel center.
			px := float32(x) + 0.5
			py := float32(y) + 0.5

			wa := ((bx-px)*(cy-py) - (by-py)*(cx-px)) / area
			wb := ((cx-px)*(ay-py) - (cy-py)*(ax-px)) / area
			wc := 1 - wa - wb
			if wa < 0 || wb < 0 || wc < 0 {
				continue
			}

			var color [4]float32
			for i := 0; i < 4; i++ {
				color[i] = wa*a.Color[i] + wb*b.Color[i] + wc*c.Color[i]
			}

			if tex != nil {
				u := wa*a.UV[0] + wb*b.UV[0] + wc*c.UV[0]
				v := wa*a.UV[1] + wb*b.UV[1] + wc*c.UV[1]
				sampled := tex.Sample(s, u, v)
				for i := 0; i < 4; i++ {
					color[i] *= sampled[i]
				}
			}

			dst.Pix[y*dst.Width+x] = color
		}
	}
}

func min3(a, b, c float32) float32 { return min(a, min(b, c)) }
func max3(a, b, c float32) float32 { return max(a, max(b, c)) }
