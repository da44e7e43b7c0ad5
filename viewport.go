package wgpu2d

// Viewport describes the drawable region of a render target. It mirrors
// the viewport information a windowing layer hands to a 2D back-end:
// a pixel rectangle plus the drawable size in pixels and the window size
// in points (they differ on high-DPI displays).
type Viewport struct {
	// Rect is the viewport rectangle [x, y, w, h] in pixels.
	Rect [4]int32

	// DrawSize is the drawable surface size in pixels.
	DrawSize [2]uint32

	// WindowSize is the window size in points.
	WindowSize [2]float64
}

// NewViewport returns a viewport covering a drawable surface of the given
// pixel size, with the window size assumed equal to the draw size.
func NewViewport(width, height uint32) Viewport {
	return Viewport{
		Rect:       [4]int32{0, 0, int32(width), int32(height)},
		DrawSize:   [2]uint32{width, height},
		WindowSize: [2]float64{float64(width), float64(height)},
	}
}

// Transform returns the matrix mapping window coordinates (origin top-left,
// y down) to the clip space the pass-through vertex stage expects (origin
// center, y up, range [-1, 1]).
//
// The shaders in this package perform no projection of their own, so every
// position submitted to a triangle list must be pre-multiplied by this
// matrix (or be in clip space already).
func (v Viewport) Transform() Matrix {
	sx := 2.0 / float32(v.WindowSize[0])
	sy := -2.0 / float32(v.WindowSize[1])
	return Matrix{
		A: sx, B: 0, C: -1,
		D: 0, E: sy, F: 1,
	}
}

// Matrix is a row-major 2D affine transform:
//
//	| A B C |
//	| D E F |
//
// applied as x' = A*x + B*y + C, y' = D*x + E*y + F.
type Matrix struct {
	A, B, C float32
	D, E, F float32
}

// IdentityMatrix returns the identity transform.
func IdentityMatrix() Matrix {
	return Matrix{A: 1, E: 1}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float32) (float32, float32) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// Mul returns the composition m∘n: applying the result is equivalent to
// applying n first, then m.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.B*n.D,
		B: m.A*n.B + m.B*n.E,
		C: m.A*n.C + m.B*n.F + m.C,
		D: m.D*n.A + m.E*n.D,
		E: m.D*n.B + m.E*n.E,
		F: m.D*n.C + m.E*n.F + m.F,
	}
}

// Translate returns m composed with a translation by (tx, ty).
func (m Matrix) Translate(tx, ty float32) Matrix {
	return m.Mul(Matrix{A: 1, C: tx, E: 1, F: ty})
}

// Scale returns m composed with a scale by (sx, sy).
func (m Matrix) Scale(sx, sy float32) Matrix {
	return m.Mul(Matrix{A: sx, E: sy})
}
