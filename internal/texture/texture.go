package texture

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/disintegration/imaging"
)

// Color is a straight-alpha RGBA value with channels in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Clear is fully transparent black.
var Clear = Color{}

// Transparent reports whether c has zero alpha.
func (c Color) Transparent() bool { return c.A == 0 }

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}

// NRGBA converts c to an 8-bit color, rounding and clamping each channel.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: clamp8(c.R), G: clamp8(c.G), B: clamp8(c.B), A: clamp8(c.A)}
}

// FromNRGBA converts an 8-bit color.
func FromNRGBA(c color.NRGBA) Color {
	return Color{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}

// Lerp blends RGB from a towards b by t. Alpha is taken from a.
func Lerp(a, b Color, t float32) Color {
	return Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A,
	}
}

// Texture is a row-major float RGBA raster. Pix[y*Width+x] holds pixel (x, y).
type Texture struct {
	Width  int
	Height int
	Pix    []Color
}

// New allocates a fully transparent texture.
func New(w, h int) *Texture {
	return &Texture{Width: w, Height: h, Pix: make([]Color, w*h)}
}

// NewFilled allocates a texture with every pixel set to c.
func NewFilled(w, h int, c Color) *Texture {
	t := New(w, h)
	for i := range t.Pix {
		t.Pix[i] = c
	}
	return t
}

// Index returns the Pix offset of (x, y). It does not bounds-check.
func (t *Texture) Index(x, y int) int { return y*t.Width + x }

// InBounds reports whether (x, y) lies inside the texture.
func (t *Texture) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < t.Width && y < t.Height
}

// At returns the pixel at (x, y), or Clear when out of bounds.
func (t *Texture) At(x, y int) Color {
	if !t.InBounds(x, y) {
		return Clear
	}
	return t.Pix[t.Index(x, y)]
}

// Set writes c at (x, y). Out-of-bounds writes are ignored.
func (t *Texture) Set(x, y int, c Color) {
	if !t.InBounds(x, y) {
		return
	}
	t.Pix[t.Index(x, y)] = c
}

// Square reports whether width equals height.
func (t *Texture) Square() bool { return t.Width == t.Height }

// Clone returns a deep copy.
func (t *Texture) Clone() *Texture {
	out := &Texture{Width: t.Width, Height: t.Height, Pix: make([]Color, len(t.Pix))}
	copy(out.Pix, t.Pix)
	return out
}

// FromImage converts any image into a texture anchored at (0, 0).
func FromImage(img image.Image) *Texture {
	src := imaging.Clone(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	t := New(w, h)
	for y := 0; y < h; y++ {
		off := y * src.Stride
		for x := 0; x < w; x++ {
			i := off + x*4
			t.Pix[y*w+x] = Color{
				R: float32(src.Pix[i]) / 255,
				G: float32(src.Pix[i+1]) / 255,
				B: float32(src.Pix[i+2]) / 255,
				A: float32(src.Pix[i+3]) / 255,
			}
		}
	}
	return t
}

// NRGBA converts the texture to an 8-bit image.
func (t *Texture) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.Width, t.Height))
	for y := 0; y < t.Height; y++ {
		off := y * img.Stride
		for x := 0; x < t.Width; x++ {
			c := t.Pix[y*t.Width+x]
			i := off + x*4
			img.Pix[i] = clamp8(c.R)
			img.Pix[i+1] = clamp8(c.G)
			img.Pix[i+2] = clamp8(c.B)
			img.Pix[i+3] = clamp8(c.A)
		}
	}
	return img
}

func clamp8(v float32) uint8 {
	v = math32.Round(v * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
