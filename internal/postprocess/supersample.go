package postprocess

import (
	"image"

	"github.com/chewxy/math32"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"

	"texmatte/internal/texture"
)

// Downsample shrinks tex so its longer side is targetSize, filtering in
// premultiplied alpha to avoid dark fringes around cleared background.
// Textures already within targetSize are returned as a copy.
func Downsample(tex *texture.Texture, targetSize int) *texture.Texture {
	w, h := tex.Width, tex.Height
	if targetSize <= 0 || (w <= targetSize && h <= targetSize) {
		return tex.Clone()
	}

	dstW, dstH := targetSize, targetSize
	if w > h {
		dstH = max(1, int(math32.Round(float32(h)*float32(targetSize)/float32(w))))
	} else if h > w {
		dstW = max(1, int(math32.Round(float32(w)*float32(targetSize)/float32(h))))
	}

	// Premultiply alpha
	premul := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, c := range tex.Pix {
		o := i * 4
		premul.Pix[o] = to8(c.R * c.A)
		premul.Pix[o+1] = to8(c.G * c.A)
		premul.Pix[o+2] = to8(c.B * c.A)
		premul.Pix[o+3] = to8(c.A)
	}

	scaled := resize.Resize(uint(dstW), uint(dstH), premul, resize.Lanczos3)
	dst, ok := scaled.(*image.RGBA)
	if !ok {
		dst = image.NewRGBA(image.Rect(0, 0, dstW, dstH))
		draw.Draw(dst, dst.Bounds(), scaled, scaled.Bounds().Min, draw.Src)
	}

	// Unpremultiply alpha
	out := texture.New(dstW, dstH)
	for y := 0; y < dstH; y++ {
		for x := 0; x < dstW; x++ {
			si := dst.PixOffset(x, y)
			a := float32(dst.Pix[si+3]) / 255
			c := texture.Color{A: a}
			if a > 0 {
				c.R = math32.Min(1, float32(dst.Pix[si])/255/a)
				c.G = math32.Min(1, float32(dst.Pix[si+1])/255/a)
				c.B = math32.Min(1, float32(dst.Pix[si+2])/255/a)
			}
			out.Pix[y*dstW+x] = c
		}
	}
	return out
}

func to8(v float32) uint8 {
	v = math32.Round(v * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
