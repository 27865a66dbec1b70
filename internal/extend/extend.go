// Package extend pads a texture onto a larger square canvas.
package extend

import (
	"github.com/chewxy/math32"

	"texmatte/internal/texture"
)

// Pixels converts a percentage of width into a padding in pixels.
func Pixels(width, percent int) int {
	return int(math32.Round(float32(percent) / 100 * float32(width)))
}

// Texture centers tex on a canvas Pixels(width, percent) larger. New area
// and fully transparent source pixels take bg's RGB with zero alpha, so an
// edit step sees the background color wherever the image is clear.
func Texture(tex *texture.Texture, percent int, bg texture.Color) *texture.Texture {
	return ByPixels(tex, Pixels(tex.Width, percent), bg)
}

// ByPixels is Texture with the padding given in pixels.
func ByPixels(tex *texture.Texture, extend int, bg texture.Color) *texture.Texture {
	oldSize := tex.Width
	newSize := oldSize + extend
	empty := bg.WithAlpha(0)
	out := texture.NewFilled(newSize, newSize, empty)

	off := newSize/2 - oldSize/2
	for y := 0; y < tex.Height; y++ {
		for x := 0; x < tex.Width; x++ {
			c := tex.Pix[y*tex.Width+x]
			if c.Transparent() {
				c = empty
			}
			out.Set(x+off, y+off, c)
		}
	}
	return out
}
