package matte

import (
	"github.com/chewxy/math32"

	"texmatte/internal/texture"
)

// Feather fades non-transparent pixels by the share of fully transparent
// pixels in the (1+2*size)² window around them. Pixels whose window leaves
// the image are left alone. Alpha never increases.
func Feather(tex *texture.Texture, size, amount int) *texture.Texture {
	out := tex.Clone()
	if size <= 0 {
		return out
	}

	w, h := tex.Width, tex.Height
	win := 1 + 2*size
	maxAlpha := float32(win*win) * (1 - float32(amount)/100)

	sat := transparentSAT(tex)
	for y := size; y < h-size; y++ {
		for x := size; x < w-size; x++ {
			i := y*w + x
			c := tex.Pix[i]
			if c.Transparent() {
				continue
			}
			count := sat.sum(x-size, y-size, x+size, y+size)
			if count == 0 {
				continue
			}

			ratio := float32(1)
			if maxAlpha > 0 {
				ratio = math32.Min(1, float32(count)/maxAlpha)
			}
			if a := 1 - ratio; a < c.A {
				out.Pix[i].A = a
			}
		}
	}
	return out
}

// summedArea is a (w+1)x(h+1) integral image of transparent-pixel counts.
type summedArea struct {
	w    int
	vals []int
}

func transparentSAT(tex *texture.Texture) summedArea {
	w, h := tex.Width, tex.Height
	s := summedArea{w: w + 1, vals: make([]int, (w+1)*(h+1))}
	for y := 0; y < h; y++ {
		row := 0
		for x := 0; x < w; x++ {
			if tex.Pix[y*w+x].Transparent() {
				row++
			}
			s.vals[(y+1)*s.w+x+1] = s.vals[y*s.w+x+1] + row
		}
	}
	return s
}

// sum counts transparent pixels in the inclusive rectangle.
func (s summedArea) sum(x0, y0, x1, y1 int) int {
	return s.vals[(y1+1)*s.w+x1+1] - s.vals[y0*s.w+x1+1] - s.vals[(y1+1)*s.w+x0] + s.vals[y0*s.w+x0]
}
