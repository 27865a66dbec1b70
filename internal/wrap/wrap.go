// Package wrap makes square textures tile seamlessly by cropping a border
// band and wrapping each border strip onto the opposite edge of the crop.
package wrap

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"texmatte/internal/logging"
	"texmatte/internal/texture"
)

var (
	// ErrNotSquare is returned for textures whose width and height differ.
	ErrNotSquare = errors.New("wrap: texture is not square")
	// ErrInvalidSize is returned when the inset would consume the whole texture.
	ErrInvalidSize = errors.New("wrap: wrap size leaves no interior")
)

// Inset returns the border width consumed on each side for a texture of the
// given width. wrapSize is a percentage of a quarter of the width.
func Inset(width, wrapSize int) int {
	return int(math32.Round(float32(wrapSize) / 100 * float32(width) / 4))
}

// Size returns the output width for the given input width and wrapSize.
func Size(width, wrapSize int) int {
	return width - 2*Inset(width, wrapSize)
}

// Texture crops inset pixels from every side and blends each border strip
// into the opposite edge of the crop. Pixels inside the border on both axes
// are corners and are not wrapped. A wrapSize yielding a zero inset returns a
// copy of tex.
func Texture(tex *texture.Texture, wrapSize int) (*texture.Texture, error) {
	if !tex.Square() {
		return nil, errors.Wrapf(ErrNotSquare, "wrap: %dx%d", tex.Width, tex.Height)
	}
	n := tex.Width
	inset := Inset(n, wrapSize)
	if inset == 0 {
		return tex.Clone(), nil
	}
	size := n - 2*inset
	if inset < 0 || size <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "wrap: size %d on %dpx", wrapSize, n)
	}

	out := texture.New(size, size)
	for y := 0; y < size; y++ {
		copy(out.Pix[y*size:(y+1)*size], tex.Pix[(y+inset)*n+inset:(y+inset)*n+inset+size])
	}

	overlay := make(map[int][]texture.Color)
	for y := 0; y < n; y++ {
		bandY := y < inset || y >= n-inset
		for x := 0; x < n; x++ {
			bandX := x < inset || x >= n-inset
			if bandX == bandY {
				continue
			}

			var outset, dx, dy, depth int
			if bandX {
				outset, dx = opposite(x, n, inset, size)
				dy = y - inset
				depth = dy
			} else {
				outset, dy = opposite(y, n, inset, size)
				dx = x - inset
				depth = dx
			}

			if dx < 0 || dy < 0 || dx >= size || dy >= size {
				logging.Logger().Warn("wrap: dropped out-of-range destination",
					"src_x", x, "src_y", y, "dst_x", dx, "dst_y", dy, "size", size)
				continue
			}

			ratio := edgeFalloff(outset, inset) * cornerFalloff(depth, size, inset)
			c := tex.Pix[y*n+x]
			c.A *= ratio
			if c.A <= 0 {
				continue
			}
			di := dy*size + dx
			overlay[di] = append(overlay[di], c)
		}
	}

	for di, colors := range overlay {
		ov := blend(colors)
		base := out.Pix[di]
		res := texture.Lerp(base, ov, ov.A)
		res.A = math32.Max(base.A, ov.A)
		out.Pix[di] = res
	}
	return out, nil
}

// opposite maps a band coordinate v to its outset (1 at the crop boundary,
// inset at the image edge) and its destination in crop space. The strip
// before the crop lands inside the far edge and vice versa, keeping the
// pixel order it had next to the crop boundary.
func opposite(v, n, inset, size int) (outset, dst int) {
	if v < inset {
		outset = inset - v
		return outset, size - outset
	}
	outset = v - (n - inset) + 1
	return outset, outset - 1
}

// edgeFalloff is 1 at the crop boundary and falls linearly toward 1/inset
// at the image edge.
func edgeFalloff(outset, inset int) float32 {
	return 1 - float32(outset-1)/float32(inset)
}

// cornerFalloff tapers a contribution as its destination nears a corner of
// the crop.
// depth is the destination coordinate along the edge.
func cornerFalloff(depth, size, inset int) float32 {
	d := depth
	if far := size - 1 - depth; far < d {
		d = far
	}
	if d >= inset {
		return 1
	}
	return float32(d+1) / float32(inset+1)
}

// blend folds the contributions for one pixel in ascending alpha order. Each
// step moves toward the next color by 0.5 plus the alpha gain, clamped to
// [0, 1]. The result carries the maximum alpha.
func blend(colors []texture.Color) texture.Color {
	sort.SliceStable(colors, func(i, j int) bool { return colors[i].A < colors[j].A })

	acc := colors[0]
	for i := 1; i < len(colors); i++ {
		t := clamp01(0.5 + colors[i].A - colors[i-1].A)
		acc = texture.Lerp(acc, colors[i], t)
	}
	acc.A = colors[len(colors)-1].A
	return acc
}

func clamp01(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}
