// Package matte removes backgrounds by color similarity to sample points and
// feathers the resulting alpha edge.
package matte

import (
	"texmatte/internal/logging"
	"texmatte/internal/sample"
	"texmatte/internal/texture"
)

// DefaultStackLimitFactor bounds the flood fill stack to this many times the
// pixel count.
const DefaultStackLimitFactor = 10

// Params controls classification and feathering. Ranges are enforced by
// the caller.
type Params struct {
	// ColorSensitivity is the RGB distance (0..255) below which a pixel
	// matches a sample.
	ColorSensitivity int
	// FeatherSize is the half-width of the feather window.
	FeatherSize int
	// FeatherAmount (0..100) is the percentage of the window that must be
	// transparent before a pixel fades out completely.
	FeatherAmount int
	// Continuous selects flood fill from the samples over global thresholding.
	Continuous bool
}

// Engine runs background removal. The zero value uses DefaultStackLimitFactor.
type Engine struct {
	// StackLimitFactor times width*height is the largest stack the flood
	// fill may hold before it gives up.
	StackLimitFactor float64
}

// Default is the engine used by RemoveBackground.
var Default = &Engine{StackLimitFactor: DefaultStackLimitFactor}

// RemoveBackground runs Default.RemoveBackground.
func RemoveBackground(tex *texture.Texture, p Params, samples sample.Points) *texture.Texture {
	return Default.RemoveBackground(tex, p, samples)
}

// RemoveBackground clears pixels matching the sample colors and feathers the
// remaining edge. The input texture is not modified.
func (e *Engine) RemoveBackground(tex *texture.Texture, p Params, samples sample.Points) *texture.Texture {
	work := tex.Clone()
	if len(samples) > 0 {
		m := matcher{colors: samples.Colors(), threshold: float32(p.ColorSensitivity)}
		if p.Continuous {
			e.floodFill(work, samples, m)
		} else {
			clearMatching(work, m)
		}
	}
	return Feather(work, p.FeatherSize, p.FeatherAmount)
}

type matcher struct {
	colors    []texture.Color
	threshold float32
}

func (m matcher) match(c texture.Color) bool {
	for _, s := range m.colors {
		if sample.DistanceRGB(c, s) < m.threshold {
			return true
		}
	}
	return false
}

// clearMatching tests every pixel independently.
func clearMatching(work *texture.Texture, m matcher) {
	for i, c := range work.Pix {
		if !c.Transparent() && m.match(c) {
			work.Pix[i].A = 0
		}
	}
}

// floodFill clears 4-connected matching regions reachable from each sample.
// It returns false if the stack limit was hit; work then holds the partial
// matte.
func (e *Engine) floodFill(work *texture.Texture, seeds sample.Points, m matcher) bool {
	w, h := work.Width, work.Height
	factor := e.StackLimitFactor
	if factor <= 0 {
		factor = DefaultStackLimitFactor
	}
	limit := int(factor * float64(w*h))

	stack := make([]int, 0, 1024)
	for si, seed := range seeds {
		x, y := seed.Position.Pixel()
		if !work.InBounds(x, y) || work.Pix[work.Index(x, y)].Transparent() {
			continue
		}

		stack = append(stack[:0], work.Index(x, y))
		for len(stack) > 0 {
			curr := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			c := work.Pix[curr]
			if c.Transparent() || !m.match(c) {
				continue
			}
			work.Pix[curr].A = 0

			cx, cy := curr%w, curr/w
			if cx > 0 && !work.Pix[curr-1].Transparent() {
				stack = append(stack, curr-1)
			}
			if cx < w-1 && !work.Pix[curr+1].Transparent() {
				stack = append(stack, curr+1)
			}
			if cy > 0 && !work.Pix[curr-w].Transparent() {
				stack = append(stack, curr-w)
			}
			if cy < h-1 && !work.Pix[curr+w].Transparent() {
				stack = append(stack, curr+w)
			}

			if len(stack) > limit {
				logging.Logger().Warn("matte: flood fill aborted, returning partial matte",
					"seed", si, "x", x, "y", y, "stack", len(stack), "limit", limit)
				return false
			}
		}
	}
	return true
}
