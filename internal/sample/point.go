// Package sample picks and maintains background color exemplars.
package sample

import (
	"fmt"

	"github.com/chewxy/math32"

	"texmatte/internal/texture"
)

// Position is a pixel location in texture space.
type Position struct {
	X float32 `json:"x" yaml:"x" toml:"x"`
	Y float32 `json:"y" yaml:"y" toml:"y"`
}

// Pixel rounds the position to integer pixel coordinates.
func (p Position) Pixel() (int, int) {
	return int(math32.Round(p.X)), int(math32.Round(p.Y))
}

// Point is one background exemplar. Similarity is scratch space written by
// DropOutlier and is not part of a point's identity.
type Point struct {
	Color      texture.Color `json:"color"`
	Position   Position      `json:"position"`
	Similarity float32       `json:"-"`
}

// Equal compares color and position.
func (p Point) Equal(o Point) bool {
	return p.Color == o.Color && p.Position == o.Position
}

func (p Point) String() string {
	c := p.Color.NRGBA()
	return fmt.Sprintf("(%.1f, %.1f) #%02x%02x%02x%02x", p.Position.X, p.Position.Y, c.R, c.G, c.B, c.A)
}

// Points is an ordered set of samples. Order matters for Equal.
type Points []Point

// Equal reports element-wise equality in order.
func (ps Points) Equal(other Points) bool {
	if len(ps) != len(other) {
		return false
	}
	for i := range ps {
		if !ps[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Colors returns the sample colors in order.
func (ps Points) Colors() []texture.Color {
	out := make([]texture.Color, len(ps))
	for i, p := range ps {
		out[i] = p.Color
	}
	return out
}
