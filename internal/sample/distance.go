package sample

import (
	"github.com/chewxy/math32"

	"texmatte/internal/texture"
)

// DistanceRGB is the summed absolute RGB difference scaled to 0..255.
// Alpha is ignored. Used to classify background pixels.
func DistanceRGB(a, b texture.Color) float32 {
	d := math32.Abs(a.R-b.R) + math32.Abs(a.G-b.G) + math32.Abs(a.B-b.B)
	return d * 255 / 3
}

// DistanceRGBA is the summed absolute RGBA difference scaled to 0..255.
// Used to rank sample outliers.
func DistanceRGBA(a, b texture.Color) float32 {
	d := math32.Abs(a.R-b.R) + math32.Abs(a.G-b.G) + math32.Abs(a.B-b.B) + math32.Abs(a.A-b.A)
	return d * 255 / 4
}
