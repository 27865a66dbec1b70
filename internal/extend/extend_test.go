package extend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"texmatte/internal/texture"
)

var (
	red = texture.Color{R: 1, A: 1}
	bg  = texture.Color{R: 0.2, G: 0.4, B: 0.6, A: 1}
)

func TestPixels(t *testing.T) {
	assert.Equal(t, 0, Pixels(64, 0))
	assert.Equal(t, 16, Pixels(64, 25))
	assert.Equal(t, 64, Pixels(64, 100))
	assert.Equal(t, 3, Pixels(10, 25))
}

func TestExtendCentersContent(t *testing.T) {
	tex := texture.NewFilled(4, 4, red)
	tex.Set(0, 0, texture.Color{G: 1, A: 1})

	out := Texture(tex, 50, bg)
	require.Equal(t, 6, out.Width)
	require.Equal(t, 6, out.Height)

	// off = 6/2 - 4/2
	assert.Equal(t, texture.Color{G: 1, A: 1}, out.At(1, 1))
	assert.Equal(t, red, out.At(4, 4))
	assert.Equal(t, bg.WithAlpha(0), out.At(0, 0))
	assert.Equal(t, bg.WithAlpha(0), out.At(5, 5))
}

func TestExtendOddPaddingFloors(t *testing.T) {
	tex := texture.NewFilled(4, 4, red)
	out := ByPixels(tex, 3, bg)
	require.Equal(t, 7, out.Width)

	// off = 7/2 - 4/2 = 1
	assert.Equal(t, bg.WithAlpha(0), out.At(0, 0))
	assert.Equal(t, red, out.At(1, 1))
	assert.Equal(t, red, out.At(4, 4))
	assert.Equal(t, bg.WithAlpha(0), out.At(5, 5))
}

func TestExtendRecolorsClearedPixels(t *testing.T) {
	tex := texture.NewFilled(2, 2, red)
	tex.Set(1, 0, texture.Color{R: 0.9, G: 0.9, B: 0.9, A: 0})
	tex.Set(0, 1, red.WithAlpha(0.5))

	out := ByPixels(tex, 2, bg)
	assert.Equal(t, bg.WithAlpha(0), out.At(2, 1))
	assert.Equal(t, red.WithAlpha(0.5), out.At(1, 2), "partial alpha is kept as is")
	assert.Equal(t, texture.Color{R: 0.9, G: 0.9, B: 0.9, A: 0}, tex.At(1, 0), "input untouched")
}

func TestExtendZero(t *testing.T) {
	tex := texture.NewFilled(3, 3, red)
	out := Texture(tex, 0, bg)
	assert.Equal(t, tex.Pix, out.Pix)
}
