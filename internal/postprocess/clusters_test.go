package postprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"texmatte/internal/texture"
)

var opaque = texture.Color{R: 1, G: 1, B: 1, A: 1}

func TestRemoveSmallClusters(t *testing.T) {
	tex := texture.New(10, 10)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			tex.Set(x, y, opaque)
		}
	}
	tex.Set(8, 8, opaque)
	tex.Set(9, 9, opaque) // diagonal neighbour of (8,8)
	tex.Set(9, 0, opaque)

	out := RemoveSmallClusters(tex, 0.2)
	assert.Equal(t, opaque, out.At(2, 2))
	assert.True(t, out.At(9, 0).Transparent())
	assert.True(t, out.At(8, 8).Transparent())
	assert.True(t, out.At(9, 9).Transparent())
	assert.Equal(t, float32(1), tex.At(9, 0).A, "input untouched")
}

func TestRemoveSmallClustersKeepsDiagonalGroups(t *testing.T) {
	tex := texture.New(6, 6)
	for i := 0; i < 6; i++ {
		tex.Set(i, i, opaque)
	}
	tex.Set(5, 0, opaque)

	out := RemoveSmallClusters(tex, 0.5)
	for i := 0; i < 6; i++ {
		assert.Equal(t, opaque, out.At(i, i), "8-connected diagonal is one component")
	}
	assert.True(t, out.At(5, 0).Transparent())
}

func TestRemoveSmallClustersSingleComponent(t *testing.T) {
	tex := texture.New(4, 4)
	tex.Set(1, 1, opaque)
	out := RemoveSmallClusters(tex, 0.99)
	assert.Equal(t, opaque, out.At(1, 1))

	empty := RemoveSmallClusters(texture.New(3, 3), 0.5)
	assert.Equal(t, 9, len(empty.Pix))
}

func TestRemoveSmallClustersKeepsExactMinimum(t *testing.T) {
	tex := texture.New(10, 10)
	for x := 0; x < 8; x++ {
		tex.Set(x, 0, opaque)
	}
	tex.Set(0, 5, opaque)
	tex.Set(1, 5, opaque)
	tex.Set(9, 9, opaque)

	// 11 opaque pixels at ratio 0.2 give a minimum size of 2.
	out := RemoveSmallClusters(tex, 0.2)
	assert.Equal(t, opaque, out.At(0, 5), "a component of exactly the minimum size stays")
	assert.Equal(t, opaque, out.At(1, 5))
	assert.Equal(t, opaque, out.At(7, 0))
	assert.True(t, out.At(9, 9).Transparent())
}
