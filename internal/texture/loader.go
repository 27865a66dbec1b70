package texture

import (
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "github.com/ftrvxmtrx/tga"
	"github.com/pkg/errors"
	_ "golang.org/x/image/webp"
)

// LoadTexture decodes a PNG, JPEG, TGA or WebP file into a texture.
// EXIF orientation is applied for JPEG input.
func LoadTexture(path string) (*Texture, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrapf(err, "texture: decode %s", path)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, errors.Errorf("texture: empty image %s", path)
	}
	return FromImage(img), nil
}
