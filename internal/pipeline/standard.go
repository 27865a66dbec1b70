package pipeline

import (
	"texmatte/internal/extend"
	"texmatte/internal/matte"
	"texmatte/internal/postprocess"
	"texmatte/internal/sample"
	"texmatte/internal/texture"
	"texmatte/internal/wrap"
)

// Stage names in precedence order.
const (
	StageVariant = "variant"
	StageMatte   = "matte"
	StageExtend  = "extend"
	StageWrap    = "wrap"
)

// MatteOptions configures background removal.
type MatteOptions struct {
	Params matte.Params
	// Samples are used as given. Otherwise Positions are read from the stage
	// input. When both are empty, corners are picked with SamplePadding and
	// the outlier is dropped.
	Samples       sample.Points
	Positions     []sample.Position
	SamplePadding float32
	// Despeckle, when positive, removes opaque islands smaller than this
	// fraction of the opaque area after matting.
	Despeckle float64
	Engine    *matte.Engine
}

// ExtendOptions configures canvas extension.
type ExtendOptions struct {
	Percent    int
	Background texture.Color
}

// WrapOptions configures seamless wrapping.
type WrapOptions struct {
	Size int
}

// Options selects stages for Standard. A nil field disables that stage.
type Options struct {
	Variant *texture.Texture
	Matte   *MatteOptions
	Extend  *ExtendOptions
	Wrap    *WrapOptions
}

// Standard builds the fixed order variant, matte, extend, wrap. The returned
// Samples pointer is filled with the points the matte stage used.
func Standard(opts Options) ([]Stage, *sample.Points) {
	used := new(sample.Points)

	variant := opts.Variant
	stages := []Stage{
		{
			Name:    StageVariant,
			Enabled: variant != nil,
			Produce: func(*texture.Texture) (*texture.Texture, error) {
				return variant.Clone(), nil
			},
		},
		{
			Name:    StageMatte,
			Enabled: opts.Matte != nil,
			Produce: func(in *texture.Texture) (*texture.Texture, error) {
				m := opts.Matte
				points := m.Samples
				switch {
				case len(points) > 0:
				case len(m.Positions) > 0:
					points = sample.FromPixels(in, m.Positions)
				default:
					points = sample.PickBackgroundSamples(in, m.SamplePadding)
				}
				*used = points

				engine := m.Engine
				if engine == nil {
					engine = matte.Default
				}
				out := engine.RemoveBackground(in, m.Params, points)
				if m.Despeckle > 0 {
					out = postprocess.RemoveSmallClusters(out, m.Despeckle)
				}
				return out, nil
			},
		},
		{
			Name:    StageExtend,
			Enabled: opts.Extend != nil,
			Produce: func(in *texture.Texture) (*texture.Texture, error) {
				return extend.Texture(in, opts.Extend.Percent, opts.Extend.Background), nil
			},
		},
		{
			Name:    StageWrap,
			Enabled: opts.Wrap != nil,
			Produce: func(in *texture.Texture) (*texture.Texture, error) {
				return wrap.Texture(in, opts.Wrap.Size)
			},
		},
	}
	return stages, used
}
