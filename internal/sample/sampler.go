package sample

import "texmatte/internal/texture"

// PickCorners samples four points inset from each corner by
// paddingFraction of the texture dimension. Order: top-left, top-right,
// bottom-left, bottom-right.
func PickCorners(tex *texture.Texture, paddingFraction float32) Points {
	maxX := float32(tex.Width - 1)
	maxY := float32(tex.Height - 1)
	padX := paddingFraction * maxX
	padY := paddingFraction * maxY

	positions := []Position{
		{X: padX, Y: padY},
		{X: maxX - padX, Y: padY},
		{X: padX, Y: maxY - padY},
		{X: maxX - padX, Y: maxY - padY},
	}
	return FromPixels(tex, positions)
}

// FromPixels builds sample points from explicit positions, reading each
// color at the rounded coordinate. Out-of-range positions sample Clear.
func FromPixels(tex *texture.Texture, positions []Position) Points {
	points := make(Points, len(positions))
	for i, pos := range positions {
		x, y := pos.Pixel()
		points[i] = Point{Color: tex.At(x, y), Position: pos}
	}
	return points
}

// DropOutlier scores each point by its mean RGBA distance to the others and
// returns every point except the first one with the highest score. The
// returned points carry their Similarity. The input is not modified.
func DropOutlier(points Points) Points {
	if len(points) < 2 {
		out := make(Points, len(points))
		copy(out, points)
		return out
	}

	scored := make(Points, len(points))
	copy(scored, points)

	worst := 0
	for i := range scored {
		var sum float32
		for j := range scored {
			if i == j {
				continue
			}
			sum += DistanceRGBA(scored[i].Color, scored[j].Color)
		}
		scored[i].Similarity = sum / float32(len(scored))
		if scored[i].Similarity > scored[worst].Similarity {
			worst = i
		}
	}

	out := make(Points, 0, len(scored)-1)
	out = append(out, scored[:worst]...)
	return append(out, scored[worst+1:]...)
}

// PickBackgroundSamples picks the four corners and drops the outlier.
func PickBackgroundSamples(tex *texture.Texture, paddingFraction float32) Points {
	return DropOutlier(PickCorners(tex, paddingFraction))
}
