// Package postprocess holds clean-up filters applied after matting.
package postprocess

import "texmatte/internal/texture"

// RemoveSmallClusters clears opaque islands left behind by matting.
// minRatio is the minimum fraction of all non-transparent pixels a
// component needs to survive. A texture with one component is returned as a
// copy.
func RemoveSmallClusters(tex *texture.Texture, minRatio float64) *texture.Texture {
	w, h := tex.Width, tex.Height
	result := tex.Clone()

	totalAlpha := 0
	for _, c := range tex.Pix {
		if !c.Transparent() {
			totalAlpha++
		}
	}
	if totalAlpha == 0 {
		return result
	}

	labels, compSizes := label(tex)
	if len(compSizes) <= 1 {
		return result
	}

	minSize := int(float64(totalAlpha) * minRatio)
	for i := 0; i < w*h; i++ {
		if labels[i] >= 0 && compSizes[labels[i]] < minSize {
			result.Pix[i].A = 0
		}
	}
	return result
}

// label assigns 8-connected component ids to non-transparent pixels.
// Transparent pixels get -1.
func label(tex *texture.Texture) ([]int, []int) {
	w, h := tex.Width, tex.Height
	labels := make([]int, w*h)
	for i := range labels {
		labels[i] = -1
	}
	var compSizes []int
	compID := 0

	dx := [8]int{-1, 0, 1, -1, 1, -1, 0, 1}
	dy := [8]int{-1, -1, -1, 0, 0, 1, 1, 1}

	queue := make([]int, 0, 1024)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if tex.Pix[idx].Transparent() || labels[idx] >= 0 {
				continue
			}

			// BFS from this pixel
			queue = append(queue[:0], idx)
			labels[idx] = compID
			size := 0

			for len(queue) > 0 {
				curr := queue[0]
				queue = queue[1:]
				size++

				cy := curr / w
				cx := curr % w
				for d := 0; d < 8; d++ {
					nx := cx + dx[d]
					ny := cy + dy[d]
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					ni := ny*w + nx
					if !tex.Pix[ni].Transparent() && labels[ni] < 0 {
						labels[ni] = compID
						queue = append(queue, ni)
					}
				}
			}

			compSizes = append(compSizes, size)
			compID++
		}
	}
	return labels, compSizes
}
