package imageio

import (
	"image"
	"sort"

	"github.com/garth74/jcc/convert"
)

// ColorCount pairs a color with the number of pixels it occupies.
type ColorCount struct {
	Color convert.RGB
	Count int
}

// CountColors returns each distinct color in img and the number of
// pixels it occupies. Fully transparent pixels are skipped.
func CountColors(img image.Image) map[convert.RGB]int {
	m := make(map[convert.RGB]int)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			m[convert.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)}]++
		}
	}
	return m
}

// RankColors sorts the counts by descending pixel count. Equal counts
// fall back to RGB index order so the result is deterministic.
func RankColors(m map[convert.RGB]int) []ColorCount {
	cc := make([]ColorCount, 0, len(m))
	for c, n := range m {
		cc = append(cc, ColorCount{Color: c, Count: n})
	}
	sort.Slice(cc, func(i, j int) bool {
		if cc[i].Count != cc[j].Count {
			return cc[i].Count > cc[j].Count
		}
		return convert.RGBToIndex(cc[i].Color) < convert.RGBToIndex(cc[j].Color)
	})
	return cc
}
