// Package extract derives new palettes from images. It reduces an
// image to a small adaptive color set with a median-cut quantizer,
// then names and groups each color by its perceptually nearest match
// in a reference palette.
package extract

import (
	"fmt"
	"image"

	"github.com/esimov/colorquant"

	"github.com/garth74/jcc/imageio"
	"github.com/garth74/jcc/palette"
)

// Colors returns the num most prevalent colors of img after reducing
// it to an adaptive num-color set, ranked by pixel count.
func Colors(img image.Image, num int) ([]imageio.ColorCount, error) {
	if num < 1 {
		return nil, fmt.Errorf("extract: need at least 1 color, got %d", num)
	}
	b := img.Bounds()
	reduced := image.NewNRGBA(image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y))
	colorquant.NoDither.Quantize(img, reduced, num, false, true)

	counts := imageio.CountColors(reduced)
	if len(counts) < num {
		return nil, fmt.Errorf("extract: image yields only %d distinct colors, want %d", len(counts), num)
	}
	return imageio.RankColors(counts)[:num], nil
}

// BuildPalette assembles extracted colors into a palette. Each color
// borrows the group and name of its nearest entry in ref, typically
// the built-in x11 palette.
func BuildPalette(name string, colors []imageio.ColorCount, ref *palette.Palette) (*palette.Palette, error) {
	entries := make([]palette.Entry, 0, len(colors))
	for _, cc := range colors {
		e := ref.Entry(int(ref.Nearest(cc.Color)))
		entries = append(entries, palette.Entry{
			Group: e.Group,
			Name:  e.Name,
			RGB:   cc.Color,
		})
	}
	palette.Sort(entries)
	return palette.New(name, entries)
}
