// Package imageio decodes and encodes the image files the CLI works
// with and flattens images into pixel slices.
package imageio

import (
	"image"
	_ "image/jpeg"
	"image/png"
	"os"

	_ "golang.org/x/image/webp"

	"github.com/garth74/jcc/convert"
)

// Load decodes the image at path. PNG, JPEG and WebP are supported.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// SavePNG writes img to path as a PNG file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Pixels returns img's pixels as 8-bit RGB triplets in row-major
// order. Alpha is dropped.
func Pixels(img image.Image) []convert.RGB {
	b := img.Bounds()
	out := make([]convert.RGB, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			out = append(out, convert.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)})
		}
	}
	return out
}
