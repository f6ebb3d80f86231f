package palette

import (
	"fmt"
	"image"

	"github.com/garth74/jcc/convert"
)

// Quantizer applies a built lookup table to pixels and images. Every
// per-pixel operation is a single table read; the expensive
// nearest-neighbor search happened once at build time.
type Quantizer struct {
	palette *Palette
	table   Table
}

// NewQuantizer pairs a palette with its lookup table. The table must
// have been built for p: every entry has to name one of p's colors.
func NewQuantizer(p *Palette, t Table) (*Quantizer, error) {
	if len(t) != TableSize {
		return nil, fmt.Errorf("palette: table has %d entries, want %d", len(t), TableSize)
	}
	n := p.Len()
	for i, ix := range t {
		if int(ix) >= n {
			return nil, fmt.Errorf("palette: table entry %d refers to color %d, but palette %q has only %d colors", i, ix, p.Name(), n)
		}
	}
	return &Quantizer{palette: p, table: t}, nil
}

// Palette returns the palette q quantizes to.
func (q *Quantizer) Palette() *Palette { return q.palette }

// Pixel returns the palette index nearest to c and that entry's color.
func (q *Quantizer) Pixel(c convert.RGB) (uint16, convert.RGB) {
	ix := q.table.Lookup(c)
	return ix, q.palette.entries[ix].RGB
}

// Indices maps every pixel to its palette index, preserving order and
// length.
func (q *Quantizer) Indices(pixels []convert.RGB) []uint16 {
	out := make([]uint16, len(pixels))
	for i, c := range pixels {
		out[i] = q.table.Lookup(c)
	}
	return out
}

// RGBs maps every pixel to its nearest palette color, preserving order
// and length.
func (q *Quantizer) RGBs(pixels []convert.RGB) []convert.RGB {
	out := make([]convert.RGB, len(pixels))
	for i, c := range pixels {
		out[i] = q.palette.entries[q.table.Lookup(c)].RGB
	}
	return out
}

// ImageIndices returns the palette index of every pixel of img in
// row-major order.
func (q *Quantizer) ImageIndices(img image.Image) []uint16 {
	b := img.Bounds()
	out := make([]uint16, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			c := convert.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)}
			out = append(out, q.table.Lookup(c))
		}
	}
	return out
}

// Apply returns a copy of img with every pixel replaced by its nearest
// palette color. The output has the same bounds as the input; alpha is
// dropped and output pixels are opaque.
func (q *Quantizer) Apply(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			c := convert.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)}
			p := q.palette.entries[q.table.Lookup(c)].RGB
			i := out.PixOffset(x, y)
			out.Pix[i+0] = p.R
			out.Pix[i+1] = p.G
			out.Pix[i+2] = p.B
			out.Pix[i+3] = 0xff
		}
	}
	return out
}
