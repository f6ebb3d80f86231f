package extract

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/garth74/jcc/convert"
	"github.com/garth74/jcc/imageio"
	"github.com/garth74/jcc/palette"
)

func TestBuildPalette(t *testing.T) {
	ref, err := palette.NewRegistry().Get("x11")
	if err != nil {
		t.Fatal(err)
	}
	colors := []imageio.ColorCount{
		{Color: convert.RGB{R: 250, G: 5, B: 5}, Count: 100},
		{Color: convert.RGB{R: 5, G: 5, B: 250}, Count: 50},
	}
	p, err := BuildPalette("mine", colors, ref)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != "mine" || p.Len() != 2 {
		t.Fatalf("palette = %q with %d colors", p.Name(), p.Len())
	}
	// Sorted invariant puts the blue entry first; groups come from the
	// nearest x11 colors.
	if e := p.Entry(0); e.Group != "blue" || e.RGB != (convert.RGB{R: 5, G: 5, B: 250}) {
		t.Errorf("entry 0 = %+v", e)
	}
	if e := p.Entry(1); e.Group != "red" || e.RGB != (convert.RGB{R: 250, G: 5, B: 5}) {
		t.Errorf("entry 1 = %+v", e)
	}

	// The result is a valid palette CSV.
	var sb strings.Builder
	if err := p.WriteCSV(&sb); err != nil {
		t.Fatal(err)
	}
	back, err := palette.Parse(strings.NewReader(sb.String()), "mine")
	if err != nil {
		t.Fatal(err)
	}
	if back.Len() != p.Len() {
		t.Errorf("round trip lost entries: %d vs %d", back.Len(), p.Len())
	}
}

func TestColorsRejectsBadCount(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if _, err := Colors(img, 0); err == nil {
		t.Fatal("Colors accepted num=0")
	}
}

func TestColorsTwoToneImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			c := color.NRGBA{R: 255, A: 255}
			if y >= 48 {
				c = color.NRGBA{B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	got, err := Colors(img, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d colors, want 2", len(got))
	}
	if got[0].Count < got[1].Count {
		t.Errorf("colors not ranked by count: %v", got)
	}
	// The dominant extracted color should be the red one.
	if int(got[0].Color.R) <= int(got[0].Color.B) {
		t.Errorf("dominant color %+v is not reddish", got[0].Color)
	}
}
