package convert

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConvertMatchesScalar(t *testing.T) {
	var vals []float64
	var want []float64
	for _, c := range sampleRGBs() {
		vals = append(vals, float64(c.R), float64(c.G), float64(c.B))
		l := RGBToLab(c)
		want = append(want, l.L, l.A, l.B)
	}
	got, err := Convert(vals, SpaceRGB, SpaceLab)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("batch rgb→lab mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertDirectXYZLab(t *testing.T) {
	in := []float64{20.5169, 21.5861, 23.5035}
	got, err := Convert(in, SpaceXYZ, SpaceLab)
	if err != nil {
		t.Fatal(err)
	}
	want := XYZToLab(XYZ{in[0], in[1], in[2]})
	if math.Abs(got[0]-want.L) > 1e-12 || math.Abs(got[1]-want.A) > 1e-12 || math.Abs(got[2]-want.B) > 1e-12 {
		t.Errorf("Convert xyz→lab = %v, want %+v", got, want)
	}

	back, err := Convert(got, SpaceLab, SpaceXYZ)
	if err != nil {
		t.Fatal(err)
	}
	for i := range in {
		if math.Abs(back[i]-in[i]) > 0.01 {
			t.Errorf("lab→xyz round trip[%d] = %v, want %v", i, back[i], in[i])
		}
	}
}

func TestConvertIdentity(t *testing.T) {
	in := []float64{1, 2, 3, 4, 5, 6}
	got, err := Convert(in, SpaceLab, SpaceLab)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("identity conversion changed values (-want +got):\n%s", diff)
	}
}

func TestConvertThroughRGB(t *testing.T) {
	// HSV→HLS routes through 8-bit RGB, so it must agree with the
	// scalar composition exactly.
	c := RGB{200, 10, 10}
	h := RGBToHSV(c)
	got, err := Convert([]float64{h.H, h.S, h.V}, SpaceHSV, SpaceHLS)
	if err != nil {
		t.Fatal(err)
	}
	want := RGBToHLS(HSVToRGB(h))
	if got[0] != want.H || got[1] != want.L || got[2] != want.S {
		t.Errorf("Convert hsv→hls = %v, want %+v", got, want)
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name string
		vals []float64
		from Space
		to   Space
		want error
	}{
		{"bad length", []float64{1, 2}, SpaceRGB, SpaceLab, ErrInvalidShape},
		{"channel too big", []float64{0, 256, 0}, SpaceRGB, SpaceLab, ErrInvalidRange},
		{"negative channel", []float64{-1, 0, 0}, SpaceRGB, SpaceXYZ, ErrInvalidRange},
		{"fractional channel", []float64{0, 0, 3.5}, SpaceRGB, SpaceHSV, ErrInvalidRange},
		{"unknown space", []float64{0, 0, 0}, Space(9), SpaceRGB, ErrUnknownSpace},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Convert(tt.vals, tt.from, tt.to)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Convert error = %v, want %v", err, tt.want)
			}
			if out != nil {
				t.Errorf("Convert returned partial output %v alongside error", out)
			}
		})
	}
}
