package diff

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jkl1337/go-chromath"
	"github.com/jkl1337/go-chromath/deltae"

	"github.com/garth74/jcc/convert"
)

// Pairs from the Sharma, Wu & Dalal CIEDE2000 test data set. The
// expected values are published to four decimal places and exercise
// every branch: the chroma adjustment, both hue wraparound cases and
// the rotation term.
var sharmaPairs = []struct {
	lab1, lab2 convert.Lab
	want       float64
}{
	{convert.Lab{L: 50.0000, A: 2.6772, B: -79.7751}, convert.Lab{L: 50.0000, A: 0.0000, B: -82.7485}, 2.0425},
	{convert.Lab{L: 50.0000, A: 3.1571, B: -77.2803}, convert.Lab{L: 50.0000, A: 0.0000, B: -82.7485}, 2.8615},
	{convert.Lab{L: 50.0000, A: 2.8361, B: -74.0200}, convert.Lab{L: 50.0000, A: 0.0000, B: -82.7485}, 3.4412},
	{convert.Lab{L: 50.0000, A: -1.3802, B: -84.2814}, convert.Lab{L: 50.0000, A: 0.0000, B: -82.7485}, 1.0000},
	{convert.Lab{L: 50.0000, A: -1.1848, B: -84.8006}, convert.Lab{L: 50.0000, A: 0.0000, B: -82.7485}, 1.0000},
	{convert.Lab{L: 50.0000, A: -0.9009, B: -85.5211}, convert.Lab{L: 50.0000, A: 0.0000, B: -82.7485}, 1.0000},
	{convert.Lab{L: 50.0000, A: 0.0000, B: 0.0000}, convert.Lab{L: 50.0000, A: -1.0000, B: 2.0000}, 2.3669},
	{convert.Lab{L: 50.0000, A: -1.0000, B: 2.0000}, convert.Lab{L: 50.0000, A: 0.0000, B: 0.0000}, 2.3669},
	{convert.Lab{L: 50.0000, A: 2.4900, B: -0.0010}, convert.Lab{L: 50.0000, A: -2.4900, B: 0.0012}, 7.2195},
	{convert.Lab{L: 60.2574, A: -34.0099, B: 36.2677}, convert.Lab{L: 60.4626, A: -34.1751, B: 39.4387}, 1.2644},
	{convert.Lab{L: 63.0109, A: -31.0961, B: -5.8663}, convert.Lab{L: 62.8187, A: -29.7946, B: -4.0864}, 1.2630},
	{convert.Lab{L: 61.2901, A: 3.7196, B: -5.3901}, convert.Lab{L: 61.4292, A: 2.2480, B: -4.9620}, 1.8731},
	{convert.Lab{L: 35.0831, A: -44.1164, B: 3.7933}, convert.Lab{L: 35.0232, A: -40.0716, B: 1.5901}, 1.8645},
	{convert.Lab{L: 22.7233, A: 20.0904, B: -46.6940}, convert.Lab{L: 23.0331, A: 14.9730, B: -42.5619}, 2.0373},
	{convert.Lab{L: 36.4612, A: 47.8580, B: 18.3852}, convert.Lab{L: 36.2715, A: 50.5065, B: 21.2231}, 1.4146},
	{convert.Lab{L: 90.8027, A: -2.0831, B: 1.4410}, convert.Lab{L: 91.1528, A: -1.6435, B: 0.0447}, 1.4441},
	{convert.Lab{L: 90.9257, A: -0.5406, B: -0.9208}, convert.Lab{L: 88.6381, A: -0.8985, B: -0.7239}, 1.5381},
	{convert.Lab{L: 6.7747, A: -0.2908, B: -2.4247}, convert.Lab{L: 5.8714, A: -0.0985, B: -2.2286}, 0.6377},
	{convert.Lab{L: 2.0776, A: 0.0795, B: -1.1350}, convert.Lab{L: 0.9033, A: -0.0636, B: -0.5514}, 0.9082},
}

func TestCIE2000Sharma(t *testing.T) {
	for i, tt := range sharmaPairs {
		got := CIE2000(tt.lab1, tt.lab2)
		if math.Abs(got-tt.want) > 1e-4 {
			t.Errorf("pair %d: CIE2000(%+v, %+v) = %.6f, want %.4f", i, tt.lab1, tt.lab2, got, tt.want)
		}
	}
}

func TestCIE2000Identity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		lab := convert.Lab{
			L: rng.Float64() * 100,
			A: rng.Float64()*255 - 128,
			B: rng.Float64()*255 - 128,
		}
		if d := CIE2000(lab, lab); d != 0 {
			t.Fatalf("CIE2000(%+v, itself) = %v, want 0", lab, d)
		}
	}
	if d := CIE2000(convert.Lab{}, convert.Lab{}); d != 0 {
		t.Errorf("CIE2000 of two zero-chroma blacks = %v, want 0", d)
	}
}

func TestCIE2000Nonnegative(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	randLab := func() convert.Lab {
		return convert.Lab{
			L: rng.Float64() * 100,
			A: rng.Float64()*255 - 128,
			B: rng.Float64()*255 - 128,
		}
	}
	for i := 0; i < 500; i++ {
		a, b := randLab(), randLab()
		if d := CIE2000(a, b); d < 0 || math.IsNaN(d) {
			t.Fatalf("CIE2000(%+v, %+v) = %v", a, b, d)
		}
	}
}

func TestCIE2000ZeroChroma(t *testing.T) {
	// One or both chromas at zero must not divide by zero.
	a := convert.Lab{L: 50}
	b := convert.Lab{L: 70, A: 10, B: -10}
	if d := CIE2000(a, b); math.IsNaN(d) || d <= 0 {
		t.Errorf("CIE2000 with zero chroma = %v", d)
	}
	if d := CIE2000(a, convert.Lab{L: 70}); math.IsNaN(d) || d <= 0 {
		t.Errorf("CIE2000 with both chromas zero = %v", d)
	}
}

func TestCIE2000AgainstChromath(t *testing.T) {
	// chromath's deltae leaves the mean hue unwrapped when it exceeds
	// 360°, where Sharma's formulation wraps it back into [0°, 360°).
	// The rotation term's Gaussian is centered on 275° and is not
	// 360°-periodic, so the two diverge by up to ~2e-5 for pairs whose
	// mean hue lands near the wrap. Hence the loose tolerance.
	rng := rand.New(rand.NewSource(13))
	for i := 0; i < 300; i++ {
		a := convert.Lab{L: rng.Float64() * 100, A: rng.Float64()*200 - 100, B: rng.Float64()*200 - 100}
		b := convert.Lab{L: rng.Float64() * 100, A: rng.Float64()*200 - 100, B: rng.Float64()*200 - 100}
		got := CIE2000(a, b)
		want := deltae.CIE2000(chromath.Lab{a.L, a.A, a.B}, chromath.Lab{b.L, b.A, b.B}, &deltae.KLChDefault)
		if math.Abs(got-want) > 1e-3 {
			t.Fatalf("CIE2000(%+v, %+v) = %.9f, chromath says %.9f", a, b, got, want)
		}
	}
}

func TestCIE2000Weights(t *testing.T) {
	a := convert.Lab{L: 50, A: 20, B: 30}
	b := convert.Lab{L: 55, A: 18, B: 25}
	unit := CIE2000With(a, b, KLCh{KL: 1, KC: 1, KH: 1})
	if got := CIE2000(a, b); got != unit {
		t.Errorf("CIE2000 = %v, CIE2000With unit weights = %v", got, unit)
	}
	// Doubling kL can only shrink the lightness term.
	if got := CIE2000With(a, b, KLCh{KL: 2, KC: 1, KH: 1}); got >= unit {
		t.Errorf("kL=2 gave %v, want less than %v", got, unit)
	}
}
