// Package diff implements the CIEDE2000 perceptual color difference.
package diff

import (
	"math"

	"github.com/garth74/jcc/convert"
)

// KLCh holds the parametric weighting factors kL, kC and kH.
type KLCh struct {
	KL, KC, KH float64
}

// KLChDefault is the standard unit weighting.
var KLChDefault = KLCh{KL: 1, KC: 1, KH: 1}

// CIE2000 returns the CIEDE2000 difference between two Lab colors with
// unit weighting. The result is nonnegative and zero only for identical
// inputs. The metric is not exactly symmetric; callers must not rely on
// CIE2000(a, b) == CIE2000(b, a).
func CIE2000(lab1, lab2 convert.Lab) float64 {
	return CIE2000With(lab1, lab2, KLChDefault)
}

// CIE2000With is CIE2000 with explicit weighting factors. All hue
// arithmetic is carried out in degrees.
func CIE2000With(lab1, lab2 convert.Lab, k KLCh) float64 {
	const pow25To7 = 6103515625.0 // 25^7

	c1 := math.Hypot(lab1.A, lab1.B)
	c2 := math.Hypot(lab2.A, lab2.B)
	barC := (c1 + c2) / 2

	barC7 := pow7(barC)
	g := 0.5 * (1 - math.Sqrt(barC7/(barC7+pow25To7)))
	a1p := (1 + g) * lab1.A
	a2p := (1 + g) * lab2.A
	c1p := math.Hypot(a1p, lab1.B)
	c2p := math.Hypot(a2p, lab2.B)

	h1p := hueDeg(lab1.B, a1p)
	h2p := hueDeg(lab2.B, a2p)

	dLp := lab2.L - lab1.L
	dCp := c2p - c1p

	// Hue difference has its own branch rules: undefined when either
	// chroma is zero, otherwise wrapped into (-180, 180].
	var dhp float64
	switch {
	case c1p*c2p == 0:
		dhp = 0
	case math.Abs(h2p-h1p) <= 180:
		dhp = h2p - h1p
	case h2p-h1p > 180:
		dhp = h2p - h1p - 360
	default:
		dhp = h2p - h1p + 360
	}
	dHp := 2 * math.Sqrt(c1p*c2p) * sinDeg(dhp/2)

	barLp := (lab1.L + lab2.L) / 2
	barCp := (c1p + c2p) / 2

	// Mean hue branches independently of the difference above: with a
	// zero chroma it collapses to the single defined hue (or 0).
	var barHp float64
	switch {
	case c1p*c2p == 0:
		barHp = h1p + h2p
	case math.Abs(h1p-h2p) <= 180:
		barHp = (h1p + h2p) / 2
	case h1p+h2p < 360:
		barHp = (h1p + h2p + 360) / 2
	default:
		barHp = (h1p + h2p - 360) / 2
	}

	t := 1 - 0.17*cosDeg(barHp-30) + 0.24*cosDeg(2*barHp) +
		0.32*cosDeg(3*barHp+6) - 0.20*cosDeg(4*barHp-63)

	dTheta := 30 * math.Exp(-((barHp-275)/25)*((barHp-275)/25))
	barCp7 := pow7(barCp)
	rc := 2 * math.Sqrt(barCp7/(barCp7+pow25To7))
	rt := -sinDeg(2*dTheta) * rc

	sl := 1 + 0.015*(barLp-50)*(barLp-50)/math.Sqrt(20+(barLp-50)*(barLp-50))
	sc := 1 + 0.045*barCp
	sh := 1 + 0.015*barCp*t

	lTerm := dLp / (k.KL * sl)
	cTerm := dCp / (k.KC * sc)
	hTerm := dHp / (k.KH * sh)
	return math.Sqrt(lTerm*lTerm + cTerm*cTerm + hTerm*hTerm + rt*cTerm*hTerm)
}

// hueDeg returns atan2(b, a') as a hue angle in [0, 360), or 0 for the
// a'=b=0 singularity.
func hueDeg(b, ap float64) float64 {
	if b == 0 && ap == 0 {
		return 0
	}
	h := math.Atan2(b, ap) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return h
}

func pow7(v float64) float64 {
	v3 := v * v * v
	return v3 * v3 * v
}

func sinDeg(deg float64) float64 {
	return math.Sin(deg * math.Pi / 180)
}

func cosDeg(deg float64) float64 {
	return math.Cos(deg * math.Pi / 180)
}
