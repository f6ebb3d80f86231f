// Package convert implements exact color space conversions between
// 8-bit sRGB and the XYZ, Lab, HSV and HLS spaces.
//
// XYZ values are scaled to [0, 100] and Lab values are relative to the
// D65 reference white. Hue is always expressed in degrees [0, 360).
// The RGB↔XYZ↔Lab path is lossy but round trips within 0.01; the
// RGB↔HSV and RGB↔HLS paths round trip bit-exactly for every 8-bit
// triplet.
package convert

import (
	"fmt"
	"math"
)

// RGB is an 8-bit sRGB triplet.
type RGB struct {
	R, G, B uint8
}

// Hex returns the 7-character "#rrggbb" form of c.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// XYZ is a CIE XYZ triplet scaled so the D65 white point is
// (95.047, 100, 108.883).
type XYZ struct {
	X, Y, Z float64
}

// Lab is a CIE L*a*b* triplet relative to D65. L is in [0, 100].
type Lab struct {
	L, A, B float64
}

// HSV holds hue in degrees [0, 360) and saturation/value in [0, 1].
type HSV struct {
	H, S, V float64
}

// HLS holds hue in degrees [0, 360) and lightness/saturation in [0, 1].
// The component order follows the HLS convention (lightness second).
type HLS struct {
	H, L, S float64
}

// D65 reference white, same scale as XYZ.
const (
	refX = 95.047
	refY = 100.0
	refZ = 108.883
)

// RGBToXYZ linearizes c with the inverse sRGB gamma and applies the
// sRGB-to-XYZ matrix.
func RGBToXYZ(c RGB) XYZ {
	r := invGamma(float64(c.R) / 255)
	g := invGamma(float64(c.G) / 255)
	b := invGamma(float64(c.B) / 255)
	return XYZ{
		X: (0.412453*r + 0.357580*g + 0.180423*b) * 100,
		Y: (0.212671*r + 0.715160*g + 0.072169*b) * 100,
		Z: (0.019334*r + 0.119193*g + 0.950227*b) * 100,
	}
}

// XYZToRGB applies the inverse matrix and the forward sRGB gamma.
// Channels are rounded and clipped to [0, 255]; out-of-gamut XYZ
// values therefore clip rather than error.
func XYZToRGB(c XYZ) RGB {
	x, y, z := c.X/100, c.Y/100, c.Z/100
	r := gamma(3.240479*x - 1.537150*y - 0.498535*z)
	g := gamma(-0.969256*x + 1.875992*y + 0.041556*z)
	b := gamma(0.055648*x - 0.204043*y + 1.057311*z)
	return RGB{round8(r * 255), round8(g * 255), round8(b * 255)}
}

// XYZToLab normalizes by the D65 white and applies the CIE f(t)
// piecewise function.
func XYZToLab(c XYZ) Lab {
	fx := labF(c.X / refX)
	fy := labF(c.Y / refY)
	fz := labF(c.Z / refZ)
	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// LabToXYZ inverts XYZToLab.
func LabToXYZ(c Lab) XYZ {
	fy := (c.L + 16) / 116
	fx := fy + c.A/500
	fz := fy - c.B/200
	return XYZ{
		X: refX * labFInv(fx),
		Y: refY * labFInv(fy),
		Z: refZ * labFInv(fz),
	}
}

// RGBToLab converts through XYZ.
func RGBToLab(c RGB) Lab {
	return XYZToLab(RGBToXYZ(c))
}

// LabToRGB converts through XYZ.
func LabToRGB(c Lab) RGB {
	return XYZToRGB(LabToXYZ(c))
}

// RGBToHSV converts with the max/min-channel formulas. Achromatic
// input (R=G=B) yields hue 0 and saturation 0.
func RGBToHSV(c RGB) HSV {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255
	maxc := math.Max(r, math.Max(g, b))
	minc := math.Min(r, math.Min(g, b))
	if maxc == minc {
		return HSV{H: 0, S: 0, V: maxc}
	}
	d := maxc - minc
	return HSV{H: hue(r, g, b, maxc, d), S: d / maxc, V: maxc}
}

// HSVToRGB inverts RGBToHSV, rounding channels to 8 bits.
func HSVToRGB(c HSV) RGB {
	if c.S == 0 {
		v := round8(c.V * 255)
		return RGB{v, v, v}
	}
	h := math.Mod(c.H, 360) / 60
	if h < 0 {
		h += 6
	}
	i := int(h) % 6
	f := h - math.Floor(h)
	p := c.V * (1 - c.S)
	q := c.V * (1 - c.S*f)
	t := c.V * (1 - c.S*(1-f))
	var r, g, b float64
	switch i {
	case 0:
		r, g, b = c.V, t, p
	case 1:
		r, g, b = q, c.V, p
	case 2:
		r, g, b = p, c.V, t
	case 3:
		r, g, b = p, q, c.V
	case 4:
		r, g, b = t, p, c.V
	default:
		r, g, b = c.V, p, q
	}
	return RGB{round8(r * 255), round8(g * 255), round8(b * 255)}
}

// RGBToHLS converts with the max/min-channel formulas. Achromatic
// input yields hue 0 and saturation 0.
func RGBToHLS(c RGB) HLS {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255
	maxc := math.Max(r, math.Max(g, b))
	minc := math.Min(r, math.Min(g, b))
	l := (maxc + minc) / 2
	if maxc == minc {
		return HLS{H: 0, L: l, S: 0}
	}
	d := maxc - minc
	var s float64
	if l <= 0.5 {
		s = d / (maxc + minc)
	} else {
		s = d / (2 - maxc - minc)
	}
	return HLS{H: hue(r, g, b, maxc, d), L: l, S: s}
}

// HLSToRGB inverts RGBToHLS, rounding channels to 8 bits.
func HLSToRGB(c HLS) RGB {
	if c.S == 0 {
		v := round8(c.L * 255)
		return RGB{v, v, v}
	}
	var m2 float64
	if c.L <= 0.5 {
		m2 = c.L * (1 + c.S)
	} else {
		m2 = c.L + c.S - c.L*c.S
	}
	m1 := 2*c.L - m2
	h := c.H / 360
	r := hlsChannel(m1, m2, h+1.0/3.0)
	g := hlsChannel(m1, m2, h)
	b := hlsChannel(m1, m2, h-1.0/3.0)
	return RGB{round8(r * 255), round8(g * 255), round8(b * 255)}
}

// RGBToIndex returns the linear index of c in the 256³ RGB cube:
// red varies slowest, blue fastest.
func RGBToIndex(c RGB) int {
	return int(c.R)<<16 | int(c.G)<<8 | int(c.B)
}

// IndexToRGB inverts RGBToIndex.
func IndexToRGB(i int) RGB {
	return RGB{R: uint8(i >> 16), G: uint8(i >> 8), B: uint8(i)}
}

// RGBToLabAll converts every color in cs, preserving order.
func RGBToLabAll(cs []RGB) []Lab {
	out := make([]Lab, len(cs))
	for i, c := range cs {
		out[i] = RGBToLab(c)
	}
	return out
}

// hue computes the hue angle in degrees [0, 360) given normalized
// channels, their max and the max-min delta.
func hue(r, g, b, maxc, d float64) float64 {
	var h float64
	switch maxc {
	case r:
		h = (g - b) / d
	case g:
		h = 2 + (b-r)/d
	default:
		h = 4 + (r-g)/d
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h
}

func hlsChannel(m1, m2, h float64) float64 {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	switch {
	case h < 1.0/6.0:
		return m1 + (m2-m1)*h*6
	case h < 0.5:
		return m2
	case h < 2.0/3.0:
		return m1 + (m2-m1)*(2.0/3.0-h)*6
	default:
		return m1
	}
}

func invGamma(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func gamma(c float64) float64 {
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}

func labF(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta*delta*delta {
		return math.Cbrt(t)
	}
	return t/(3*delta*delta) + 4.0/29.0
}

func labFInv(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta {
		return t * t * t
	}
	return 3 * delta * delta * (t - 4.0/29.0)
}

func round8(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
