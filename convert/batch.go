package convert

import (
	"errors"
	"fmt"
	"math"
)

// Space identifies one of the supported color spaces.
type Space int

const (
	SpaceRGB Space = iota
	SpaceXYZ
	SpaceLab
	SpaceHSV
	SpaceHLS
)

func (s Space) String() string {
	switch s {
	case SpaceRGB:
		return "rgb"
	case SpaceXYZ:
		return "xyz"
	case SpaceLab:
		return "lab"
	case SpaceHSV:
		return "hsv"
	case SpaceHLS:
		return "hls"
	}
	return fmt.Sprintf("Space(%d)", int(s))
}

var (
	// ErrInvalidShape reports input whose length is not a multiple of 3.
	ErrInvalidShape = errors.New("convert: triplet slice length must be a multiple of 3")
	// ErrInvalidRange reports an RGB channel outside the 8-bit range.
	ErrInvalidRange = errors.New("convert: RGB channel out of range")
	// ErrUnknownSpace reports an unrecognized Space value.
	ErrUnknownSpace = errors.New("convert: unknown color space")
)

// Convert converts a flat slice of triplets from one color space to
// another, preserving length and order. Spaces other than the direct
// pairs are routed through RGB, so e.g. HSV→Lab quantizes to 8 bits on
// the way. Inputs are validated eagerly: a malformed length yields
// ErrInvalidShape and a non-integral or out-of-range RGB channel
// yields ErrInvalidRange, in both cases with no partial output.
func Convert(vals []float64, from, to Space) ([]float64, error) {
	if len(vals)%3 != 0 {
		return nil, fmt.Errorf("%w: got length %d", ErrInvalidShape, len(vals))
	}
	if err := checkSpace(from); err != nil {
		return nil, err
	}
	if err := checkSpace(to); err != nil {
		return nil, err
	}
	if from == SpaceRGB {
		for i, v := range vals {
			if v < 0 || v > 255 || v != math.Trunc(v) {
				return nil, fmt.Errorf("%w: value %v at offset %d", ErrInvalidRange, v, i)
			}
		}
	}
	out := make([]float64, len(vals))
	for i := 0; i < len(vals); i += 3 {
		a, b, c := convertOne(vals[i], vals[i+1], vals[i+2], from, to)
		out[i], out[i+1], out[i+2] = a, b, c
	}
	return out, nil
}

func checkSpace(s Space) error {
	if s < SpaceRGB || s > SpaceHLS {
		return fmt.Errorf("%w: %v", ErrUnknownSpace, s)
	}
	return nil
}

func convertOne(x, y, z float64, from, to Space) (float64, float64, float64) {
	if from == to {
		return x, y, z
	}
	// Direct non-RGB pair.
	if from == SpaceXYZ && to == SpaceLab {
		l := XYZToLab(XYZ{x, y, z})
		return l.L, l.A, l.B
	}
	if from == SpaceLab && to == SpaceXYZ {
		c := LabToXYZ(Lab{x, y, z})
		return c.X, c.Y, c.Z
	}
	return fromRGB(toRGB(x, y, z, from), to)
}

func toRGB(x, y, z float64, from Space) RGB {
	switch from {
	case SpaceRGB:
		return RGB{uint8(x), uint8(y), uint8(z)}
	case SpaceXYZ:
		return XYZToRGB(XYZ{x, y, z})
	case SpaceLab:
		return LabToRGB(Lab{x, y, z})
	case SpaceHSV:
		return HSVToRGB(HSV{x, y, z})
	default:
		return HLSToRGB(HLS{x, y, z})
	}
}

func fromRGB(c RGB, to Space) (float64, float64, float64) {
	switch to {
	case SpaceRGB:
		return float64(c.R), float64(c.G), float64(c.B)
	case SpaceXYZ:
		v := RGBToXYZ(c)
		return v.X, v.Y, v.Z
	case SpaceLab:
		v := RGBToLab(c)
		return v.L, v.A, v.B
	case SpaceHSV:
		v := RGBToHSV(c)
		return v.H, v.S, v.V
	default:
		v := RGBToHLS(c)
		return v.H, v.L, v.S
	}
}
