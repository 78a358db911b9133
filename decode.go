package dem

import "math"

// A SampleKind discriminates the interpretations of a decoded pixel.
type SampleKind int

const (
	// SampleElevation is a concrete elevation in meters.
	SampleElevation SampleKind = iota
	// SampleNoData means the pixel carries no elevation (ocean or
	// unmapped).
	SampleNoData
	// SampleInvalid means the pixel uses a reserved pattern and must not
	// be used.
	SampleInvalid
)

// A Sample is one decoded pixel. Meters is meaningful only when Kind is
// SampleElevation.
type Sample struct {
	Kind   SampleKind
	Meters float64
}

// Valid reports whether s carries an elevation.
func (s Sample) Valid() bool {
	return s.Kind == SampleElevation
}

// DecodePixel decodes the packed elevation in a pixel's channel values.
// The channels pack into a single unsigned integer, most significant
// first:
//
//	d = r<<(2*bitDepth) | g<<bitDepth | b
//
// Values below the midpoint 1<<(3*bitDepth-1) are non-negative
// elevations, the midpoint itself is the no-data sentinel, and values
// above it wrap around to negative elevations. The reserved all-ones
// pattern decodes to SampleInvalid. The elevation is d scaled by
// resolution, the dataset's meters per unit.
func DecodePixel(r, g, b uint16, bitDepth int, resolution float64) Sample {
	shift := uint(bitDepth)
	d := uint64(r)<<(2*shift) | uint64(g)<<shift | uint64(b)
	full := uint64(1) << (3 * shift)
	half := full >> 1
	switch {
	case d == full-1:
		return Sample{Kind: SampleInvalid}
	case d == half:
		return Sample{Kind: SampleNoData}
	case d < half:
		return Sample{Kind: SampleElevation, Meters: float64(d) * resolution}
	default:
		return Sample{Kind: SampleElevation, Meters: -float64(full-d) * resolution}
	}
}

// EncodeElevation is the inverse of [DecodePixel]. Elevations are
// quantized to the nearest multiple of resolution.
func EncodeElevation(meters float64, bitDepth int, resolution float64) (r, g, b uint16) {
	shift := uint(bitDepth)
	full := int64(1) << (3 * shift)
	mask := int64(1)<<shift - 1
	d := int64(math.Round(meters / resolution))
	if d < 0 {
		d += full
	}
	return uint16(d >> (2 * shift) & mask), uint16(d >> shift & mask), uint16(d & mask)
}
