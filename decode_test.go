package dem_test

import (
	"math/rand/v2"
	"testing"

	"github.com/alecthomas/assert/v2"

	dem "github.com/archlabjp/go-dem"
)

func TestDecodePixel(t *testing.T) {
	for _, tc := range []struct {
		name       string
		r, g, b    uint16
		bitDepth   int
		resolution float64
		expected   dem.Sample
	}{
		{
			name:       "zero_elevation",
			r:          0,
			g:          0,
			b:          0,
			bitDepth:   8,
			resolution: 0.01,
			expected:   dem.Sample{Kind: dem.SampleElevation, Meters: 0},
		},
		{
			name:       "tokyo_station_fixture",
			r:          0,
			g:          1,
			b:          94,
			bitDepth:   8,
			resolution: 0.01,
			expected:   dem.Sample{Kind: dem.SampleElevation, Meters: 3.5},
		},
		{
			name:       "smallest_step",
			r:          0,
			g:          0,
			b:          1,
			bitDepth:   8,
			resolution: 0.01,
			expected:   dem.Sample{Kind: dem.SampleElevation, Meters: 0.01},
		},
		{
			name:       "no_data_sentinel",
			r:          128,
			g:          0,
			b:          0,
			bitDepth:   8,
			resolution: 0.01,
			expected:   dem.Sample{Kind: dem.SampleNoData},
		},
		{
			name:       "reserved_all_ones",
			r:          255,
			g:          255,
			b:          255,
			bitDepth:   8,
			resolution: 0.01,
			expected:   dem.Sample{Kind: dem.SampleInvalid},
		},
		{
			name:       "negative_wraparound",
			r:          255,
			g:          255,
			b:          254,
			bitDepth:   8,
			resolution: 0.01,
			expected:   dem.Sample{Kind: dem.SampleElevation, Meters: -0.02},
		},
		{
			name:       "largest_positive",
			r:          127,
			g:          255,
			b:          255,
			bitDepth:   8,
			resolution: 0.01,
			expected:   dem.Sample{Kind: dem.SampleElevation, Meters: float64(1<<23-1) * 0.01},
		},
		{
			name:       "resolution_scales",
			r:          0,
			g:          1,
			b:          94,
			bitDepth:   8,
			resolution: 1,
			expected:   dem.Sample{Kind: dem.SampleElevation, Meters: 350},
		},
		{
			name:       "no_data_sentinel_16bit",
			r:          1 << 15,
			g:          0,
			b:          0,
			bitDepth:   16,
			resolution: 0.01,
			expected:   dem.Sample{Kind: dem.SampleNoData},
		},
		{
			name:       "elevation_16bit",
			r:          0,
			g:          0,
			b:          100,
			bitDepth:   16,
			resolution: 0.01,
			expected:   dem.Sample{Kind: dem.SampleElevation, Meters: 1},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, dem.DecodePixel(tc.r, tc.g, tc.b, tc.bitDepth, tc.resolution))
		})
	}
}

func TestEncodeElevation_RoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(0, 0))
	for range 16384 {
		d := r.Int64N(1<<24) - 1<<23
		// The midpoint is the no-data sentinel and -1 packs to the
		// reserved all-ones pattern; neither is a representable elevation.
		if d == -(1<<23) || d == -1 {
			continue
		}
		meters := float64(d) * dem.GSIResolution
		red, green, blue := dem.EncodeElevation(meters, 8, dem.GSIResolution)
		sample := dem.DecodePixel(red, green, blue, 8, dem.GSIResolution)
		assert.Equal(t, dem.SampleElevation, sample.Kind)
		assert.Equal(t, meters, sample.Meters)
	}
}

func TestEncodeElevation_SentinelNeverZero(t *testing.T) {
	// The exact midpoint decodes to no data, never to elevation 0, and a
	// real zero elevation never decodes to the sentinel.
	assert.Equal(t, dem.SampleNoData, dem.DecodePixel(128, 0, 0, 8, dem.GSIResolution).Kind)
	zero := dem.DecodePixel(0, 0, 0, 8, dem.GSIResolution)
	assert.Equal(t, dem.SampleElevation, zero.Kind)
	assert.Equal(t, 0.0, zero.Meters)
}
