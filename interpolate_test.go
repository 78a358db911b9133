package dem_test

import (
	"math"
	"testing"

	"github.com/alecthomas/assert/v2"

	dem "github.com/archlabjp/go-dem"
)

func TestInterpolateBilinear(t *testing.T) {
	corners := [4]dem.Sample{
		{Meters: 10},
		{Meters: 20},
		{Meters: 30},
		{Meters: 40},
	}
	for _, tc := range []struct {
		name     string
		fracX    float64
		fracY    float64
		expected float64
	}{
		{name: "top_left_corner", fracX: 0, fracY: 0, expected: 10},
		{name: "top_edge", fracX: 0.5, fracY: 0, expected: 15},
		{name: "left_edge", fracX: 0, fracY: 0.5, expected: 20},
		{name: "center", fracX: 0.5, fracY: 0.5, expected: 25},
		{name: "quarter", fracX: 0.25, fracY: 0, expected: 12.5},
	} {
		t.Run(tc.name, func(t *testing.T) {
			meters, valid, ok := dem.InterpolateBilinear(corners, tc.fracX, tc.fracY)
			assert.True(t, ok)
			assert.Equal(t, 4, valid)
			assert.Equal(t, tc.expected, meters)
		})
	}
}

func TestInterpolateBilinear_PartialCoverage(t *testing.T) {
	corners := [4]dem.Sample{
		{Meters: 10},
		{Meters: 20},
		{Kind: dem.SampleNoData},
		{Meters: 40},
	}
	meters, valid, ok := dem.InterpolateBilinear(corners, 0.5, 0.5)
	assert.True(t, ok)
	assert.Equal(t, 3, valid)
	// Renormalized average of the three valid corners, uninfluenced by
	// the missing one.
	assert.True(t, math.Abs(meters-70.0/3) < 1e-12)
	assert.True(t, meters > 10 && meters < 40)
}

func TestInterpolateBilinear_NearestCornerOnly(t *testing.T) {
	corners := [4]dem.Sample{
		{Meters: 10},
		{Kind: dem.SampleNoData},
		{Kind: dem.SampleInvalid},
		{Kind: dem.SampleNoData},
	}
	meters, valid, ok := dem.InterpolateBilinear(corners, 0.5, 0)
	assert.True(t, ok)
	assert.Equal(t, 1, valid)
	assert.Equal(t, 10.0, meters)
}

func TestInterpolateBilinear_NoUsableCorners(t *testing.T) {
	corners := [4]dem.Sample{
		{Kind: dem.SampleNoData},
		{Kind: dem.SampleInvalid},
		{Kind: dem.SampleNoData},
		{Kind: dem.SampleNoData},
	}
	_, valid, ok := dem.InterpolateBilinear(corners, 0.5, 0.5)
	assert.False(t, ok)
	assert.Equal(t, 0, valid)
}

func TestInterpolateBilinear_ZeroWeightCornerOnly(t *testing.T) {
	// The only valid corner has bilinear weight 0, so there is nothing to
	// renormalize.
	corners := [4]dem.Sample{
		{Kind: dem.SampleNoData},
		{Kind: dem.SampleNoData},
		{Kind: dem.SampleNoData},
		{Meters: 40},
	}
	_, valid, ok := dem.InterpolateBilinear(corners, 0, 0)
	assert.False(t, ok)
	assert.Equal(t, 1, valid)
}
