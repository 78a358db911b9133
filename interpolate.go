package dem

// InterpolateBilinear blends a 2x2 grid of decoded samples, ordered
// top-left, top-right, bottom-left, bottom-right, with blend factors
// fracX, fracY in [0, 1). Corners that do not carry an elevation are
// excluded and the remaining weights renormalized to sum to 1, so a
// missing corner never contributes a fabricated value.
//
// It returns the interpolated elevation in meters, the number of corners
// that carried an elevation, and whether a value could be computed at
// all.
func InterpolateBilinear(corners [4]Sample, fracX, fracY float64) (float64, int, bool) {
	weights := [4]float64{
		(1 - fracX) * (1 - fracY),
		fracX * (1 - fracY),
		(1 - fracX) * fracY,
		fracX * fracY,
	}
	var sum, weightSum float64
	valid := 0
	for i, corner := range corners {
		if !corner.Valid() {
			continue
		}
		valid++
		sum += weights[i] * corner.Meters
		weightSum += weights[i]
	}
	// weightSum is zero when the only valid corners have zero weight,
	// which leaves nothing to renormalize.
	if valid == 0 || weightSum == 0 {
		return 0, valid, false
	}
	return sum / weightSum, valid, true
}
