package dem

import "math"

// MaxLatitude is the highest latitude representable in the tile scheme's
// Web Mercator projection. Latitudes beyond it are clamped, not rejected.
const MaxLatitude = 85.05112878

// Project converts a geographic coordinate to the key of the tile
// containing it at zoom and the fractional pixel position inside that
// tile, in [0, TileSize).
//
// Latitude is clamped to [-MaxLatitude, MaxLatitude] and longitude is
// normalized into [-180, 180) first, so the result is always a valid tile
// key and lookups are seamless across the antimeridian. Project never
// fails.
func Project(lat, lng float64, zoom int) (TileKey, float64, float64) {
	lat = min(max(lat, -MaxLatitude), MaxLatitude)
	lng = normalizeLng(lng)

	// World coordinates span [0, TileSize) at zoom 0.
	r := TileSize / 2 / math.Pi
	latRad := lat * math.Pi / 180
	lngRad := lng * math.Pi / 180
	worldX := r * (lngRad + math.Pi)
	worldY := -r/2*math.Log((1+math.Sin(latRad))/(1-math.Sin(latRad))) + TileSize/2

	n := 1 << zoom
	scale := float64(n)
	pixelX := worldX * scale
	pixelY := worldY * scale

	// Clamping latitude leaves pixelY a rounding error outside the pyramid
	// at the poles.
	extent := scale * TileSize
	pixelY = min(max(pixelY, 0), math.Nextafter(extent, 0))

	tileX := int(math.Floor(pixelX / TileSize))
	tileY := int(math.Floor(pixelY / TileSize))
	fracX := pixelX - float64(tileX)*TileSize
	fracY := pixelY - float64(tileY)*TileSize
	tileX = ((tileX % n) + n) % n

	return TileKey{Z: zoom, X: tileX, Y: tileY}, fracX, fracY
}

// normalizeLng normalizes lng modulo 360 into [-180, 180).
func normalizeLng(lng float64) float64 {
	lng = math.Mod(lng+180, 360)
	if lng < 0 {
		lng += 360
	}
	return lng - 180
}
