package dem_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/alecthomas/assert/v2"

	dem "github.com/archlabjp/go-dem"
)

func TestNewTileFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.SetNRGBA(1, 0, color.NRGBA{R: 0, G: 1, B: 94, A: 255})
	img.SetNRGBA(3, 1, color.NRGBA{R: 128, G: 0, B: 0, A: 255})

	tile := dem.NewTileFromImage(img)
	assert.Equal(t, 4, tile.Width)
	assert.Equal(t, 2, tile.Height)
	assert.Equal(t, 8, tile.BitDepth)

	r, g, b := tile.Pixel(1, 0)
	assert.Equal(t, dem.Sample{Kind: dem.SampleElevation, Meters: 3.5}, dem.DecodePixel(r, g, b, tile.BitDepth, dem.GSIResolution))
	r, g, b = tile.Pixel(3, 1)
	assert.Equal(t, dem.SampleNoData, dem.DecodePixel(r, g, b, tile.BitDepth, dem.GSIResolution).Kind)
	r, g, b = tile.Pixel(0, 0)
	assert.Equal(t, [3]uint16{0, 0, 0}, [3]uint16{r, g, b})
}

func TestNewTileFromImage_16Bit(t *testing.T) {
	img := image.NewNRGBA64(image.Rect(0, 0, 2, 2))
	img.SetNRGBA64(0, 1, color.NRGBA64{R: 1 << 15, G: 0, B: 0, A: 0xffff})
	img.SetNRGBA64(1, 1, color.NRGBA64{R: 0, G: 0, B: 100, A: 0xffff})

	tile := dem.NewTileFromImage(img)
	assert.Equal(t, 16, tile.BitDepth)

	r, g, b := tile.Pixel(0, 1)
	assert.Equal(t, dem.SampleNoData, dem.DecodePixel(r, g, b, tile.BitDepth, dem.GSIResolution).Kind)
	r, g, b = tile.Pixel(1, 1)
	assert.Equal(t, dem.Sample{Kind: dem.SampleElevation, Meters: 1}, dem.DecodePixel(r, g, b, tile.BitDepth, dem.GSIResolution))
}

func TestNewTileFromImage_Generic(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(1, 0, color.RGBA{R: 0, G: 1, B: 94, A: 255})

	tile := dem.NewTileFromImage(img)
	assert.Equal(t, 8, tile.BitDepth)
	r, g, b := tile.Pixel(1, 0)
	assert.Equal(t, [3]uint16{0, 1, 94}, [3]uint16{r, g, b})
}
