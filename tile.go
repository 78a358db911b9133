package dem

import (
	"errors"
	"image"
	"strconv"
	"strings"
)

// ErrTileNotExist is returned by a TileSource when no tile exists at the
// requested key.
var ErrTileNotExist = errors.New("tile does not exist")

// A Tile is the decoded pixel buffer of one raster tile. Pix holds the
// red, green and blue channel values of each pixel in row-major order.
// Tiles are read-only once built.
type Tile struct {
	Width    int
	Height   int
	BitDepth int
	Pix      []uint16
}

// Pixel returns the channel values of the pixel at (x, y).
func (t *Tile) Pixel(x, y int) (r, g, b uint16) {
	i := 3 * (y*t.Width + x)
	return t.Pix[i], t.Pix[i+1], t.Pix[i+2]
}

// NewTileFromImage converts a decoded image to a Tile. 16-bit images keep
// their full channel depth, everything else is treated as 8-bit.
func NewTileFromImage(img image.Image) *Tile {
	bounds := img.Bounds()
	t := &Tile{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		BitDepth: 8,
		Pix:      make([]uint16, 3*bounds.Dx()*bounds.Dy()),
	}
	switch img := img.(type) {
	case *image.NRGBA:
		for i := range t.Width * t.Height {
			j := 4 * i
			t.Pix[3*i] = uint16(img.Pix[j])
			t.Pix[3*i+1] = uint16(img.Pix[j+1])
			t.Pix[3*i+2] = uint16(img.Pix[j+2])
		}
	case *image.NRGBA64:
		t.BitDepth = 16
		for i := range t.Width * t.Height {
			j := 8 * i
			t.Pix[3*i] = uint16(img.Pix[j])<<8 | uint16(img.Pix[j+1])
			t.Pix[3*i+1] = uint16(img.Pix[j+2])<<8 | uint16(img.Pix[j+3])
			t.Pix[3*i+2] = uint16(img.Pix[j+4])<<8 | uint16(img.Pix[j+5])
		}
	default:
		i := 0
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				r, g, b, _ := img.At(x, y).RGBA()
				t.Pix[i] = uint16(r >> 8)
				t.Pix[i+1] = uint16(g >> 8)
				t.Pix[i+2] = uint16(b >> 8)
				i += 3
			}
		}
	}
	return t
}

// expandTileTemplate replaces the {z}, {x} and {y} placeholders in
// template with key's coordinates.
func expandTileTemplate(template string, key TileKey) string {
	return strings.NewReplacer(
		"{z}", strconv.Itoa(key.Z),
		"{x}", strconv.Itoa(key.X),
		"{y}", strconv.Itoa(key.Y),
	).Replace(template)
}
