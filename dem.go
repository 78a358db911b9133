// Package dem resolves geographic coordinates to ground elevations using
// pyramids of terrain-encoded raster tiles, such as the PNG elevation tiles
// published by the Geospatial Information Authority of Japan.
package dem

import (
	"context"
	"fmt"
)

// TileSize is the pixel size of the tiles in the pyramid.
const TileSize = 256

// A TileKey identifies one tile in a power-of-two tile pyramid. Zoom 0
// covers the whole map in a single tile.
type TileKey struct {
	Z int
	X int
	Y int
}

func (k TileKey) String() string {
	return fmt.Sprintf("%d/%d/%d", k.Z, k.X, k.Y)
}

// A TileSource fetches raster tiles by key. FetchTile returns
// [ErrTileNotExist] if no tile exists at key, for example over oceans or
// outside the dataset's coverage. Any other error is a transient failure.
//
// TileSources must be safe for concurrent use.
type TileSource interface {
	FetchTile(ctx context.Context, key TileKey) (*Tile, error)
}
