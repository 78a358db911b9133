package dem

import (
	"context"
	"errors"
	"image/png"
	"io/fs"
)

// An FSTileSource reads PNG tiles from a filesystem, typically a local
// dump of a tile pyramid laid out as pathTemplate, for example
// "{z}/{x}/{y}.png".
type FSTileSource struct {
	fsys         fs.FS
	pathTemplate string
}

// NewFSTileSource returns a new FSTileSource reading from fsys.
func NewFSTileSource(fsys fs.FS, pathTemplate string) *FSTileSource {
	return &FSTileSource{
		fsys:         fsys,
		pathTemplate: pathTemplate,
	}
}

// FetchTile implements [TileSource].
func (s *FSTileSource) FetchTile(ctx context.Context, key TileKey) (*Tile, error) {
	file, err := s.fsys.Open(expandTileTemplate(s.pathTemplate, key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrTileNotExist
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		return nil, err
	}
	return NewTileFromImage(img), nil
}
