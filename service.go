package dem

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// ErrNoCoverage is returned when no tile at any candidate zoom level
// covers the requested coordinate.
var ErrNoCoverage = errors.New("no coverage")

// A TileUnavailableError reports a transient failure fetching the tile at
// Key. The lookup that hit it may succeed if retried.
type TileUnavailableError struct {
	Key TileKey
	Err error
}

func (e *TileUnavailableError) Error() string {
	return fmt.Sprintf("tile %s unavailable: %v", e.Key, e.Err)
}

func (e *TileUnavailableError) Unwrap() error {
	return e.Err
}

// A Dataset is one tile layer of a service: a tile source, the zoom
// levels it is published at, and the elevation resolution of its pixels
// in meters per unit.
type Dataset struct {
	Name       string
	Source     TileSource
	MinZoom    int
	MaxZoom    int
	Resolution float64
}

// A Service resolves geographic coordinates to elevations. It tries its
// datasets in order, finest zoom first, and returns the first lookup that
// finds data.
//
// Services hold no per-lookup state and are safe for concurrent use.
type Service struct {
	datasets []Dataset
}

// NewService returns a new Service over datasets, tried in the given
// priority order.
func NewService(datasets []Dataset) (*Service, error) {
	if len(datasets) == 0 {
		return nil, errors.New("no datasets")
	}
	for _, dataset := range datasets {
		if dataset.Source == nil {
			return nil, fmt.Errorf("dataset %s: no tile source", dataset.Name)
		}
		if dataset.MinZoom < 0 || dataset.MaxZoom < dataset.MinZoom {
			return nil, fmt.Errorf("dataset %s: invalid zoom range %d-%d", dataset.Name, dataset.MinZoom, dataset.MaxZoom)
		}
		if dataset.Resolution <= 0 {
			return nil, fmt.Errorf("dataset %s: invalid resolution %g", dataset.Name, dataset.Resolution)
		}
	}
	return &Service{
		datasets: datasets,
	}, nil
}

// A Result is a successful elevation lookup. ValidCorners is the number
// of pixels in the 2x2 interpolation neighborhood that carried an
// elevation; fewer than 4 means the value was interpolated from partial
// coverage. Dataset and Zoom identify the tile layer that served the
// lookup.
type Result struct {
	Meters       float64
	ValidCorners int
	Dataset      string
	Zoom         int
}

// Partial reports whether r was interpolated from fewer than 4 valid
// pixels.
func (r Result) Partial() bool {
	return r.ValidCorners < 4
}

// Elevation returns the elevation at (lat, lng) from the finest available
// data.
//
// It returns ErrNoCoverage if no dataset has a tile covering the
// coordinate, and a *TileUnavailableError if a tile fetch failed
// transiently. It never substitutes a default elevation for missing data.
func (s *Service) Elevation(ctx context.Context, lat, lng float64) (Result, error) {
	maxZoom := s.datasets[0].MaxZoom
	for _, dataset := range s.datasets[1:] {
		maxZoom = max(maxZoom, dataset.MaxZoom)
	}
	return s.ElevationAtZoom(ctx, lat, lng, maxZoom)
}

// ElevationAtZoom is like [Service.Elevation] but never uses data finer
// than zoom. Datasets without coverage at zoom fall back to their coarser
// levels.
func (s *Service) ElevationAtZoom(ctx context.Context, lat, lng float64, zoom int) (Result, error) {
	for _, dataset := range s.datasets {
		for z := min(zoom, dataset.MaxZoom); z >= dataset.MinZoom; z-- {
			result, err := s.lookup(ctx, dataset, lat, lng, z)
			switch {
			case errors.Is(err, ErrNoCoverage):
				continue
			case err != nil:
				return Result{}, err
			default:
				return result, nil
			}
		}
	}
	return Result{}, ErrNoCoverage
}

// lookup resolves (lat, lng) against a single dataset at a single zoom
// level. The 2x2 interpolation neighborhood may straddle a tile boundary
// in either axis, so up to 4 distinct tiles are fetched, wrapping the X
// index at the antimeridian.
func (s *Service) lookup(ctx context.Context, dataset Dataset, lat, lng float64, zoom int) (Result, error) {
	key, pixelX, pixelY := Project(lat, lng, zoom)
	x0 := int(math.Floor(pixelX))
	y0 := int(math.Floor(pixelY))
	fracX := pixelX - float64(x0)
	fracY := pixelY - float64(y0)

	n := 1 << zoom
	tiles := make(map[TileKey]*Tile, 4)
	var corners [4]Sample
	for i := range corners {
		x, y := x0+i%2, y0+i/2
		cornerKey := key
		if x >= TileSize {
			cornerKey.X, x = cornerKey.X+1, x-TileSize
		}
		if y >= TileSize {
			cornerKey.Y, y = cornerKey.Y+1, y-TileSize
		}
		cornerKey.X %= n // longitude wraps
		if cornerKey.Y >= n {
			// Below the bottom edge of the pyramid; latitude does not wrap.
			corners[i] = Sample{Kind: SampleNoData}
			continue
		}
		tile, ok := tiles[cornerKey]
		if !ok {
			var err error
			tile, err = dataset.Source.FetchTile(ctx, cornerKey)
			switch {
			case errors.Is(err, ErrTileNotExist):
				tile = nil
			case err != nil:
				return Result{}, &TileUnavailableError{Key: cornerKey, Err: err}
			}
			tiles[cornerKey] = tile
		}
		if tile == nil {
			corners[i] = Sample{Kind: SampleNoData}
			continue
		}
		if x >= tile.Width || y >= tile.Height {
			corners[i] = Sample{Kind: SampleInvalid}
			continue
		}
		r, g, b := tile.Pixel(x, y)
		corners[i] = DecodePixel(r, g, b, tile.BitDepth, dataset.Resolution)
	}

	meters, valid, ok := InterpolateBilinear(corners, fracX, fracY)
	if !ok {
		return Result{}, ErrNoCoverage
	}
	return Result{
		Meters:       meters,
		ValidCorners: valid,
		Dataset:      dataset.Name,
		Zoom:         zoom,
	}, nil
}
