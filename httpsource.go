package dem

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/maypok86/otter/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tileFetches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dem_tile_fetches_total",
		Help: "The total number of tile fetches issued upstream",
	})
	tileFetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dem_tile_fetch_errors_total",
		Help: "The total number of failed tile fetches",
	})
	missingTileFetches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dem_missing_tile_fetches_total",
		Help: "The total number of fetches that found no tile upstream",
	})
	missingTileCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dem_missing_tile_cache_hits_total",
		Help: "The total number of hits on the missing tile cache",
	})
)

// An HTTPTileSource fetches PNG tiles over HTTP from a URL template such
// as "https://cyberjapandata.gsi.go.jp/xyz/dem_png/{z}/{x}/{y}.png".
//
// Fetched tiles are kept in a loading cache, so concurrent requests for
// the same key share a single upstream fetch. Tiles the server reports as
// absent are remembered in a bounded negative cache. Transient failures
// are not cached; retry policy is the caller's.
type HTTPTileSource struct {
	client           *http.Client
	urlTemplate      string
	cacheSize        int
	missingCacheSize int
	tileCache        *otter.Cache[TileKey, *Tile]
	missingTiles     *lru.Cache[TileKey, struct{}]
}

// An HTTPTileSourceOption sets an option on an HTTPTileSource.
type HTTPTileSourceOption func(*HTTPTileSource)

// NewHTTPTileSource returns a new HTTPTileSource fetching from
// urlTemplate.
func NewHTTPTileSource(urlTemplate string, options ...HTTPTileSourceOption) (*HTTPTileSource, error) {
	s := &HTTPTileSource{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		urlTemplate:      urlTemplate,
		cacheSize:        64,
		missingCacheSize: 1024,
	}
	for _, option := range options {
		option(s)
	}

	var err error
	s.tileCache, err = otter.New(&otter.Options[TileKey, *Tile]{
		MaximumSize: s.cacheSize,
	})
	if err != nil {
		return nil, err
	}
	s.missingTiles, err = lru.New[TileKey, struct{}](s.missingCacheSize)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// WithHTTPClient sets the HTTP client used for tile fetches.
func WithHTTPClient(client *http.Client) HTTPTileSourceOption {
	return func(s *HTTPTileSource) {
		s.client = client
	}
}

// WithTileCacheSize sets the maximum number of tiles kept in memory.
func WithTileCacheSize(cacheSize int) HTTPTileSourceOption {
	return func(s *HTTPTileSource) {
		s.cacheSize = cacheSize
	}
}

// WithMissingTileCacheSize sets the maximum number of absent tile keys
// remembered.
func WithMissingTileCacheSize(missingCacheSize int) HTTPTileSourceOption {
	return func(s *HTTPTileSource) {
		s.missingCacheSize = missingCacheSize
	}
}

// FetchTile implements [TileSource].
func (s *HTTPTileSource) FetchTile(ctx context.Context, key TileKey) (*Tile, error) {
	if _, ok := s.missingTiles.Get(key); ok {
		missingTileCacheHits.Inc()
		return nil, ErrTileNotExist
	}
	switch tile, err := s.tileCache.Get(ctx, key, otter.LoaderFunc[TileKey, *Tile](s.fetchTile)); {
	case errors.Is(err, otter.ErrNotFound):
		return nil, ErrTileNotExist
	case err != nil:
		return nil, err
	default:
		return tile, nil
	}
}

// fetchTile fetches the tile at key upstream. If the server reports that
// the tile does not exist, it records the key in the negative cache and
// returns otter.ErrNotFound so that the absence is not stored as a value.
func (s *HTTPTileSource) fetchTile(ctx context.Context, key TileKey) (*Tile, error) {
	tileFetches.Inc()
	url := expandTileTemplate(s.urlTemplate, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		tileFetchErrors.Inc()
		return nil, err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		missingTileFetches.Inc()
		s.missingTiles.Add(key, struct{}{})
		return nil, otter.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		tileFetchErrors.Inc()
		return nil, fmt.Errorf("%s: %s", url, resp.Status)
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		tileFetchErrors.Inc()
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return NewTileFromImage(img), nil
}
