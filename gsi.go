package dem

import "strings"

// GSIResolution is the elevation step of GSI PNG tiles, in meters.
const GSIResolution = 0.01

const gsiBaseURL = "https://cyberjapandata.gsi.go.jp/xyz"

// gsiDatasets is the published GSI elevation tile table, in decreasing
// order of precision. See https://maps.gsi.go.jp/development/ichiran.html.
var gsiDatasets = []struct {
	name    string
	path    string
	minZoom int
	maxZoom int
}{
	{name: "DEM5A", path: "/dem5a_png/{z}/{x}/{y}.png", minZoom: 15, maxZoom: 15},
	{name: "DEM5B", path: "/dem5b_png/{z}/{x}/{y}.png", minZoom: 15, maxZoom: 15},
	{name: "DEM5C", path: "/dem5c_png/{z}/{x}/{y}.png", minZoom: 15, maxZoom: 15},
	{name: "DEM10B", path: "/dem_png/{z}/{x}/{y}.png", minZoom: 14, maxZoom: 14},
}

type gsiConfig struct {
	baseURL           string
	tileSourceOptions []HTTPTileSourceOption
}

// A GSIOption sets an option on [NewGSI].
type GSIOption func(*gsiConfig)

// WithBaseURL overrides the GSI tile server base URL, for example to
// point at a mirror.
func WithBaseURL(baseURL string) GSIOption {
	return func(c *gsiConfig) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithTileSourceOptions sets options on the underlying tile sources.
func WithTileSourceOptions(options ...HTTPTileSourceOption) GSIOption {
	return func(c *gsiConfig) {
		c.tileSourceOptions = options
	}
}

// NewGSI returns a Service over the elevation tiles of the Geospatial
// Information Authority of Japan: the DEM5A, DEM5B and DEM5C 5m datasets
// at zoom 15, falling back to the nationwide DEM10B 10m dataset at zoom
// 14.
func NewGSI(options ...GSIOption) (*Service, error) {
	c := &gsiConfig{
		baseURL: gsiBaseURL,
	}
	for _, option := range options {
		option(c)
	}

	datasets := make([]Dataset, 0, len(gsiDatasets))
	for _, gsiDataset := range gsiDatasets {
		source, err := NewHTTPTileSource(c.baseURL+gsiDataset.path, c.tileSourceOptions...)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, Dataset{
			Name:       gsiDataset.name,
			Source:     source,
			MinZoom:    gsiDataset.minZoom,
			MaxZoom:    gsiDataset.maxZoom,
			Resolution: GSIResolution,
		})
	}
	return NewService(datasets)
}
