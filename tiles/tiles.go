// Package tiles adds vector tile support to a service: the tiling scheme and
// tile paths of the API description, and a tilingScheme and a tiles link on
// every collection.
package tiles

import (
	"embed"
	"io/fs"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/drblury/geoweaver/document"
	"github.com/drblury/geoweaver/extension"
	"github.com/drblury/geoweaver/link"
)

// MIMEType is the media type of Mapbox vector tiles.
const MIMEType = "application/vnd.mapbox-vector-tile"

// API paths contributed by the extension.
const (
	TilingSchemesPath = "/tilingSchemes"
	TilingSchemePath  = "/tilingSchemes/{tilingSchemeId}"
	TilesPath         = "/collections/{collectionId}/tiles/{tilingSchemeId}/{zoomLevel}/{row}/{column}"
)

// Relations of the links added to collections.
const (
	RelTilingScheme = "tilingScheme"
	RelTiles        = "tiles"
)

// ConformanceClass is declared by services registering the extension.
const ConformanceClass = "http://www.opengis.net/spec/ogcapi-tiles-1/1.0/conf/core"

const fragmentName = "tiling.yml"

//go:embed tiling.yml
var fragmentFS embed.FS

// Option configures the extension.
type Option func(*Extension)

// WithStrictMerge reports paths, schemas or parameters already present in the
// API description instead of overwriting them.
func WithStrictMerge() Option {
	return func(e *Extension) {
		e.merger.Strict = true
	}
}

// WithFragment replaces the packaged fragment, mainly for tests.
func WithFragment(fsys fs.FS, name string) Option {
	return func(e *Extension) {
		e.loader = extension.NewFragmentLoader(fsys, name)
	}
}

// Extension implements extension.Extension for vector tiles.
type Extension struct {
	loader *extension.FragmentLoader
	merger extension.Merger
}

// New returns the vector tiles extension.
func New(opts ...Option) *Extension {
	e := &Extension{
		loader: extension.NewFragmentLoader(fragmentFS, fragmentName),
		merger: extension.Merger{
			Paths: []string{TilingSchemesPath, TilingSchemePath, TilesPath},
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Name implements extension.Namer.
func (e *Extension) Name() string {
	return "tiles"
}

// Check verifies the packaged fragment can be parsed.
func (e *Extension) Check() error {
	return e.loader.Check()
}

// ConformanceClasses implements extension.ConformanceExtender.
func (e *Extension) ConformanceClasses() []string {
	return []string{ConformanceClass}
}

// ExtendAPI merges the tiling paths, schemas and parameters into api. The
// fragment is parsed on every call so each request works on its own tree.
func (e *Extension) ExtendAPI(api *openapi3.T) error {
	fragment, err := e.loader.Load()
	if err != nil {
		return err
	}
	return e.merger.Merge(api, fragment)
}

// ExtendCollection appends the tilingScheme and tiles URI template links.
func (e *Extension) ExtendCollection(collection *document.Collection, req *document.MetadataRequest) error {
	id := collection.Name

	tilingSchemeURL := link.BuildURL(req.BaseURL, req.ServiceURLPath("collections", id, "tiles", "{tilingSchemeId}"), nil)
	collection.AddLink(link.Link{
		Href: tilingSchemeURL,
		Rel:  RelTilingScheme,
		Type: MIMEType,
		Title: id + " associated tiling schemes. The link is a URI template " +
			"where {tilingSchemeId} is one of the schemes listed in the 'tilingSchemes' resource",
		Group: link.RelItems,
	})

	tilesURL := link.BuildURL(req.BaseURL, req.ServiceURLPath("collections", id, "tiles", "{tilingSchemeId}", "{level}", "{row}", "{col}"), nil)
	collection.AddLink(link.Link{
		Href: tilesURL,
		Rel:  RelTiles,
		Type: MIMEType,
		Title: id + " as Mapbox vector tiles. The link is a URI template where {tilingSchemeId} " +
			"is one of the schemes listed in the 'tilingSchemes' resource, and {level}/{row}/{col} " +
			"the tile based on the tiling scheme.",
		Group: link.RelItems,
	})
	return nil
}
