package tiles_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/drblury/geoweaver/builder"
	"github.com/drblury/geoweaver/catalog"
	"github.com/drblury/geoweaver/document"
	"github.com/drblury/geoweaver/extension"
	"github.com/drblury/geoweaver/tiles"
)

func newRequest() *document.MetadataRequest {
	return &document.MetadataRequest{
		BaseURL:     "http://localhost:8080/geoserver",
		ServicePath: "wfs3",
	}
}

func baseAPI() *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    &openapi3.Info{Title: "Features", Version: "1.0.0"},
		Paths:   openapi3.NewPaths(),
	}
	doc.Paths.Set("/collections", &openapi3.PathItem{Summary: "collections"})
	return doc
}

func TestExtendCollectionAddsTwoTemplateLinks(t *testing.T) {
	registry := extension.NewRegistry(tiles.New())
	b := builder.NewCollectionBuilder(builder.WithRegistry(registry))

	plain, err := builder.NewCollectionBuilder().Build(catalog.Info{ID: "roads"}, newRequest())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	extended, err := b.Build(catalog.Info{ID: "roads"}, newRequest())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if len(extended.Links) != len(plain.Links)+2 {
		t.Fatalf("expected exactly 2 extra links, got %d vs %d", len(extended.Links), len(plain.Links))
	}

	tilingScheme := extended.Links[len(extended.Links)-2]
	if tilingScheme.Rel != tiles.RelTilingScheme || tilingScheme.Type != tiles.MIMEType {
		t.Fatalf("unexpected tiling scheme link %v", tilingScheme)
	}
	if tilingScheme.Href != "http://localhost:8080/geoserver/wfs3/collections/roads/tiles/{tilingSchemeId}" {
		t.Fatalf("unexpected tiling scheme href %s", tilingScheme.Href)
	}

	tilesLink := extended.Links[len(extended.Links)-1]
	if tilesLink.Rel != tiles.RelTiles || tilesLink.Group != "items" {
		t.Fatalf("unexpected tiles link %v", tilesLink)
	}
	for _, token := range []string{"{tilingSchemeId}", "{level}", "{row}", "{col}"} {
		if !strings.Contains(tilesLink.Href, token) {
			t.Fatalf("expected %s in href %s", token, tilesLink.Href)
		}
	}
	if !strings.HasPrefix(tilesLink.Title, "roads as Mapbox vector tiles") {
		t.Fatalf("unexpected title %q", tilesLink.Title)
	}
}

func TestExtendCollectionEscapesCollectionName(t *testing.T) {
	c := &document.Collection{Name: "my roads"}
	if err := tiles.New().ExtendCollection(c, newRequest()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if c.Links[0].Href != "http://localhost:8080/geoserver/wfs3/collections/my%20roads/tiles/{tilingSchemeId}" {
		t.Fatalf("unexpected href %s", c.Links[0].Href)
	}
}

func TestExtendCollectionKeepsSlashedNameInOneSegment(t *testing.T) {
	c := &document.Collection{Name: "ws/roads"}
	if err := tiles.New().ExtendCollection(c, newRequest()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if c.Links[0].Href != "http://localhost:8080/geoserver/wfs3/collections/ws%2Froads/tiles/{tilingSchemeId}" {
		t.Fatalf("unexpected tiling scheme href %s", c.Links[0].Href)
	}
	if c.Links[1].Href != "http://localhost:8080/geoserver/wfs3/collections/ws%2Froads/tiles/{tilingSchemeId}/{level}/{row}/{col}" {
		t.Fatalf("unexpected tiles href %s", c.Links[1].Href)
	}
}

func TestExtendAPIAddsTilingBuildingBlocks(t *testing.T) {
	registry := extension.NewRegistry(tiles.New())

	api, err := builder.NewAPIBuilder(builder.WithRegistry(registry)).Build(baseAPI())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	for _, p := range []string{"/collections", tiles.TilingSchemesPath, tiles.TilingSchemePath, tiles.TilesPath} {
		if api.Paths.Value(p) == nil {
			t.Fatalf("expected path %s", p)
		}
	}
	for _, s := range []string{"tilingSchemes", "tilingScheme", "tileMatrix"} {
		if api.Components.Schemas[s] == nil {
			t.Fatalf("expected schema %s", s)
		}
	}
	for _, p := range []string{"f", "collectionId", "tilingSchemeId", "zoomLevel", "row", "column"} {
		if api.Components.Parameters[p] == nil {
			t.Fatalf("expected parameter %s", p)
		}
	}
}

func TestExtendAPIIsRepeatable(t *testing.T) {
	ext := tiles.New()
	api := baseAPI()

	if err := ext.ExtendAPI(api); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := ext.ExtendAPI(api); err != nil {
		t.Fatalf("expected repeated merge to overwrite, got %v", err)
	}
	if api.Paths.Len() != 4 {
		t.Fatalf("expected 4 paths, got %d", api.Paths.Len())
	}
}

func TestStrictMergeRejectsRedefinition(t *testing.T) {
	ext := tiles.New(tiles.WithStrictMerge())
	api := baseAPI()

	if err := ext.ExtendAPI(api); err != nil {
		t.Fatalf("expected first merge to succeed, got %v", err)
	}
	if err := ext.ExtendAPI(api); !errors.Is(err, extension.ErrMergeConflict) {
		t.Fatalf("expected ErrMergeConflict, got %v", err)
	}
}

func TestBrokenFragment(t *testing.T) {
	ext := tiles.New(tiles.WithFragment(fstest.MapFS{}, "tiling.yml"))

	if err := ext.Check(); !errors.Is(err, extension.ErrResourceLoad) {
		t.Fatalf("expected ErrResourceLoad from Check, got %v", err)
	}

	_, err := builder.NewAPIBuilder(builder.WithRegistry(extension.NewRegistry(ext))).Build(baseAPI())
	if !errors.Is(err, extension.ErrExtensionFailure) || !errors.Is(err, extension.ErrResourceLoad) {
		t.Fatalf("expected extension failure wrapping the load error, got %v", err)
	}
}

func TestPackagedFragmentLoads(t *testing.T) {
	ext := tiles.New()
	if err := ext.Check(); err != nil {
		t.Fatalf("expected packaged fragment to load, got %v", err)
	}
	if got := ext.ConformanceClasses(); len(got) != 1 || got[0] != tiles.ConformanceClass {
		t.Fatalf("unexpected conformance classes %v", got)
	}
}
