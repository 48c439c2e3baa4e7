package ogcapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/drblury/geoweaver/catalog"
	"github.com/drblury/geoweaver/document"
	"github.com/drblury/geoweaver/extension"
	"github.com/drblury/geoweaver/jsonutil"
	"github.com/drblury/geoweaver/link"
	"github.com/drblury/geoweaver/tiles"
)

const testPublicURL = "http://localhost:8080"

// failingExtension fails every collection it is asked to extend.
type failingExtension struct{}

func (failingExtension) Name() string { return "failing" }

func (failingExtension) ExtendAPI(*openapi3.T) error { return nil }

func (failingExtension) ExtendCollection(*document.Collection, *document.MetadataRequest) error {
	return errors.New("tile matrix unavailable")
}

func newTestHandler(t *testing.T, opts ...Option) *Handler {
	t.Helper()

	static, err := catalog.NewStatic(
		catalog.Info{ID: "dem", Title: "Digital elevation model", Description: "Terrain heights"},
		catalog.Info{ID: "ortho", Title: "Orthophotos"},
	)
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	descriptor, err := document.NewServiceDescriptor("images", "1.2.0", document.CoreOperations()...)
	if err != nil {
		t.Fatalf("failed to build descriptor: %v", err)
	}

	defaults := []Option{
		WithCatalog(static),
		WithRegistry(extension.NewRegistry(tiles.New())),
		WithDescriptor(descriptor),
		WithMetadata(document.ServiceMetadata{Title: "Images", Description: "Raster collections"}),
		WithPublicURL(testPublicURL + "/"),
		WithServicePath("/ogc/images/"),
	}
	return NewHandler(append(defaults, opts...)...)
}

func serve(t *testing.T, h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeJSON[T any](t *testing.T, body []byte) T {
	t.Helper()

	var v T
	if err := jsonutil.Unmarshal(body, &v); err != nil {
		t.Fatalf("failed to decode body: %v (body: %s)", err, string(body))
	}
	return v
}

func countRel(links []link.Link, rel string) int {
	n := 0
	for _, l := range links {
		if l.Rel == rel {
			n++
		}
	}
	return n
}
