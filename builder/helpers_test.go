package builder

import (
	"errors"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/drblury/geoweaver/document"
	"github.com/drblury/geoweaver/extension"
	"github.com/drblury/geoweaver/link"
)

// linkExtension appends one link per rel and merges a single schema named
// after itself into the API.
type linkExtension struct {
	name    string
	rels    []string
	schema  string
	apiErr  error
	collErr error
	mutate  func(*document.Collection)
	classes []string
}

func (e *linkExtension) Name() string { return e.name }

func (e *linkExtension) ExtendAPI(api *openapi3.T) error {
	if e.apiErr != nil {
		return e.apiErr
	}
	fragment := &openapi3.T{
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				e.schema: openapi3.NewSchemaRef("", &openapi3.Schema{Description: e.name}),
			},
		},
	}
	fragment.Paths.Set("/"+e.name, &openapi3.PathItem{Summary: e.name})
	return extension.Merge(api, fragment)
}

func (e *linkExtension) ExtendCollection(c *document.Collection, req *document.MetadataRequest) error {
	if e.collErr != nil {
		return e.collErr
	}
	if e.mutate != nil {
		e.mutate(c)
		return nil
	}
	for _, rel := range e.rels {
		href := link.BuildURL(req.BaseURL, req.ServiceURLPath("collections", c.Name, e.name, "{id}"), nil)
		c.AddLink(link.New(href, rel, "application/json", e.name+" "+rel))
	}
	return nil
}

func (e *linkExtension) ConformanceClasses() []string { return e.classes }

var errBoom = errors.New("boom")

func testRequest(mediaType string) *document.MetadataRequest {
	return &document.MetadataRequest{
		AcceptedMediaType: mediaType,
		BaseURL:           "http://localhost:8080/geoserver",
		ServicePath:       "ogc/images",
	}
}

func baseAPI() *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    &openapi3.Info{Title: "Images", Version: "1.0.0"},
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				"link": openapi3.NewSchemaRef("", openapi3.NewObjectSchema()),
			},
		},
	}
	doc.Paths.Set("/", &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "getLandingPage",
			Responses:   openapi3.NewResponses(),
		},
	})
	return doc
}

func countRel(links []link.Link, rel string) int {
	return len(link.Filter(links, rel))
}
