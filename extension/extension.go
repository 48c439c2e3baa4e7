// Package extension defines how independently developed modules contribute to
// the service: OpenAPI fragments merged into the API description and links
// appended to collection documents.
//
// Extensions are registered once at startup on a Registry, which the builders
// consult in registration order for every request.
package extension

import (
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/drblury/geoweaver/document"
)

// Extension is the capability pair every registered extension provides.
type Extension interface {
	// ExtendAPI merges the extension's paths, schemas and parameters into api.
	ExtendAPI(api *openapi3.T) error
	// ExtendCollection appends links to collection. Existing links must not be
	// removed or reordered.
	ExtendCollection(collection *document.Collection, req *document.MetadataRequest) error
}

// Namer is implemented by extensions that want a readable name in logs and
// errors.
type Namer interface {
	Name() string
}

// ConformanceExtender is implemented by extensions adding conformance classes
// to the service conformance declaration.
type ConformanceExtender interface {
	ConformanceClasses() []string
}

// Checker is implemented by extensions that can verify their resources at
// startup.
type Checker interface {
	Check() error
}

// NameOf returns the name of ext, falling back to its position.
func NameOf(ext Extension, index int) string {
	if n, ok := ext.(Namer); ok && n.Name() != "" {
		return n.Name()
	}
	return "extension #" + strconv.Itoa(index+1)
}
