package builder

import "github.com/drblury/geoweaver/document"

// Core conformance classes declared by every service.
var coreConformance = []string{
	"http://www.opengis.net/spec/ogcapi-common-1/1.0/conf/core",
	"http://www.opengis.net/spec/ogcapi-common-1/1.0/conf/landing-page",
	"http://www.opengis.net/spec/ogcapi-common-1/1.0/conf/json",
	"http://www.opengis.net/spec/ogcapi-common-1/1.0/conf/html",
	"http://www.opengis.net/spec/ogcapi-common-1/1.0/conf/oas30",
	"http://www.opengis.net/spec/ogcapi-common-2/1.0/conf/collections",
}

// ConformanceBuilder assembles the conformance declaration.
type ConformanceBuilder struct {
	settings
	classes []string
}

// NewConformanceBuilder constructs a ConformanceBuilder declaring the core
// classes plus classes, if any.
func NewConformanceBuilder(classes []string, opts ...Option) *ConformanceBuilder {
	merged := make([]string, 0, len(coreConformance)+len(classes))
	merged = append(merged, coreConformance...)
	merged = append(merged, classes...)
	return &ConformanceBuilder{settings: newSettings(opts), classes: merged}
}

// Build returns the declaration: service classes first, then the classes of
// every ConformanceExtender in registration order, without duplicates.
func (b *ConformanceBuilder) Build() *document.Conformance {
	candidates := append(append([]string{}, b.classes...), b.registry.ConformanceClasses()...)
	seen := make(map[string]struct{}, len(candidates))
	conformsTo := make([]string, 0, len(candidates))
	for _, class := range candidates {
		if _, dup := seen[class]; dup || class == "" {
			continue
		}
		seen[class] = struct{}{}
		conformsTo = append(conformsTo, class)
	}
	return &document.Conformance{ConformsTo: conformsTo}
}
