// Package document holds the per-request documents assembled by the builders
// and the process-wide descriptors they read from.
package document

import "github.com/drblury/geoweaver/link"

// LandingPage is the top-level hypermedia document of a service.
type LandingPage struct {
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
	Links       []link.Link `json:"links" yaml:"links"`
}

// Collection describes a single resource collection. It is created per
// request and only ever grows: extensions append links, they never remove or
// reorder them.
type Collection struct {
	Name        string      `json:"name" yaml:"name"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
	Links       []link.Link `json:"links" yaml:"links"`
}

// AddLink appends l to the collection links.
func (c *Collection) AddLink(l link.Link) {
	c.Links = append(c.Links, l)
}

// Collections lists every collection exposed by a service.
type Collections struct {
	Links       []link.Link   `json:"links" yaml:"links"`
	Collections []*Collection `json:"collections" yaml:"collections"`
}

// Conformance is the conformance declaration of a service.
type Conformance struct {
	ConformsTo []string `json:"conformsTo" yaml:"conformsTo"`
}

// ServiceMetadata carries the human facing title and description of a
// service. Both are rendered verbatim; an empty description is valid.
type ServiceMetadata struct {
	Title       string
	Description string
}
