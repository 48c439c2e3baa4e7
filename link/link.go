// Package link models hypermedia links and assembles the URLs they point at.
package link

import "fmt"

// Relations used by the core documents. Extensions are free to use their own.
const (
	RelSelf        = "self"
	RelAlternate   = "alternate"
	RelService     = "service"
	RelConformance = "conformance"
	RelData        = "data"
	RelItems       = "items"
)

// Link is a single hypermedia link. Href may be a URI template.
type Link struct {
	Href  string `json:"href" yaml:"href"`
	Rel   string `json:"rel" yaml:"rel"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	// Group optionally classifies the link, e.g. "items" for links that
	// resolve to the content of a collection.
	Group string `json:"group,omitempty" yaml:"group,omitempty"`
}

// New returns a link without a group.
func New(href, rel, mediaType, title string) Link {
	return Link{Href: href, Rel: rel, Type: mediaType, Title: title}
}

// String renders the fields identifying the link's role.
func (l Link) String() string {
	return fmt.Sprintf("Link{rel=%s, type=%s, href=%s}", l.Rel, l.Type, l.Href)
}

// Filter returns the links with the given relation, preserving order.
func Filter(links []Link, rel string) []Link {
	var out []Link
	for _, l := range links {
		if l.Rel == rel {
			out = append(out, l)
		}
	}
	return out
}
