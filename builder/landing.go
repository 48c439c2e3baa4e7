package builder

import (
	"github.com/drblury/geoweaver/document"
	"github.com/drblury/geoweaver/format"
	"github.com/drblury/geoweaver/link"
)

// LandingBuilder assembles service landing pages.
type LandingBuilder struct {
	settings
}

// NewLandingBuilder constructs a LandingBuilder.
func NewLandingBuilder(opts ...Option) *LandingBuilder {
	return &LandingBuilder{settings: newSettings(opts)}
}

// Build returns the landing page for req. With R representations the page
// carries 1 self and R-1 alternate links, followed by R service, R
// conformance and R data links.
func (b *LandingBuilder) Build(meta document.ServiceMetadata, req *document.MetadataRequest) *document.LandingPage {
	if req == nil {
		req = &document.MetadataRequest{}
	}
	formats := b.formats
	page := &document.LandingPage{
		Title:       meta.Title,
		Description: meta.Description,
		Links:       make([]link.Link, 0, 4*len(formats)),
	}

	page.Links = append(page.Links, selfLinks(formats, req, req.ServiceURLPath()+"/", "This document")...)
	page.Links = append(page.Links, resourceLinks(formats, req, "api", link.RelService, "API definition for this endpoint as ")...)
	page.Links = append(page.Links, resourceLinks(formats, req, "conformance", link.RelConformance, "Conformance declaration as ")...)
	page.Links = append(page.Links, resourceLinks(formats, req, "collections", link.RelData, "Collections metadata as ")...)
	return page
}

func resourceLinks(formats []format.Format, req *document.MetadataRequest, resource, rel, titlePrefix string) []link.Link {
	path := req.ServiceURLPath(resource)
	links := make([]link.Link, 0, len(formats))
	for _, f := range formats {
		href := link.BuildURL(req.BaseURL, path, link.Query(format.QueryParam, f.MediaType))
		links = append(links, link.New(href, rel, f.MediaType, titlePrefix+f.MediaType))
	}
	return links
}
