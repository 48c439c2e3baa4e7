package builder

import (
	"strings"
	"testing"

	"github.com/drblury/geoweaver/document"
	"github.com/drblury/geoweaver/format"
	"github.com/drblury/geoweaver/link"
)

var imagesMeta = document.ServiceMetadata{
	Title:       "Image mosaicks discovery and management interface",
	Description: "",
}

func TestLandingBuilderLinkSet(t *testing.T) {
	b := NewLandingBuilder()

	for _, f := range format.Defaults() {
		t.Run(f.Name, func(t *testing.T) {
			page := b.Build(imagesMeta, testRequest(f.MediaType))

			if len(page.Links) != 12 {
				t.Fatalf("expected 12 links, got %d", len(page.Links))
			}

			self := link.Filter(page.Links, link.RelSelf)
			if len(self) != 1 || self[0].Type != f.MediaType {
				t.Fatalf("expected exactly one self link of type %s, got %v", f.MediaType, self)
			}

			alternates := link.Filter(page.Links, link.RelAlternate)
			if len(alternates) != 2 {
				t.Fatalf("expected 2 alternate links, got %d", len(alternates))
			}
			for _, alt := range alternates {
				if alt.Type == f.MediaType {
					t.Fatalf("alternate link must not repeat the negotiated type: %v", alt)
				}
			}
			for _, l := range append(self, alternates...) {
				if !strings.Contains(l.Href, "ogc/images/?") {
					t.Fatalf("expected landing page href, got %s", l.Href)
				}
			}

			for rel, resource := range map[string]string{
				link.RelService:     "ogc/images/api",
				link.RelConformance: "ogc/images/conformance",
				link.RelData:        "ogc/images/collections",
			} {
				links := link.Filter(page.Links, rel)
				if len(links) != 3 {
					t.Fatalf("expected 3 %s links, got %d", rel, len(links))
				}
				for _, l := range links {
					if !strings.Contains(l.Href, resource) {
						t.Fatalf("expected %s link to point at %s, got %s", rel, resource, l.Href)
					}
				}
			}
		})
	}
}

func TestLandingBuilderMetadataVerbatim(t *testing.T) {
	page := NewLandingBuilder().Build(imagesMeta, testRequest(""))

	if page.Title != imagesMeta.Title {
		t.Fatalf("unexpected title %q", page.Title)
	}
	if page.Description != "" {
		t.Fatalf("expected empty description, got %q", page.Description)
	}
	if page.Links[0].Rel != link.RelSelf || page.Links[0].Type != format.JSON.MediaType {
		t.Fatalf("expected default self link to be JSON, got %v", page.Links[0])
	}
	if page.Links[0].Href != "http://localhost:8080/geoserver/ogc/images/?f=application%2Fjson" {
		t.Fatalf("unexpected self href %s", page.Links[0].Href)
	}
}

func TestLandingBuilderHTMLCollectionsHref(t *testing.T) {
	page := NewLandingBuilder().Build(imagesMeta, testRequest(format.HTML.MediaType))

	var found bool
	for _, l := range link.Filter(page.Links, link.RelData) {
		if l.Type == format.HTML.MediaType {
			found = true
			if l.Href != "http://localhost:8080/geoserver/ogc/images/collections?f=text%2Fhtml" {
				t.Fatalf("unexpected collections href %s", l.Href)
			}
		}
	}
	if !found {
		t.Fatal("expected an html data link")
	}
}

func TestLandingBuilderScalesWithFormats(t *testing.T) {
	b := NewLandingBuilder(WithFormats(format.JSON, format.HTML))
	page := b.Build(imagesMeta, testRequest(format.HTML.MediaType))

	// 1 self + 1 alternate + 3 * 2
	if len(page.Links) != 8 {
		t.Fatalf("expected 8 links, got %d", len(page.Links))
	}
	if countRel(page.Links, link.RelAlternate) != 1 {
		t.Fatal("expected a single alternate link")
	}
}
