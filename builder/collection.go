package builder

import (
	"fmt"

	"github.com/drblury/geoweaver/catalog"
	"github.com/drblury/geoweaver/document"
	"github.com/drblury/geoweaver/extension"
	"github.com/drblury/geoweaver/format"
	"github.com/drblury/geoweaver/link"
)

// CollectionBuilder builds collection documents and lets every extension
// append its links.
type CollectionBuilder struct {
	settings
}

// NewCollectionBuilder constructs a CollectionBuilder.
func NewCollectionBuilder(opts ...Option) *CollectionBuilder {
	return &CollectionBuilder{settings: newSettings(opts)}
}

// Build returns the document describing info. The base links are one self
// link for the negotiated representation (req.AcceptedMediaType) and one
// alternate link per other representation; extension links follow in
// registration order.
func (b *CollectionBuilder) Build(info catalog.Info, req *document.MetadataRequest) (*document.Collection, error) {
	if req == nil {
		req = &document.MetadataRequest{}
	}
	collection := &document.Collection{
		Name:        info.ID,
		Title:       info.Title,
		Description: info.Description,
	}
	collection.Links = selfLinks(b.formats, req, req.ServiceURLPath("collections", info.ID), "This collection")

	for i, ext := range b.registry.All() {
		before := make([]link.Link, len(collection.Links))
		copy(before, collection.Links)

		if err := ext.ExtendCollection(collection, req); err != nil {
			return nil, b.failure(ext, i, info.ID, err)
		}
		if !hasPrefix(collection.Links, before) {
			return nil, b.failure(ext, i, info.ID, fmt.Errorf("existing links of collection %s were removed or reordered", info.ID))
		}
	}
	return collection, nil
}

// BuildAll returns the collections document listing every collection in
// infos, each extended like Build does.
func (b *CollectionBuilder) BuildAll(infos []catalog.Info, req *document.MetadataRequest) (*document.Collections, error) {
	if req == nil {
		req = &document.MetadataRequest{}
	}
	doc := &document.Collections{
		Links:       selfLinks(b.formats, req, req.ServiceURLPath("collections"), "This document"),
		Collections: make([]*document.Collection, 0, len(infos)),
	}
	for _, info := range infos {
		collection, err := b.Build(info, req)
		if err != nil {
			return nil, err
		}
		doc.Collections = append(doc.Collections, collection)
	}
	return doc, nil
}

func (b *CollectionBuilder) failure(ext extension.Extension, index int, collectionID string, err error) error {
	failure := &extension.FailureError{
		Extension: extension.NameOf(ext, index),
		Phase:     "ExtendCollection",
		Err:       err,
	}
	b.logger.Error("extension failed to extend a collection",
		"extension", failure.Extension, "collection", collectionID, "error", err)
	return failure
}

// selfLinks emits the self link for the negotiated representation and an
// alternate link for every other one, all pointing at path.
func selfLinks(formats []format.Format, req *document.MetadataRequest, path, title string) []link.Link {
	negotiated := negotiatedFormat(formats, req.AcceptedMediaType)
	links := make([]link.Link, 0, len(formats))
	for _, f := range formats {
		href := link.BuildURL(req.BaseURL, path, link.Query(format.QueryParam, f.MediaType))
		if f.Name == negotiated.Name {
			links = append(links, link.New(href, link.RelSelf, f.MediaType, title))
			continue
		}
		links = append(links, link.New(href, link.RelAlternate, f.MediaType, title+" as "+f.Title))
	}
	return links
}

func hasPrefix(links, prefix []link.Link) bool {
	if len(links) < len(prefix) {
		return false
	}
	for i := range prefix {
		if links[i] != prefix[i] {
			return false
		}
	}
	return true
}
