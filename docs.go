// Package geoweaver composes the hypermedia documents of OGC API style
// geospatial services: landing pages, API descriptions, conformance
// declarations and collection documents in JSON, YAML and HTML.
//
// Extensions plug into a registry and contribute OpenAPI fragments to the API
// description and links to every collection document. The builders consult
// the registry in registration order and create a new document per request,
// so links only ever accumulate.
//
// # Packages
//
//   - link: the link model and URL assembly that keeps URI template tokens
//     intact.
//   - format: representations and content negotiation through the f query
//     parameter and the Accept header.
//   - document: landing page, collection and conformance documents, the
//     per-request MetadataRequest and the ServiceDescriptor.
//   - extension: the Extension contract, the registry, the fragment loader
//     and the OpenAPI merge policy.
//   - builder: API, collection, landing page and conformance builders.
//   - tiles: the vector tiles extension.
//   - catalog: static and MongoDB backed collection metadata.
//   - ogcapi: HTTP handlers for every document plus status, liveness,
//     readiness and version endpoints.
//   - router, responder, probe, jsonutil, yamlutil: transport, RFC 9457
//     problem responses, readiness probes and encoding helpers.
//   - config: the YAML configuration of the geoweaver command.
//
// # Quick Start
//
//	static, _ := catalog.NewStatic(catalog.Info{ID: "dem", Title: "Elevation"})
//	handler := ogcapi.NewHandler(
//	    ogcapi.WithCatalog(static),
//	    ogcapi.WithRegistry(extension.NewRegistry(tiles.New())),
//	    ogcapi.WithServicePath("ogc/images"),
//	)
//
//	mux := router.New(handler.Routes(), router.WithBasePath("/ogc/images"))
//	http.ListenAndServe(":8080", mux)
package geoweaver
