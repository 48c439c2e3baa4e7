package ogcapi

import (
	"net/http"

	"github.com/drblury/geoweaver/document"
	"github.com/drblury/geoweaver/format"
	"github.com/drblury/geoweaver/link"
)

// openAPIJSONType is the Content-Type of the JSON API description.
const openAPIJSONType = "application/vnd.oai.openapi+json;version=3.0"

// Route pairs a ServeMux pattern with its handler.
type Route struct {
	Pattern string
	Handler http.HandlerFunc
}

// Routes returns a ServeMux serving every operation of the service descriptor
// relative to the service root. Without a descriptor all core operations are
// routed.
func (h *Handler) Routes() *http.ServeMux {
	routes := []struct {
		operation string
		Route
	}{
		{document.OpGetLandingPage, Route{"GET /{$}", h.GetLandingPage}},
		{document.OpGetAPI, Route{"GET /api", h.GetAPI}},
		{document.OpGetConformanceDeclaration, Route{"GET /conformance", h.GetConformance}},
		{document.OpGetCollections, Route{"GET /collections", h.GetCollections}},
		{document.OpDescribeCollection, Route{"GET /collections/{collectionId}", h.GetCollection}},
	}

	mux := http.NewServeMux()
	for _, route := range routes {
		if h.descriptor != nil && !h.descriptor.HasOperation(route.operation) {
			continue
		}
		mux.HandleFunc(route.Pattern, route.Handler)
	}
	return mux
}

// OperationalRoutes lists the status, liveness, readiness and version
// endpoints. They live outside the service root.
func (h *Handler) OperationalRoutes() []Route {
	return []Route{
		{"GET /status", h.GetStatus},
		{"GET /healthz", h.GetHealthz},
		{"GET /readyz", h.GetReadyz},
		{"GET /version", h.GetVersion},
	}
}

// GetLandingPage serves the landing page.
func (h *Handler) GetLandingPage(w http.ResponseWriter, r *http.Request) {
	f, ok := h.negotiate(w, r)
	if !ok {
		return
	}
	page := h.landingBuilder.Build(h.metadata, h.metadataRequest(r, "", f))
	h.render(w, r, f, page, templateLanding)
}

// GetAPI serves the API description merged with every extension fragment.
// The HTML representation is a viewer loading the JSON representation.
func (h *Handler) GetAPI(w http.ResponseWriter, r *http.Request) {
	f, ok := h.negotiate(w, r)
	if !ok {
		return
	}

	req := h.metadataRequest(r, "", f)
	if f.Name == format.HTML.Name {
		title := h.metadata.Title
		if title == "" {
			title = "API definition"
		}
		h.RespondWithHTML(w, r, http.StatusOK, h.templates.Lookup(templateAPI), apiPage{
			Title:       title,
			DocumentURL: link.BuildURL(req.BaseURL, req.ServiceURLPath("api"), link.Query(format.QueryParam, format.JSON.MediaType)),
		})
		return
	}

	api, err := h.apiBuilder.Build(h.baseAPI)
	if err != nil {
		h.HandleErrors(w, r, err, "failed to build the api description")
		return
	}
	switch f.Name {
	case format.YAML.Name:
		h.RespondWithYAML(w, r, http.StatusOK, api)
	case format.JSON.Name:
		h.RespondWithJSONAs(w, r, http.StatusOK, api, openAPIJSONType)
	default:
		h.RespondWithJSONAs(w, r, http.StatusOK, api, f.MediaType)
	}
}

// GetConformance serves the conformance declaration.
func (h *Handler) GetConformance(w http.ResponseWriter, r *http.Request) {
	f, ok := h.negotiate(w, r)
	if !ok {
		return
	}
	h.render(w, r, f, h.conformanceBuilder.Build(), templateConformance)
}

// GetCollections serves every collection of the catalog.
func (h *Handler) GetCollections(w http.ResponseWriter, r *http.Request) {
	f, ok := h.negotiate(w, r)
	if !ok {
		return
	}

	infos, err := h.catalog.Collections(r.Context())
	if err != nil {
		h.HandleErrors(w, r, err, "failed to list collections")
		return
	}
	doc, err := h.collectionBuilder.BuildAll(infos, h.metadataRequest(r, "", f))
	if err != nil {
		h.HandleErrors(w, r, err, "failed to build the collections document")
		return
	}
	h.render(w, r, f, doc, templateCollections)
}

// GetCollection serves the collection named by the collectionId path value.
func (h *Handler) GetCollection(w http.ResponseWriter, r *http.Request) {
	f, ok := h.negotiate(w, r)
	if !ok {
		return
	}

	id := r.PathValue("collectionId")
	info, err := h.catalog.Collection(r.Context(), id)
	if err != nil {
		h.HandleErrors(w, r, err, "failed to look up collection")
		return
	}
	collection, err := h.collectionBuilder.Build(info, h.metadataRequest(r, id, f))
	if err != nil {
		h.HandleErrors(w, r, err, "failed to build the collection document")
		return
	}
	h.render(w, r, f, collection, templateCollection)
}

type apiPage struct {
	Title       string
	DocumentURL string
}

func (h *Handler) negotiate(w http.ResponseWriter, r *http.Request) (format.Format, bool) {
	f, err := h.negotiator.Negotiate(r, h.negotiator.Formats())
	if err != nil {
		h.HandleErrors(w, r, err, "representation negotiation failed")
		return format.Format{}, false
	}
	return f, true
}

// render writes v in format f. Extension formats are JSON encoded and served
// under their own media type.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, f format.Format, v any, templateName string) {
	switch f.Name {
	case format.YAML.Name:
		h.RespondWithYAML(w, r, http.StatusOK, v)
	case format.HTML.Name:
		h.RespondWithHTML(w, r, http.StatusOK, h.templates.Lookup(templateName), v)
	case format.JSON.Name:
		h.RespondWithJSON(w, r, http.StatusOK, v)
	default:
		h.RespondWithJSONAs(w, r, http.StatusOK, v, f.MediaType)
	}
}

func (h *Handler) metadataRequest(r *http.Request, id string, f format.Format) *document.MetadataRequest {
	return &document.MetadataRequest{
		ID:                id,
		AcceptedMediaType: f.MediaType,
		BaseURL:           h.baseURL(r),
		ServicePath:       h.servicePath,
	}
}

// baseURL returns the configured public URL or the scheme and host the
// request was addressed to.
func (h *Handler) baseURL(r *http.Request) string {
	if h.publicURL != "" {
		return h.publicURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}
