package ogcapi

import (
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/drblury/geoweaver/builder"
	"github.com/drblury/geoweaver/catalog"
	"github.com/drblury/geoweaver/document"
	"github.com/drblury/geoweaver/extension"
	"github.com/drblury/geoweaver/format"
	"github.com/drblury/geoweaver/probe"
	"github.com/drblury/geoweaver/responder"
)

const defaultProbeTimeout = 2 * time.Second

// Option follows the functional options pattern used by NewHandler.
type Option func(*Handler)

// Handler serves the documents of one service. It is safe for concurrent use
// once constructed: every document is built per request.
type Handler struct {
	*responder.Responder
	registry        *extension.Registry
	catalog         catalog.Catalog
	negotiator      *format.Negotiator
	descriptor      *document.ServiceDescriptor
	metadata        document.ServiceMetadata
	baseAPI         *openapi3.T
	publicURL       string
	servicePath     string
	conformance     []string
	templates       *template.Template
	logger          *slog.Logger
	probeTimeout    time.Duration
	livenessChecks  []probe.Func
	readinessChecks []probe.Func

	apiBuilder         *builder.APIBuilder
	collectionBuilder  *builder.CollectionBuilder
	landingBuilder     *builder.LandingBuilder
	conformanceBuilder *builder.ConformanceBuilder
}

// NewHandler constructs a Handler. Without options it serves an empty static
// catalog with the packaged base API description and no extensions.
func NewHandler(opts ...Option) *Handler {
	h := &Handler{
		Responder:    responder.NewResponder(responder.WithErrorClassifier(ClassifyError)),
		registry:     extension.NewRegistry(),
		catalog:      &catalog.Static{},
		negotiator:   format.NewNegotiator(),
		templates:    defaultTemplates,
		logger:       slog.Default(),
		probeTimeout: defaultProbeTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	if h.baseAPI == nil {
		h.baseAPI = extension.NewFragmentLoader(assets, baseAPIResource).MustLoad()
	}

	builderOpts := []builder.Option{
		builder.WithRegistry(h.registry),
		builder.WithFormats(h.negotiator.Formats()...),
		builder.WithDescriptor(h.descriptor),
		builder.WithLogger(h.logger),
	}
	h.apiBuilder = builder.NewAPIBuilder(builderOpts...)
	h.collectionBuilder = builder.NewCollectionBuilder(builderOpts...)
	h.landingBuilder = builder.NewLandingBuilder(builderOpts...)
	h.conformanceBuilder = builder.NewConformanceBuilder(h.conformance, builderOpts...)
	return h
}

// WithResponder replaces the responder used to render documents and problems.
// Pass ClassifyError to its error classifier to keep the status mapping.
func WithResponder(r *responder.Responder) Option {
	return func(h *Handler) {
		if r != nil {
			h.Responder = r
		}
	}
}

// WithRegistry sets the extensions consulted for every document.
func WithRegistry(registry *extension.Registry) Option {
	return func(h *Handler) {
		if registry != nil {
			h.registry = registry
		}
	}
}

// WithCatalog sets the source of collection metadata.
func WithCatalog(c catalog.Catalog) Option {
	return func(h *Handler) {
		if c != nil {
			h.catalog = c
		}
	}
}

// WithNegotiator sets the negotiator and with it the representations links
// are emitted for.
func WithNegotiator(n *format.Negotiator) Option {
	return func(h *Handler) {
		if n != nil {
			h.negotiator = n
		}
	}
}

// WithDescriptor sets the service descriptor. Only the operations it lists
// are routed.
func WithDescriptor(d *document.ServiceDescriptor) Option {
	return func(h *Handler) {
		h.descriptor = d
	}
}

// WithMetadata sets the title and description of the landing page.
func WithMetadata(meta document.ServiceMetadata) Option {
	return func(h *Handler) {
		h.metadata = meta
	}
}

// WithBaseAPI replaces the packaged base API description.
func WithBaseAPI(api *openapi3.T) Option {
	return func(h *Handler) {
		if api != nil {
			h.baseAPI = api
		}
	}
}

// WithPublicURL sets the server root used in links, e.g.
// https://maps.example.com. When empty the root is derived from the request.
func WithPublicURL(publicURL string) Option {
	return func(h *Handler) {
		h.publicURL = strings.TrimRight(strings.TrimSpace(publicURL), "/")
	}
}

// WithServicePath sets the service root relative to the public URL, e.g.
// ogc/images.
func WithServicePath(path string) Option {
	return func(h *Handler) {
		h.servicePath = strings.Trim(strings.TrimSpace(path), "/")
	}
}

// WithConformanceClasses declares classes in addition to the core ones and
// those contributed by extensions.
func WithConformanceClasses(classes ...string) Option {
	return func(h *Handler) {
		h.conformance = append(h.conformance, classes...)
	}
}

// WithTemplates replaces the HTML templates. The set must define
// landing.html, conformance.html, collections.html, collection.html and
// api.html.
func WithTemplates(tmpl *template.Template) Option {
	return func(h *Handler) {
		if tmpl != nil {
			h.templates = tmpl
		}
	}
}

// WithLogger sets the logger passed to the document builders.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithProbeTimeout adjusts the maximum duration allowed for probe checks.
func WithProbeTimeout(timeout time.Duration) Option {
	return func(h *Handler) {
		if timeout > 0 {
			h.probeTimeout = timeout
		}
	}
}

// WithLivenessChecks replaces the liveness checks.
func WithLivenessChecks(checks ...probe.Func) Option {
	return func(h *Handler) {
		h.livenessChecks = filterProbes(checks)
	}
}

// WithReadinessChecks replaces the readiness checks.
func WithReadinessChecks(checks ...probe.Func) Option {
	return func(h *Handler) {
		h.readinessChecks = filterProbes(checks)
	}
}

// API builds the merged API description. It is used for request validation
// and by the check command; the api endpoint builds its own copy per request.
func (h *Handler) API() (*openapi3.T, error) {
	return h.apiBuilder.Build(h.baseAPI)
}
