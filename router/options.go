package router

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Option configures New.
type Option func(*options)

// stage identifies one of the built-in middlewares.
type stage uint8

const (
	stageValidation stage = 1 << iota
	stageCORS
	stageTimeout
	stageLogging
)

type mountedHandler struct {
	pattern string
	handler http.Handler
}

type options struct {
	config   Config
	logger   *slog.Logger
	swagger  *openapi3.T
	basePath string
	handlers []mountedHandler

	before   []Middleware
	after    []Middleware
	replaced []Middleware
	disabled stage
}

func defaultOptions() *options {
	return &options{
		config: Config{Timeout: 30 * time.Second},
		logger: slog.Default(),
	}
}

func (o *options) enabled(s stage) bool {
	return o.disabled&s == 0
}

// middlewareChain is the chain wrapping the service handler.
func (o *options) middlewareChain() []Middleware {
	return o.chain(true)
}

// unvalidatedChain is the chain wrapping handlers added with WithHandler.
func (o *options) unvalidatedChain() []Middleware {
	return o.chain(false)
}

func (o *options) chain(validate bool) []Middleware {
	if len(o.replaced) > 0 {
		return slices.Clone(o.replaced)
	}

	chain := slices.Clone(o.before)
	if validate && o.enabled(stageValidation) && o.swagger != nil {
		chain = append(chain, oapiMiddleware(o.swagger))
	}
	if o.enabled(stageCORS) && len(o.config.CORS.Origins) > 0 {
		chain = append(chain, corsMiddleware(o.config.CORS))
	}
	if o.enabled(stageTimeout) && o.config.Timeout > 0 {
		chain = append(chain, timeoutMiddleware(o.config.Timeout))
	}
	if o.enabled(stageLogging) && o.logger != nil {
		chain = append(chain, loggingMiddleware(o.logger, o.config.QuietdownRoutes, o.config.HideHeaders))
	}
	return append(chain, o.after...)
}

// WithConfig replaces the router configuration.
func WithConfig(cfg Config) Option {
	cfg = cfg.clone()
	return func(o *options) {
		o.config = cfg
	}
}

// WithConfigMutator edits the configuration in place after defaults and
// earlier options were applied.
func WithConfigMutator(mutator func(*Config)) Option {
	return func(o *options) {
		if mutator != nil {
			mutator(&o.config)
		}
	}
}

// WithLogger sets the request logger. A nil logger disables request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSwagger validates service requests against swagger.
func WithSwagger(swagger *openapi3.T) Option {
	return func(o *options) {
		o.swagger = swagger
	}
}

// WithBasePath mounts the service handler below path, e.g. "/ogc/images".
// The handler sees paths relative to the base path, as the OpenAPI document
// describes them.
func WithBasePath(path string) Option {
	return func(o *options) {
		o.basePath = normalizeBasePath(path)
	}
}

// WithHandler mounts h at the ServeMux pattern next to the service handler.
// Requests to h are not validated against the OpenAPI document.
func WithHandler(pattern string, h http.Handler) Option {
	return func(o *options) {
		if pattern != "" && h != nil {
			o.handlers = append(o.handlers, mountedHandler{pattern: pattern, handler: h})
		}
	}
}

// WithMiddlewares runs middlewares before the built-in ones.
func WithMiddlewares(middlewares ...Middleware) Option {
	return func(o *options) {
		o.before = append(o.before, middlewares...)
	}
}

// WithTrailingMiddlewares runs middlewares after the built-in ones.
func WithTrailingMiddlewares(middlewares ...Middleware) Option {
	return func(o *options) {
		o.after = append(o.after, middlewares...)
	}
}

// WithMiddlewareChain replaces the whole chain, built-ins included.
func WithMiddlewareChain(middlewares ...Middleware) Option {
	replaced := slices.Clone(middlewares)
	return func(o *options) {
		o.replaced = replaced
	}
}

// WithoutOpenAPIValidation disables request validation.
func WithoutOpenAPIValidation() Option { return disable(stageValidation) }

// WithoutCORSMiddleware disables CORS handling whatever the configuration.
func WithoutCORSMiddleware() Option { return disable(stageCORS) }

// WithoutTimeoutMiddleware disables the request timeout.
func WithoutTimeoutMiddleware() Option { return disable(stageTimeout) }

// WithoutLoggingMiddleware disables request logging.
func WithoutLoggingMiddleware() Option { return disable(stageLogging) }

func disable(s stage) Option {
	return func(o *options) {
		o.disabled |= s
	}
}

func normalizeBasePath(path string) string {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return ""
	}
	return "/" + trimmed
}
