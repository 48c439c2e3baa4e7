package router

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	oapiMW "github.com/oapi-codegen/nethttp-middleware"
)

// New returns a new *http.ServeMux serving apiHandle below the configured base
// path, plus every handler registered with WithHandler.
func New(apiHandle http.Handler, opts ...Option) *http.ServeMux {
	if apiHandle == nil {
		panic("router: handler cannot be nil")
	}

	settings := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(settings)
		}
	}

	finalHandler := applyMiddlewares(apiHandle, settings.middlewareChain())
	mux := http.NewServeMux()
	if settings.basePath == "" {
		mux.Handle("/", finalHandler)
	} else {
		mounted := stripBasePath(settings.basePath, finalHandler)
		mux.Handle(settings.basePath, mounted)
		mux.Handle(settings.basePath+"/", mounted)
	}

	unvalidated := settings.unvalidatedChain()
	for _, h := range settings.handlers {
		mux.Handle(h.pattern, applyMiddlewares(h.handler, unvalidated))
	}
	return mux
}

// stripBasePath removes base from the request path. The base path itself maps
// to "/".
func stripBasePath(base string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, base)
		if path == "" {
			path = "/"
		}
		rawPath := strings.TrimPrefix(r.URL.RawPath, base)
		if r.URL.RawPath != "" && rawPath == "" {
			rawPath = "/"
		}

		r2 := new(http.Request)
		*r2 = *r
		r2.URL = new(url.URL)
		*r2.URL = *r.URL
		r2.URL.Path = path
		r2.URL.RawPath = rawPath
		next.ServeHTTP(w, r2)
	})
}

func applyMiddlewares(handler http.Handler, middlewares []Middleware) http.Handler {
	if len(middlewares) == 0 {
		return handler
	}

	for i := len(middlewares) - 1; i >= 0; i-- {
		middleware := middlewares[i]
		if middleware == nil {
			continue
		}
		handler = middleware(handler)
	}

	return handler
}

// oapiMiddleware validates requests against the merged API description.
// Servers are dropped so validation only matches paths relative to the
// service root.
func oapiMiddleware(swagger *openapi3.T) Middleware {
	return func(next http.Handler) http.Handler {
		swagger.Servers = nil

		validatorOptions := &oapiMW.Options{
			Options: openapi3filter.Options{
				AuthenticationFunc: func(context.Context, *openapi3filter.AuthenticationInput) error {
					return nil
				},
			},
		}

		return oapiMW.OapiRequestValidatorWithOptions(swagger, validatorOptions)(next)
	}
}

// statusRecorder captures the status written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	if s.status == 0 {
		s.status = status
	}
	s.ResponseWriter.WriteHeader(status)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// loggingMiddleware logs every served request at debug level, except those
// whose path is listed in quiet.
func loggingMiddleware(logger *slog.Logger, quiet []string, hidden []string) Middleware {
	quiet = slices.Clone(quiet)
	hidden = slices.Clone(hidden)
	logger.Debug("request logging enabled", "QuietdownRoutes", quiet, "HideHeaders", hidden)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(quiet, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			started := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debug("Request",
				"Path", r.URL.Path,
				"Query", r.URL.RawQuery,
				"Method", r.Method,
				"Header", redactedHeaders(r.Header, hidden),
				"Status", status,
				"Duration", time.Since(started),
			)
		})
	}
}

// corsMiddleware answers preflight requests and sets the allowed origin on
// requests from an origin listed in cfg. "*" allows every origin.
func corsMiddleware(cfg CORSConfig) Middleware {
	cfg = Config{CORS: cfg}.clone().CORS
	allowMethods := strings.Join(cfg.Methods, ",")
	allowHeaders := strings.Join(cfg.Headers, ",")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			if slices.Contains(cfg.Origins, origin) || slices.Contains(cfg.Origins, "*") {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Vary", "Origin")
			}
			if r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			h.Set("Access-Control-Allow-Methods", allowMethods)
			h.Set("Access-Control-Allow-Headers", allowHeaders)
			if cfg.AllowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			w.WriteHeader(http.StatusOK)
		})
	}
}

func timeoutMiddleware(timeout time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, "request timed out")
	}
}

// redactedHeaders copies src, replacing the values of hidden headers with
// their total length.
func redactedHeaders(src http.Header, hidden []string) http.Header {
	headers := src.Clone()
	for _, name := range hidden {
		key := http.CanonicalHeaderKey(name)
		values, ok := headers[key]
		if !ok {
			continue
		}
		size := 0
		for _, v := range values {
			size += len(v)
		}
		headers[key] = []string{fmt.Sprintf("[REDACTED - %d bytes]", size)}
	}
	return headers
}
