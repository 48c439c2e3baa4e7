// Package builder assembles the documents served by a service: the merged
// API description, collection documents, the landing page and the
// conformance declaration. Every builder consults the extension registry in
// registration order and creates a new document per call.
package builder

import (
	"log/slog"

	"github.com/drblury/geoweaver/document"
	"github.com/drblury/geoweaver/extension"
	"github.com/drblury/geoweaver/format"
)

// Option configures the builders via the functional options pattern.
type Option func(*settings)

type settings struct {
	registry   *extension.Registry
	formats    []format.Format
	descriptor *document.ServiceDescriptor
	logger     *slog.Logger
}

func newSettings(opts []Option) settings {
	s := settings{
		registry: extension.NewRegistry(),
		formats:  format.Defaults(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

// WithRegistry sets the extensions consulted while building documents.
func WithRegistry(registry *extension.Registry) Option {
	return func(s *settings) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithFormats sets the representations links are emitted for, in order.
func WithFormats(formats ...format.Format) Option {
	cloned := make([]format.Format, len(formats))
	copy(cloned, formats)
	return func(s *settings) {
		if len(cloned) > 0 {
			s.formats = cloned
		}
	}
}

// WithDescriptor sets the service descriptor used to stamp the API info.
func WithDescriptor(descriptor *document.ServiceDescriptor) Option {
	return func(s *settings) {
		s.descriptor = descriptor
	}
}

// WithLogger provides the structured logger used to report extension
// failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// negotiatedFormat returns the format matching mediaType, or the first format
// when nothing matches.
func negotiatedFormat(formats []format.Format, mediaType string) format.Format {
	for _, f := range formats {
		if f.Matches(mediaType) {
			return f
		}
	}
	if len(formats) == 0 {
		return format.JSON
	}
	return formats[0]
}
