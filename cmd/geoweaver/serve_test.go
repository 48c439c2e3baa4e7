package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/drblury/geoweaver/config"
	"github.com/drblury/geoweaver/document"
	"github.com/drblury/geoweaver/extension"
	"github.com/drblury/geoweaver/ogcapi"
)

// brokenAPIExtension cannot contribute to the API description.
type brokenAPIExtension struct{}

func (brokenAPIExtension) ExtendAPI(*openapi3.T) error { return errors.New("fragment missing") }

func (brokenAPIExtension) ExtendCollection(*document.Collection, *document.MetadataRequest) error {
	return nil
}

func TestRunReleasesResourcesWhenMuxFails(t *testing.T) {
	released := false
	a := &app{
		cfg:    config.Default(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		handler: ogcapi.NewHandler(
			ogcapi.WithRegistry(extension.NewRegistry(brokenAPIExtension{})),
		),
		closers: []func(context.Context) error{
			func(context.Context) error {
				released = true
				return nil
			},
		},
	}

	if err := a.run(context.Background()); err == nil {
		t.Fatal("expected error when the api description cannot be built")
	}
	if !released {
		t.Fatal("expected resources to be released")
	}
}
