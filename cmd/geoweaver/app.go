package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/spf13/afero"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/drblury/geoweaver/catalog"
	"github.com/drblury/geoweaver/config"
	"github.com/drblury/geoweaver/document"
	"github.com/drblury/geoweaver/extension"
	"github.com/drblury/geoweaver/ogcapi"
	"github.com/drblury/geoweaver/probe"
	"github.com/drblury/geoweaver/responder"
	"github.com/drblury/geoweaver/router"
	"github.com/drblury/geoweaver/tiles"
)

// app holds the components built from the configuration file.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	registry *extension.Registry
	catalog  catalog.Catalog
	handler  *ogcapi.Handler
	closers  []func(context.Context) error
}

func newApp(ctx context.Context, fsys afero.Fs, path string, logOutput io.Writer) (*app, error) {
	cfg, err := config.Load(fsys, path)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg.Log, logOutput)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		registry: extension.NewRegistry(tiles.New()),
	}
	if err := a.registry.Check(); err != nil {
		return nil, fmt.Errorf("extension preflight failed: %w", err)
	}
	logger.Info("extensions registered", "extensions", a.registry.Names())

	operations := cfg.Service.Operations
	if len(operations) == 0 {
		operations = document.CoreOperations()
	}
	descriptor, err := document.NewServiceDescriptor(cfg.Service.ID, cfg.Service.Version, operations...)
	if err != nil {
		return nil, err
	}

	readiness := []probe.Func{probe.NewCheckProbe("extensions", a.registry)}
	if cfg.Mongo.Enabled() {
		client, err := connectMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Disconnect)
		a.catalog = catalog.NewMongo(client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection))
		readiness = append(readiness, probe.NewMongoPingProbe(client, nil))
	} else {
		static, err := catalog.NewStatic(cfg.Collections...)
		if err != nil {
			return nil, err
		}
		a.catalog = static
	}

	if cfg.Engine.Enabled() {
		client := &http.Client{Timeout: cfg.HTTP.ProbeTimeout}
		readiness = append(readiness, probe.NewHTTPProbe("engine", cfg.Engine.Method, cfg.Engine.HealthURL, client,
			probe.WithHTTPAllowedStatuses(cfg.Engine.ExpectStatuses...),
			probe.WithHTTPRequestMutator(func(req *http.Request) error {
				req.Header.Set("User-Agent", "geoweaver/"+Version)
				return nil
			}),
		))
	}

	a.handler = ogcapi.NewHandler(
		ogcapi.WithResponder(responder.NewResponder(
			responder.WithLogger(logger),
			responder.WithErrorClassifier(ogcapi.ClassifyError),
		)),
		ogcapi.WithRegistry(a.registry),
		ogcapi.WithCatalog(a.catalog),
		ogcapi.WithDescriptor(descriptor),
		ogcapi.WithMetadata(document.ServiceMetadata{
			Title:       cfg.Service.Title,
			Description: cfg.Service.Description,
		}),
		ogcapi.WithPublicURL(cfg.PublicURL),
		ogcapi.WithServicePath(cfg.ServicePath),
		ogcapi.WithLogger(logger),
		ogcapi.WithProbeTimeout(cfg.HTTP.ProbeTimeout),
		ogcapi.WithReadinessChecks(readiness...),
	)
	logger.Info("service configured", "service", descriptor.String(), "servicePath", cfg.ServicePath)
	return a, nil
}

// mux mounts the service routes below the service path and the operational
// routes at the root.
func (a *app) mux() (*http.ServeMux, error) {
	opts := []router.Option{
		router.WithConfig(a.cfg.HTTP.Config),
		router.WithLogger(a.logger),
		router.WithBasePath(a.cfg.ServicePath),
	}
	if a.cfg.HTTP.ValidateRequests {
		api, err := a.handler.API()
		if err != nil {
			return nil, fmt.Errorf("building api description for request validation: %w", err)
		}
		opts = append(opts, router.WithSwagger(api))
	} else {
		opts = append(opts, router.WithoutOpenAPIValidation())
	}
	for _, route := range a.handler.OperationalRoutes() {
		opts = append(opts, router.WithHandler(route.Pattern, route.Handler))
	}
	return router.New(a.handler.Routes(), opts...), nil
}

func (a *app) close(ctx context.Context) {
	for _, closeFn := range a.closers {
		if err := closeFn(ctx); err != nil {
			a.logger.Warn("failed to release resource", "error", err)
		}
	}
}

func connectMongo(ctx context.Context, cfg config.Mongo) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI).SetConnectTimeout(cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	return client, nil
}

func newLogger(cfg config.Log, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	}
	return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
}
