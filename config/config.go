// Package config loads the YAML configuration of the geoweaver command.
// Library packages are configured with functional options; this file format
// only feeds the command line.
package config

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/drblury/geoweaver/catalog"
	"github.com/drblury/geoweaver/router"
)

// Config is the root of the configuration file.
type Config struct {
	Listen      string         `yaml:"listen"`
	PublicURL   string         `yaml:"publicURL"`
	ServicePath string         `yaml:"servicePath"`
	Service     Service        `yaml:"service"`
	Collections []catalog.Info `yaml:"collections"`
	Mongo       Mongo          `yaml:"mongo"`
	Engine      Engine         `yaml:"engine"`
	HTTP        HTTP           `yaml:"http"`
	Log         Log            `yaml:"log"`
}

// Service describes the published service.
type Service struct {
	ID          string `yaml:"id"`
	Version     string `yaml:"version"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	// Operations restricts the routed operations. Empty means all core
	// operations.
	Operations []string `yaml:"operations"`
}

// Mongo selects the MongoDB catalog. It is used when URI is set; otherwise
// the static collections are served.
type Mongo struct {
	URI        string        `yaml:"uri"`
	Database   string        `yaml:"database"`
	Collection string        `yaml:"collection"`
	Timeout    time.Duration `yaml:"timeout"`
}

// Engine points at the health route of the data engine serving the
// collections. When HealthURL is set the service is only ready while the
// route answers with one of ExpectStatuses (any 2xx when empty).
type Engine struct {
	HealthURL      string `yaml:"healthURL"`
	Method         string `yaml:"method"`
	ExpectStatuses []int  `yaml:"expectStatuses"`
}

// Enabled reports whether an engine health route is configured.
func (e Engine) Enabled() bool {
	return strings.TrimSpace(e.HealthURL) != ""
}

// Enabled reports whether the MongoDB catalog is configured.
func (m Mongo) Enabled() bool {
	return strings.TrimSpace(m.URI) != ""
}

// HTTP holds the transport settings.
type HTTP struct {
	router.Config    `yaml:",inline"`
	ValidateRequests bool          `yaml:"validateRequests"`
	ProbeTimeout     time.Duration `yaml:"probeTimeout"`
	ShutdownTimeout  time.Duration `yaml:"shutdownTimeout"`
}

// Log selects the slog handler.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used for keys missing from the file.
func Default() Config {
	return Config{
		Listen:      ":8080",
		ServicePath: "ogc/images",
		Service: Service{
			ID:      "images",
			Version: "1.0.0",
			Title:   "Images",
		},
		Mongo: Mongo{
			Collection: "collections",
			Timeout:    5 * time.Second,
		},
		HTTP: HTTP{
			Config: router.Config{
				Timeout:         30 * time.Second,
				QuietdownRoutes: []string{"/healthz", "/readyz"},
				HideHeaders:     []string{"Authorization", "Cookie"},
			},
			ValidateRequests: true,
			ProbeTimeout:     2 * time.Second,
			ShutdownTimeout:  10 * time.Second,
		},
		Log: Log{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the file at path from fsys on top of Default and validates the
// result.
func Load(fsys afero.Fs, path string) (Config, error) {
	cfg := Default()

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every problem of the configuration at once.
func (c Config) Validate() error {
	var result *multierror.Error

	if err := validation.ValidateStruct(&c,
		validation.Field(&c.Listen, validation.Required),
		validation.Field(&c.PublicURL, is.URL),
	); err != nil {
		result = multierror.Append(result, err)
	}
	if err := validation.ValidateStruct(&c.Service,
		validation.Field(&c.Service.ID, validation.Required),
		validation.Field(&c.Service.Version, validation.Required, is.Semver),
	); err != nil {
		result = multierror.Append(result, fmt.Errorf("service: %w", err))
	}
	if c.Mongo.Enabled() {
		if err := validation.ValidateStruct(&c.Mongo,
			validation.Field(&c.Mongo.Database, validation.Required),
			validation.Field(&c.Mongo.Collection, validation.Required),
		); err != nil {
			result = multierror.Append(result, fmt.Errorf("mongo: %w", err))
		}
	}
	if c.Engine.Enabled() {
		if err := validation.ValidateStruct(&c.Engine,
			validation.Field(&c.Engine.HealthURL, is.URL),
			validation.Field(&c.Engine.Method, validation.In(http.MethodGet, http.MethodHead)),
			validation.Field(&c.Engine.ExpectStatuses, validation.Each(validation.Min(100), validation.Max(599))),
		); err != nil {
			result = multierror.Append(result, fmt.Errorf("engine: %w", err))
		}
	}
	for i := range c.Collections {
		info := &c.Collections[i]
		if err := validation.ValidateStruct(info,
			validation.Field(&info.ID, validation.Required),
		); err != nil {
			result = multierror.Append(result, fmt.Errorf("collections[%d]: %w", i, err))
		}
	}
	if err := validation.Validate(c.HTTP.Timeout, validation.Min(time.Duration(0))); err != nil {
		result = multierror.Append(result, fmt.Errorf("http.timeout: %w", err))
	}
	if err := validation.Validate(strings.ToLower(c.Log.Format), validation.In("json", "text")); err != nil {
		result = multierror.Append(result, fmt.Errorf("log.format: %w", err))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

// SlogLevel parses the configured level.
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
