package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func writeConfig(t *testing.T, content string) afero.Fs {
	t.Helper()

	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/etc/geoweaver.yml", []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return fsys
}

func TestLoadAppliesDefaults(t *testing.T) {
	fsys := writeConfig(t, `
service:
  id: images
  version: 2.1.0
  title: Images
collections:
  - id: dem
    title: Digital elevation model
http:
  timeout: 5s
  cors:
    origins: ["https://maps.example.com"]
`)

	cfg, err := Load(fsys, "/etc/geoweaver.yml")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if cfg.Listen != ":8080" || cfg.ServicePath != "ogc/images" {
		t.Fatalf("expected defaults to survive, got listen=%q servicePath=%q", cfg.Listen, cfg.ServicePath)
	}
	if cfg.Service.Version != "2.1.0" {
		t.Fatalf("unexpected service version %q", cfg.Service.Version)
	}
	if cfg.HTTP.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.HTTP.Timeout)
	}
	if len(cfg.HTTP.CORS.Origins) != 1 || cfg.HTTP.CORS.Origins[0] != "https://maps.example.com" {
		t.Fatalf("unexpected cors origins %v", cfg.HTTP.CORS.Origins)
	}
	if !cfg.HTTP.ValidateRequests {
		t.Fatal("expected request validation to default to true")
	}
	if len(cfg.Collections) != 1 || cfg.Collections[0].ID != "dem" {
		t.Fatalf("unexpected collections %+v", cfg.Collections)
	}
	if cfg.Mongo.Enabled() {
		t.Fatal("expected mongo catalog to be disabled")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(afero.NewMemMapFs(), "/missing.yml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	fsys := writeConfig(t, "service: [unterminated")
	if _, err := Load(fsys, "/etc/geoweaver.yml"); err == nil || !strings.Contains(err.Error(), "parsing config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	fsys := writeConfig(t, `
publicURL: "not a url"
service:
  id: ""
  version: one
mongo:
  uri: mongodb://localhost:27017
collections:
  - title: no id
log:
  level: loud
  format: xml
`)

	_, err := Load(fsys, "/etc/geoweaver.yml")
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"PublicURL", "service", "mongo", "collections[0]", "log.format", "log.level"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to mention %q, got %v", want, err)
		}
	}
}

func TestSlogLevel(t *testing.T) {
	level, err := Log{Level: "debug"}.SlogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v (%v)", level, err)
	}
	if _, err := (Log{Level: "loud"}).SlogLevel(); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestValidateEngineHealthRoute(t *testing.T) {
	cfg := Default()
	cfg.Engine = Engine{HealthURL: "http://engine:9000/health", Method: "POST", ExpectStatuses: []int{204, 700}}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected engine validation error")
	}
	for _, want := range []string{"engine", "Method", "ExpectStatuses"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}

	cfg.Engine.Method = "HEAD"
	cfg.Engine.ExpectStatuses = []int{204}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid engine config, got %v", err)
	}
}
