package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vango-dev/vdiff/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Metrics.Path != DefaultMetricsPath {
		t.Errorf("Metrics.Path = %q, want %q", cfg.Metrics.Path, DefaultMetricsPath)
	}
	if cfg.Diff.IdentityAttr != DefaultIdentityAttr {
		t.Errorf("Diff.IdentityAttr = %q, want %q", cfg.Diff.IdentityAttr, DefaultIdentityAttr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if !errors.HasCode(err, "E141") {
		t.Errorf("Load(missing) error = %v, want E141", err)
	}

	configJSON := `{
  "server": {
    "host": "0.0.0.0",
    "port": 9090,
    "readTimeout": "5s",
    "allowedOrigins": ["https://example.com"]
  },
  "render": { "pretty": true },
  "log": { "level": "debug", "format": "json" },
  "diff": { "verify": true }
}
`
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Address() != "0.0.0.0:9090" {
		t.Errorf("Address() = %q, want 0.0.0.0:9090", cfg.Address())
	}
	if d, _ := cfg.ReadTimeout(); d != 5*time.Second {
		t.Errorf("ReadTimeout() = %v, want 5s", d)
	}
	if d, _ := cfg.WriteTimeout(); d != 10*time.Second {
		t.Errorf("WriteTimeout() = %v, want the 10s default", d)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "https://example.com" {
		t.Errorf("AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
	if !cfg.Render.Pretty || cfg.Render.Indent != "  " {
		t.Errorf("Render = %+v, want pretty with default indent", cfg.Render)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = false, want the default true")
	}
	if level, _ := cfg.LogLevel(); level != slog.LevelDebug {
		t.Errorf("LogLevel() = %v, want debug", level)
	}
	if !cfg.Diff.Verify || cfg.Diff.IdentityAttr != DefaultIdentityAttr {
		t.Errorf("Diff = %+v", cfg.Diff)
	}
	if cfg.Path() != configPath {
		t.Errorf("Path() = %q, want %q", cfg.Path(), configPath)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tmpDir); !errors.HasCode(err, "E120") {
		t.Errorf("Load() error = %v, want E120", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ConfigFileName)

	cfg := New()
	if err := cfg.Save(); err == nil {
		t.Error("Save() without a path should fail")
	}

	cfg.Server.Port = 4000
	cfg.Log.Format = "json"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Server.Port != 4000 || loaded.Log.Format != "json" {
		t.Errorf("loaded = %+v", loaded)
	}

	loaded.Server.Port = 4001
	if err := loaded.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	again, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if again.Server.Port != 4001 {
		t.Errorf("Server.Port = %d, want 4001", again.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		code   string
	}{
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "E122"},
		{"negative port", func(c *Config) { c.Server.Port = -1 }, "E122"},
		{"bad read timeout", func(c *Config) { c.Server.ReadTimeout = "soon" }, "E122"},
		{"bad write timeout", func(c *Config) { c.Server.WriteTimeout = "10" }, "E122"},
		{"negative message size", func(c *Config) { c.Server.MaxMessageSize = -5 }, "E122"},
		{"relative metrics path", func(c *Config) { c.Metrics.Path = "metrics" }, "E122"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "E121"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "E121"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := New()
			tc.modify(cfg)
			if err := cfg.Validate(); !errors.HasCode(err, tc.code) {
				t.Errorf("Validate() error = %v, want %s", err, tc.code)
			}
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := FindProjectRoot(nested); !errors.HasCode(err, "E141") {
		t.Errorf("FindProjectRoot() without config error = %v, want E141", err)
	}

	if err := New().SaveTo(filepath.Join(root, ConfigFileName)); err != nil {
		t.Fatal(err)
	}
	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindProjectRoot() = %q, want %q", got, want)
	}
	if !Exists(root) {
		t.Error("Exists(root) = false")
	}
}
