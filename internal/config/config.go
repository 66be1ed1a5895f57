package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/vdiff/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vdiff.json"

	// DefaultPort is the default server port.
	DefaultPort = 8080

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultMetricsPath is where Prometheus metrics are served.
	DefaultMetricsPath = "/metrics"

	// DefaultNamespace prefixes every metric name.
	DefaultNamespace = "vdiff"

	// DefaultIdentityAttr is the attribute consulted for element identity.
	DefaultIdentityAttr = "data-section-id"

	// DefaultMaxMessageSize bounds one incoming WebSocket message.
	DefaultMaxMessageSize = 1 << 20
)

// Config represents the complete vdiff.json configuration.
type Config struct {
	// Server contains HTTP and WebSocket settings.
	Server ServerConfig `json:"server,omitempty"`

	// Render contains HTML output settings.
	Render RenderConfig `json:"render,omitempty"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Log contains logging settings.
	Log LogConfig `json:"log,omitempty"`

	// Diff contains diff engine settings.
	Diff DiffConfig `json:"diff,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains server settings. Durations use Go syntax ("10s").
type ServerConfig struct {
	Host           string   `json:"host,omitempty"`
	Port           int      `json:"port,omitempty"`
	ReadTimeout    string   `json:"readTimeout,omitempty"`
	WriteTimeout   string   `json:"writeTimeout,omitempty"`
	MaxMessageSize int64    `json:"maxMessageSize,omitempty"`
	AllowedOrigins []string `json:"allowedOrigins,omitempty"`
}

// RenderConfig contains HTML rendering settings.
type RenderConfig struct {
	Pretty bool   `json:"pretty,omitempty"`
	Indent string `json:"indent,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled"`
	Namespace string `json:"namespace,omitempty"`
	Path      string `json:"path,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty"`
}

// DiffConfig contains diff engine settings.
type DiffConfig struct {
	// IdentityAttr is the attribute matched after the explicit key.
	IdentityAttr string `json:"identityAttr,omitempty"`

	// Verify makes views, /api/render and the apply command check the
	// patched tree against a fresh build and rebuild on mismatch.
	Verify bool `json:"verify,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           DefaultHost,
			Port:           DefaultPort,
			ReadTimeout:    "60s",
			WriteTimeout:   "10s",
			MaxMessageSize: DefaultMaxMessageSize,
		},
		Render: RenderConfig{
			Indent: "  ",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
			Path:      DefaultMetricsPath,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Diff: DiffConfig{
			IdentityAttr: DefaultIdentityAttr,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for vdiff.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path. Fields the
// file leaves out keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path))
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + path + ": " + err.Error())
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for fields set to their zero value.
func (c *Config) applyDefaults() {
	d := New()

	if c.Server.Host == "" {
		c.Server.Host = d.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = d.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = d.Server.WriteTimeout
	}
	if c.Server.MaxMessageSize == 0 {
		c.Server.MaxMessageSize = d.Server.MaxMessageSize
	}
	if c.Render.Indent == "" {
		c.Render.Indent = d.Render.Indent
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = d.Metrics.Namespace
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = d.Metrics.Path
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Diff.IdentityAttr == "" {
		c.Diff.IdentityAttr = d.Diff.IdentityAttr
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E122").
			WithDetail("Port must be between 0 and 65535")
	}
	if _, err := c.ReadTimeout(); err != nil {
		return errors.New("E122").WithDetail("readTimeout: " + err.Error())
	}
	if _, err := c.WriteTimeout(); err != nil {
		return errors.New("E122").WithDetail("writeTimeout: " + err.Error())
	}
	if c.Server.MaxMessageSize < 0 {
		return errors.New("E122").WithDetail("maxMessageSize must not be negative")
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("E122").WithDetail("metrics path must start with /")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if f := c.Log.Format; f != "text" && f != "json" {
		return errors.New("E121").WithDetailf("unknown log format %q, want text or json", f)
	}
	return nil
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// ReadTimeout parses Server.ReadTimeout.
func (c *Config) ReadTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Server.ReadTimeout)
}

// WriteTimeout parses Server.WriteTimeout.
func (c *Config) WriteTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Server.WriteTimeout)
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, errors.New("E121").WithDetailf("unknown log level %q", c.Log.Level)
	}
	return level, nil
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the directory holding
// vdiff.json.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E141").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}
