package server

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/vdiff/pkg/render"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

// Config configures a Server.
type Config struct {
	// Address is the listen address. Default: "localhost:8080".
	Address string

	// ReadTimeout bounds reading one request, and the wait for the next
	// message of a live session. Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout bounds writing one response or WebSocket message.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// ShutdownTimeout bounds a graceful shutdown. Default: 10 seconds.
	ShutdownTimeout time.Duration

	// MaxMessageSize bounds request bodies and incoming WebSocket
	// messages. Default: 1MB.
	MaxMessageSize int64

	// AllowedOrigins lists the origins allowed to open live sessions. "*"
	// allows any origin. Empty means same-origin only.
	AllowedOrigins []string

	// Render configures HTML output.
	Render render.Config

	// Matcher holds the identity rules of every diff. Default:
	// vdom.DefaultMatcher.
	Matcher vdom.Matcher

	// Verify makes live sessions and /api/render check the patched tree
	// against a fresh build and rebuild on mismatch.
	Verify bool

	// MetricsPath is where metrics are served. Default: "/metrics".
	MetricsPath string

	// DisableMetrics turns the metrics endpoint off. Metrics are still
	// collected in Registry.
	DisableMetrics bool

	// Namespace prefixes metric names. Default: "vdiff".
	Namespace string

	// Registry collects the server's metrics. Default: a new registry.
	Registry *prometheus.Registry

	// Logger is the server logger. Default: slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:         "localhost:8080",
		ReadTimeout:     60 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		MaxMessageSize:  1 << 20,
		Render:          render.Config{Indent: "  "},
		Matcher:         vdom.DefaultMatcher,
		MetricsPath:     "/metrics",
		Namespace:       "vdiff",
	}
}

// withDefaults returns a copy of c with unset fields defaulted.
func (c *Config) withDefaults() *Config {
	d := DefaultConfig()
	if c == nil {
		return d
	}
	out := *c
	if out.Address == "" {
		out.Address = d.Address
	}
	if out.ReadTimeout == 0 {
		out.ReadTimeout = d.ReadTimeout
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = d.WriteTimeout
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = d.ShutdownTimeout
	}
	if out.MaxMessageSize == 0 {
		out.MaxMessageSize = d.MaxMessageSize
	}
	if out.Matcher == (vdom.Matcher{}) {
		out.Matcher = d.Matcher
	}
	if out.MetricsPath == "" {
		out.MetricsPath = d.MetricsPath
	}
	if out.Namespace == "" {
		out.Namespace = d.Namespace
	}
	if out.Registry == nil {
		out.Registry = prometheus.NewRegistry()
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return &out
}
