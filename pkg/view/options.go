package view

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vdiff/pkg/host"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

type config struct {
	fallback any
	builder  host.Builder
	matcher  *vdom.Matcher
	logger   *slog.Logger
	metrics  *Metrics
	tracer   trace.Tracer
	verify   bool
	onError  ErrorHandler
}

// Option configures a View.
type Option func(*config)

// WithFallback sets the template rendered when the main template fails.
// Its argument type must match the view's.
func WithFallback[T any](t Template[T]) Option {
	return func(c *config) {
		c.fallback = t
	}
}

// WithBuilder sets the tree-construction collaborator used to patch the
// mount. Default: host.NewBuilder().
func WithBuilder(b host.Builder) Option {
	return func(c *config) {
		c.builder = b
	}
}

// WithMatcher sets the identity rules used by the diff.
func WithMatcher(m vdom.Matcher) Option {
	return func(c *config) {
		c.matcher = &m
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithMetrics records renders into m.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithTracer sets the tracer. Default: the global provider's tracer.
func WithTracer(t trace.Tracer) Option {
	return func(c *config) {
		c.tracer = t
	}
}

// WithVerify makes every render compare the mount against the retained
// tree, rebuilding on mismatch.
func WithVerify(verify bool) Option {
	return func(c *config) {
		c.verify = verify
	}
}

// WithErrorHandler sets the handler for template failures.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *config) {
		c.onError = h
	}
}
