package view

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/vdiff/pkg/vdom"
)

// Render statuses.
const (
	StatusOK       = "ok"       // Main template rendered
	StatusFallback = "fallback" // Fallback template rendered
	StatusEmpty    = "empty"    // Both templates failed
	StatusError    = "error"    // The render could not be completed
)

// Metrics holds the Prometheus collectors shared by views. A nil *Metrics
// records nothing.
type Metrics struct {
	renders        *prometheus.CounterVec
	operations     *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	templateErrors *prometheus.CounterVec
	resyncs        *prometheus.CounterVec
}

// NewMetrics registers the view collectors with reg under namespace. A nil
// reg uses prometheus.DefaultRegisterer.
//
// Metrics collected:
//   - <ns>_view_renders_total: renders by view and status
//   - <ns>_view_operations_total: emitted operations by view and type
//   - <ns>_view_render_duration_seconds: render cycle duration
//   - <ns>_view_template_errors_total: template failures by view and template
//   - <ns>_view_resyncs_total: full rebuilds after a desync
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "view",
			Name:      "renders_total",
			Help:      "Total number of view renders by status",
		}, []string{"view", "status"}),

		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "view",
			Name:      "operations_total",
			Help:      "Total number of tree operations emitted",
		}, []string{"view", "op"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "view",
			Name:      "render_duration_seconds",
			Help:      "Render cycle duration in seconds",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		}, []string{"view"}),

		templateErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "view",
			Name:      "template_errors_total",
			Help:      "Total number of template failures",
		}, []string{"view", "template"}),

		resyncs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "view",
			Name:      "resyncs_total",
			Help:      "Total number of full rebuilds after a desync",
		}, []string{"view"}),
	}
}

func (m *Metrics) observeRender(view, status string, ops []vdom.Operation, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(view, status).Inc()
	m.duration.WithLabelValues(view).Observe(elapsed.Seconds())
	for _, op := range ops {
		m.operations.WithLabelValues(view, op.Op.String()).Inc()
	}
}

func (m *Metrics) templateError(view, template string) {
	if m == nil {
		return
	}
	m.templateErrors.WithLabelValues(view, template).Inc()
}

func (m *Metrics) resync(view string) {
	if m == nil {
		return
	}
	m.resyncs.WithLabelValues(view).Inc()
}
