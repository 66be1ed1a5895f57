package view

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vdiff/internal/errors"
	"github.com/vango-dev/vdiff/pkg/host"
	"github.com/vango-dev/vdiff/pkg/reconcile"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

const (
	tracerName = "github.com/vango-dev/vdiff/pkg/view"

	// FragmentTag is the tag of the root a view mounts. Renderers treat
	// it as transparent.
	FragmentTag = "fragment"
)

// Template produces the nodes of a view. Nil entries are skipped.
type Template[T any] func(ctx context.Context, args T) ([]*vdom.Node, error)

// Update describes one render cycle.
type Update struct {
	Ops    []vdom.Operation // Operations applied to the mount
	Resync bool             // Ops rebuild the tree from nothing
	Status string           // StatusOK, StatusFallback, StatusEmpty or StatusCleared
}

// StatusCleared is the status of an Update produced by Clear.
const StatusCleared = "cleared"

// View renders a template into a mount point.
//
// A View is safe for concurrent use; render cycles are serialized.
type View[T any] struct {
	name       string
	template   Template[T]
	fallback   Template[T]
	differ     *vdom.Differ
	reconciler *reconcile.Reconciler
	logger     *slog.Logger
	metrics    *Metrics
	tracer     trace.Tracer
	verify     bool
	onError    ErrorHandler

	mu       sync.Mutex
	styles   map[string]string
	mount    *host.Node
	root     *host.Node
	args     T
	rendered bool
}

// New creates a view rendering template. It panics if template is nil or
// a fallback of another argument type is given.
func New[T any](name string, template Template[T], opts ...Option) *View[T] {
	if template == nil {
		panic("view: nil template")
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	v := &View[T]{
		name:       name,
		template:   template,
		reconciler: reconcile.New(cfg.builder),
		logger:     cfg.logger,
		metrics:    cfg.metrics,
		tracer:     cfg.tracer,
		verify:     cfg.verify,
		onError:    cfg.onError,
		styles:     make(map[string]string),
	}

	if cfg.fallback != nil {
		fb, ok := cfg.fallback.(Template[T])
		if !ok {
			panic(fmt.Sprintf("view %s: fallback is %T, want %T", name, cfg.fallback, Template[T](nil)))
		}
		v.fallback = fb
	}

	if cfg.matcher != nil {
		v.differ = vdom.NewDiffer(vdom.WithMatcher(*cfg.matcher))
	} else {
		v.differ = vdom.NewDiffer()
	}
	if v.logger == nil {
		v.logger = slog.Default()
	}
	v.logger = v.logger.With("view", name)
	if v.tracer == nil {
		v.tracer = otel.Tracer(tracerName)
	}
	return v
}

// Name returns the view name.
func (v *View[T]) Name() string {
	return v.name
}

// AddStyle registers a stylesheet under name, replacing any previous one.
// Stylesheets render ahead of the template's nodes, ordered by name, from
// the next render on.
func (v *View[T]) AddStyle(name, css string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.styles[name] = css
}

// Mount returns the current mount point, or nil before the first render.
func (v *View[T]) Mount() *host.Node {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mount
}

// Tree returns the retained abstract tree. Callers must not modify it.
func (v *View[T]) Tree() *vdom.Node {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.differ.Last()
}

// Render runs the template with args and patches mount to match. Template
// failures do not fail the render; they select the fallback and go to the
// ErrorHandler.
//
// When mount differs from the previous render's, the view adopts any
// fragment already mounted there as its starting point.
func (v *View[T]) Render(ctx context.Context, mount *host.Node, args T) (*Update, error) {
	if mount == nil {
		return nil, errors.Newf(errors.CategoryView, "view %s: nil mount", v.name)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if mount != v.mount {
		v.attach(mount)
	}
	v.args, v.rendered = args, true

	return v.cycle(ctx, func(ctx context.Context) ([]*vdom.Node, string) {
		return v.generate(ctx, args)
	})
}

// Rerender renders again with the last mount and arguments. It returns a
// nil Update if the view never rendered.
func (v *View[T]) Rerender(ctx context.Context) (*Update, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.rendered {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	args := v.args
	return v.cycle(ctx, func(ctx context.Context) ([]*vdom.Node, string) {
		return v.generate(ctx, args)
	})
}

// Clear removes the template's nodes from the mount, keeping the
// stylesheets. It returns a nil Update if the view never rendered.
func (v *View[T]) Clear(ctx context.Context) (*Update, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.rendered {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return v.cycle(ctx, func(context.Context) ([]*vdom.Node, string) {
		return nil, StatusCleared
	})
}

func (v *View[T]) attach(mount *host.Node) {
	v.mount = mount
	v.root = nil
	v.differ.Reset()

	for _, c := range mount.Children {
		if c.IsElement() && c.Tag == FragmentTag {
			v.root = c
			v.differ.Seed(parseMounted(c))
			break
		}
	}
	v.logger.Debug("mount attached", "seeded", v.root != nil)
}

// parseMounted parses a mounted fragment. host.Parse leaves stylesheets
// empty; their text is restored so registered styles diff as unchanged.
func parseMounted(root *host.Node) *vdom.Node {
	tree := host.Parse(root)
	for i, c := range root.Children {
		if !c.IsElement() || c.Tag != "style" {
			continue
		}
		for _, t := range c.Children {
			tree.Children[i].Children = append(tree.Children[i].Children, host.Parse(t))
		}
	}
	return tree
}

func (v *View[T]) cycle(ctx context.Context, produce func(context.Context) ([]*vdom.Node, string)) (*Update, error) {
	start := time.Now()
	ctx, span := v.tracer.Start(ctx, "vdiff.view.render",
		trace.WithAttributes(attribute.String("vdiff.view", v.name)))
	defer span.End()

	nodes, status := produce(ctx)
	update, err := v.patch(v.compose(nodes))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		v.metrics.observeRender(v.name, StatusError, nil, time.Since(start))
		v.logger.Error("render failed", "error", err)
		return nil, err
	}
	update.Status = status

	span.SetAttributes(
		attribute.String("vdiff.status", status),
		attribute.Int("vdiff.operations", len(update.Ops)),
		attribute.Bool("vdiff.resync", update.Resync),
	)
	v.metrics.observeRender(v.name, status, update.Ops, time.Since(start))
	v.logger.Debug("rendered",
		"status", status,
		"operations", len(update.Ops),
		"resync", update.Resync,
		"duration", time.Since(start))
	return update, nil
}

// generate runs the main template, then the fallback.
func (v *View[T]) generate(ctx context.Context, args T) ([]*vdom.Node, string) {
	nodes, err := run(ctx, v.template, args)
	if err == nil {
		return nodes, StatusOK
	}
	v.report(ctx, TemplateMain, args, err)

	if v.fallback == nil {
		return nil, StatusEmpty
	}
	nodes, err = run(ctx, v.fallback, args)
	if err == nil {
		return nodes, StatusFallback
	}
	v.report(ctx, TemplateFallback, args, err)
	return nil, StatusEmpty
}

func run[T any](ctx context.Context, t Template[T], args T) (nodes []*vdom.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			nodes, err = nil, panicError{value: r}
		}
	}()
	return t(ctx, args)
}

func (v *View[T]) report(ctx context.Context, template string, args T, cause error) {
	te := newTemplateError(v.name, template, args, cause)
	trace.SpanFromContext(ctx).RecordError(te)
	v.metrics.templateError(v.name, template)
	v.logger.Warn("template failed", "template", template, "error", cause)
	if v.onError != nil {
		v.onError(ctx, te)
	}
}

// compose wraps the stylesheets and nodes into the fragment root.
func (v *View[T]) compose(nodes []*vdom.Node) *vdom.Node {
	root := &vdom.Node{Kind: vdom.KindElement, Tag: FragmentTag}

	names := make([]string, 0, len(v.styles))
	for name := range v.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		root.Children = append(root.Children,
			vdom.El("style", vdom.Attrs{"title": name}, vdom.Text(v.styles[name])))
	}

	for _, n := range nodes {
		if n != nil {
			root.Children = append(root.Children, n)
		}
	}
	return root
}

// patch diffs tree against the retained tree and applies the result. A
// failed apply, or a failed verification, triggers a rebuild.
func (v *View[T]) patch(tree *vdom.Node) (*Update, error) {
	ops := v.differ.Diff(tree)
	root, err := v.reconciler.Apply(v.root, ops)
	v.adopt(root)
	if err == nil && v.verify {
		err = v.check()
	}
	if err == nil {
		return &Update{Ops: ops}, nil
	}

	v.logger.Warn("renderer desynchronized, rebuilding", "error", err)
	v.metrics.resync(v.name)
	return v.rebuild(tree)
}

func (v *View[T]) rebuild(tree *vdom.Node) (*Update, error) {
	v.differ.Reset()
	v.mount.RemoveChildren()
	v.root = nil

	ops := v.differ.Diff(tree)
	root, err := v.reconciler.Apply(nil, ops)
	if err != nil {
		v.differ.Reset()
		return nil, errors.New("E012").WithDetailf("view %q: rebuild failed", v.name).Wrap(err)
	}
	v.adopt(root)
	return &Update{Ops: ops, Resync: true}, nil
}

// adopt records root as the mounted fragment, attaching it if new.
func (v *View[T]) adopt(root *host.Node) {
	if root != nil && root.Parent == nil {
		v.mount.AppendChild(root)
	}
	v.root = root
}

// check compares the mount against a fresh build of the retained tree.
func (v *View[T]) check() error {
	want, err := v.reconciler.Builder().Materialize(v.differ.Last())
	if err != nil {
		return err
	}
	if !want.Equal(v.root) {
		return errors.New("E012").WithDetail("mounted tree differs from the retained tree")
	}
	return nil
}
