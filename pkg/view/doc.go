// Package view binds a template to a mount point and keeps the mounted host
// tree in step with the template's output.
//
// A View runs its template, wraps the produced nodes together with the
// registered stylesheets into a fragment root, diffs that root against the
// previous render and patches the mount with the resulting operations:
//
//	v := view.New("counter", func(ctx context.Context, n int) ([]*vdom.Node, error) {
//	    return []*vdom.Node{vdom.El("p", nil, vdom.Textf("count: %d", n))}, nil
//	})
//	update, err := v.Render(ctx, mount, 3)
//
// # Failure Handling
//
// A failing (or panicking) template is reported to the ErrorHandler and the
// fallback template renders instead. When the fallback fails too, the view
// renders nothing but its stylesheets.
//
// If a batch cannot be applied, the mounted tree no longer reflects the
// retained one. The view then rebuilds from scratch: it drops the retained
// tree, clears the mount and renders the full tree again. WithVerify makes
// the view also compare the mount against the retained tree after every
// render and rebuild on mismatch.
//
// # Observability
//
// Views log through log/slog, record Prometheus metrics when given a
// Metrics, and start an OpenTelemetry span per render.
package view
