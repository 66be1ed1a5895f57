package vtest

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vdiff/pkg/host"
	"github.com/vango-dev/vdiff/pkg/reconcile"
	"github.com/vango-dev/vdiff/pkg/render"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

// RenderToString builds a tree and renders it to HTML. It returns "" if
// the tree cannot be built.
//
// Example:
//
//	html := vtest.RenderToString(vdom.P("hello"))
func RenderToString(n *vdom.Node) string {
	if n == nil {
		return ""
	}
	root, err := host.NewBuilder().Materialize(n)
	if err != nil {
		return ""
	}
	return renderHost(root)
}

func renderHost(root *host.Node) string {
	html, err := render.NewRenderer(render.Config{}).RenderToString(root)
	if err != nil {
		return ""
	}
	return html
}

// Patch builds prev, applies Diff(prev, next) to it and returns the
// patched tree with the operations applied. It fails tb if a step fails.
func Patch(tb testing.TB, prev, next *vdom.Node) (*host.Node, []vdom.Operation) {
	tb.Helper()
	return PatchWith(tb, vdom.DefaultMatcher, prev, next)
}

// PatchWith is Patch under the identity rules of m.
func PatchWith(tb testing.TB, m vdom.Matcher, prev, next *vdom.Node) (*host.Node, []vdom.Operation) {
	tb.Helper()
	r := reconcile.New(nil)

	var root *host.Node
	if prev != nil {
		var err error
		if root, err = r.Builder().Materialize(prev); err != nil {
			tb.Fatalf("build prev: %v", err)
		}
	}

	ops := m.Diff(prev, next)
	root, err := r.Apply(root, ops)
	if err != nil {
		tb.Fatalf("apply %v: %v", ops, err)
	}
	return root, ops
}

// ExpectRoundTrip asserts that patching prev to next yields the same tree
// as building next directly.
func ExpectRoundTrip(tb testing.TB, prev, next *vdom.Node) {
	tb.Helper()
	got, ops := Patch(tb, prev, next)

	var want *host.Node
	if next != nil {
		var err error
		if want, err = host.NewBuilder().Materialize(next); err != nil {
			tb.Fatalf("build next: %v", err)
		}
	}
	if !want.Equal(got) {
		tb.Errorf("patched tree differs from a fresh build\nops:  %v\ngot:  %s\nwant: %s",
			ops, truncate(renderHost(got), 500), truncate(renderHost(want), 500))
	}
}

// ExpectOps asserts that ops print as want, in order.
//
// Example:
//
//	vtest.ExpectOps(t, ops, "modify .class active", "remove /children#2")
func ExpectOps(tb testing.TB, ops []vdom.Operation, want ...string) {
	tb.Helper()
	got := make([]string, len(ops))
	for i, op := range ops {
		got[i] = op.String()
	}
	if want == nil {
		want = []string{}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		tb.Errorf("operations mismatch (-want +got):\n%s", diff)
	}
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(tb testing.TB, n *vdom.Node, expected string) {
	tb.Helper()
	html := RenderToString(n)
	if !strings.Contains(html, expected) {
		tb.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(tb testing.TB, n *vdom.Node, unexpected string) {
	tb.Helper()
	html := RenderToString(n)
	if strings.Contains(html, unexpected) {
		tb.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(tb testing.TB, n *vdom.Node, tag string) {
	tb.Helper()
	html := RenderToString(n)
	if !strings.Contains(html, "<"+tag) {
		tb.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
func ExpectAttribute(tb testing.TB, n *vdom.Node, attr, value string) {
	tb.Helper()
	html := RenderToString(n)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		tb.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
