package host

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

func TestParse(t *testing.T) {
	root := NewElement(vdom.FragmentTag)
	div := NewElement("div")
	div.SetAttr("class", "box")
	div.AppendChild(NewText("hi"))
	style := NewElement("style")
	style.SetAttr("title", "theme")
	style.AppendChild(NewText("p{}"))
	root.AppendChild(style)
	root.AppendChild(div)

	got := Parse(root)
	want := vdom.El(vdom.FragmentTag,
		vdom.El("style", vdom.Attrs{"title": "theme"}),
		vdom.El("div", vdom.Attrs{"class": "box"}, "hi"),
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}

	if Parse(nil) != nil {
		t.Error("Parse(nil) should be nil")
	}
}

func TestParseMaterializeRoundTrip(t *testing.T) {
	tree := vdom.El("ul", vdom.Attrs{"class": "list", "data-n": "3"},
		vdom.El("li", "one"),
		vdom.El("li", vdom.Attrs{"checked": true}, "two"),
	)

	n, err := NewBuilder().Materialize(tree)
	if err != nil {
		t.Fatal(err)
	}
	if ops := vdom.Diff(tree, Parse(n)); len(ops) != 1 {
		// Only the boolean differs: true becomes the empty string.
		t.Errorf("ops = %v, want one modify of checked", ops)
	}
}

func TestParseHTML(t *testing.T) {
	root, err := ParseHTMLString(`<div class="a" data-section-id="s1"><!-- note --><p>Hello <b>you</b></p></div><span>x</span>`)
	if err != nil {
		t.Fatalf("ParseHTML error: %v", err)
	}
	if root.Tag != vdom.FragmentTag {
		t.Errorf("root tag = %q, want %q", root.Tag, vdom.FragmentTag)
	}
	assertChildren(t, root, "div", "span")

	div := root.Children[0]
	if v, _ := div.Attr("data-section-id"); v != "s1" {
		t.Errorf("data-section-id = %q", v)
	}
	assertChildren(t, div, "p")
	assertChildren(t, div.Children[0], "Hello ", "b")
}

func TestParseHTMLMatchesMaterialize(t *testing.T) {
	tree := vdom.El(vdom.FragmentTag,
		vdom.El("div", vdom.Attrs{"id": "x"}, vdom.El("input", vdom.Attrs{"disabled": true})),
		"tail",
	)
	want, err := NewBuilder().Materialize(tree)
	if err != nil {
		t.Fatal(err)
	}

	got, err := ParseHTML(strings.NewReader(`<div id="x"><input disabled></div>tail`))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(want) {
		t.Errorf("parsed tree differs from materialized tree")
	}
}
