package host

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/vdiff/internal/errors"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

// Parse converts a host tree into an abstract tree. Text becomes leaf
// content and attribute values stay strings. Style elements are parsed
// without children, so stylesheet text never takes part in a diff.
func Parse(n *Node) *vdom.Node {
	if n == nil {
		return nil
	}
	if n.Type == TextNode {
		return vdom.Text(n.Data)
	}

	out := &vdom.Node{Kind: vdom.KindElement, Tag: n.Tag}
	if len(n.Attrs) > 0 {
		out.Attrs = make(vdom.Attrs, len(n.Attrs))
		for _, a := range n.Attrs {
			out.Attrs[a.Name] = a.Value
		}
	}
	if n.Tag == "style" {
		return out
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, Parse(c))
	}
	return out
}

// ParseHTML parses an HTML fragment into a host tree rooted at a fragment
// element. Comments and doctypes are dropped; whitespace text is kept.
func ParseHTML(r io.Reader) (*Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, errors.New("E005").WithDetail("invalid HTML fragment").Wrap(err)
	}

	root := NewElement(vdom.FragmentTag)
	for _, n := range nodes {
		if c := convertHTML(n); c != nil {
			root.AppendChild(c)
		}
	}
	return root, nil
}

// ParseHTMLString is ParseHTML over a string.
func ParseHTMLString(s string) (*Node, error) {
	return ParseHTML(strings.NewReader(s))
}

func convertHTML(n *html.Node) *Node {
	switch n.Type {
	case html.TextNode:
		return NewText(n.Data)

	case html.ElementNode:
		el := NewElement(n.Data)
		for _, a := range n.Attr {
			name := a.Key
			if a.Namespace != "" {
				name = a.Namespace + ":" + a.Key
			}
			el.SetAttr(name, a.Val)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := convertHTML(c); child != nil {
				el.AppendChild(child)
			}
		}
		return el

	default:
		return nil
	}
}
