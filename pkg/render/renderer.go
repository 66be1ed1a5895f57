package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vango-dev/vdiff/pkg/host"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

// Config configures the HTML renderer.
type Config struct {
	// Pretty enables pretty-printed HTML output with indentation.
	// Whitespace is added between block elements, so pretty output does not
	// parse back into the same tree.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Renderer serializes host trees to HTML. A Renderer holds no per-render
// state and may be shared.
type Renderer struct {
	config Config
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config Config) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a host tree to an HTML string.
func (r *Renderer) RenderToString(node *host.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a host tree to the given writer. A nil tree
// writes nothing.
func (r *Renderer) RenderToWriter(w io.Writer, node *host.Node) error {
	return r.renderNode(w, node, 0, false)
}

// renderNode dispatches rendering based on node type.
func (r *Renderer) renderNode(w io.Writer, node *host.Node, depth int, raw bool) error {
	if node == nil {
		return nil
	}

	switch node.Type {
	case host.ElementNode:
		if node.Tag == vdom.FragmentTag {
			return r.renderFragment(w, node, depth)
		}
		return r.renderElement(w, node, depth)
	case host.TextNode:
		return r.renderText(w, node, raw)
	default:
		return fmt.Errorf("render: unknown node type %d", node.Type)
	}
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *host.Node, depth int) error {
	tag := node.Tag

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, node); err != nil {
		return err
	}
	if _, err := w.Write([]byte{'>'}); err != nil {
		return err
	}

	// Void elements never have children or a closing tag
	if isVoidElement(tag) {
		if r.config.Pretty {
			w.Write([]byte{'\n'})
		}
		return nil
	}

	raw := isRawTextElement(tag)
	hasBlockChildren := !raw && !isInlineElement(tag) && hasElementChild(node)
	if r.config.Pretty && hasBlockChildren {
		w.Write([]byte{'\n'})
	}

	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth+1, raw); err != nil {
			return err
		}
	}

	if r.config.Pretty && hasBlockChildren {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if r.config.Pretty {
		w.Write([]byte{'\n'})
	}
	return nil
}

// renderText renders a text node, escaped unless it is raw text.
func (r *Renderer) renderText(w io.Writer, node *host.Node, raw bool) error {
	text := node.Data
	if !raw {
		text = escapeHTML(text)
	}
	_, err := io.WriteString(w, text)
	return err
}

// renderFragment renders a fragment's children without a wrapper element.
func (r *Renderer) renderFragment(w io.Writer, node *host.Node, depth int) error {
	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth, false); err != nil {
			return err
		}
	}
	return nil
}

// renderAttributes renders the attributes of an element in host order.
func (r *Renderer) renderAttributes(w io.Writer, node *host.Node) error {
	for _, attr := range node.Attrs {
		if attr.Value == "" && isBooleanAttr(attr.Name) {
			if _, err := fmt.Fprintf(w, " %s", attr.Name); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, attr.Name, escapeAttr(attr.Value)); err != nil {
			return err
		}
	}
	return nil
}

func hasElementChild(n *host.Node) bool {
	for _, c := range n.Children {
		if c.IsElement() {
			return true
		}
	}
	return false
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}
