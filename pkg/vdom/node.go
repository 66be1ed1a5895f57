package vdom

import "fmt"

// FragmentTag is the tag of a root that groups children without a wrapper.
// Renderers treat an element with this tag as transparent.
const FragmentTag = "fragment"

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement Kind = iota // <div>, <slot>, etc.
	KindLeaf                // Atomic content
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindLeaf:
		return "Leaf"
	default:
		return "Unknown"
	}
}

// Node is an abstract tree node.
type Node struct {
	Kind     Kind    // Node type
	Tag      string  // Element tag name (e.g., "div")
	Attrs    Attrs   // Element attributes
	Children []*Node // Child nodes; nil entries are holes
	Key      string  // Explicit identity, valid when HasKey is set
	HasKey   bool    // Key was given (an empty key is still a key)
	Content  any     // For KindLeaf: string, number or nil
}

// Attrs maps attribute names to scalar values.
type Attrs map[string]any

// Attr is a single attribute, usable as an El argument.
type Attr struct {
	Name  string
	Value any
}

// keyArg is the El argument produced by Key.
type keyArg string

// Key returns an El argument that sets the element's explicit identity.
func Key(k string) any {
	return keyArg(k)
}

// IsElement reports whether n is an element node.
func (n *Node) IsElement() bool {
	return n != nil && n.Kind == KindElement
}

// IsLeaf reports whether n is a leaf node.
func (n *Node) IsLeaf() bool {
	return n != nil && n.Kind == KindLeaf
}

// WithKey sets the explicit identity of n and returns n.
func (n *Node) WithKey(k string) *Node {
	n.Key = k
	n.HasKey = true
	return n
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (any, bool) {
	if n == nil || n.Attrs == nil {
		return nil, false
	}
	v, ok := n.Attrs[name]
	return v, ok
}

// ElementChildren returns the children of n with holes removed.
// The result is a fresh slice; leaves have no children.
func (n *Node) ElementChildren() []*Node {
	if n == nil || n.Kind != KindElement {
		return nil
	}
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Clone returns a deep copy of n. Attribute values are copied shallowly.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Kind:    n.Kind,
		Tag:     n.Tag,
		Key:     n.Key,
		HasKey:  n.HasKey,
		Content: n.Content,
	}
	if n.Attrs != nil {
		c.Attrs = make(Attrs, len(n.Attrs))
		for k, v := range n.Attrs {
			c.Attrs[k] = v
		}
	}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// El creates an element node.
// Arguments can be: nil, Attrs, Attr, []Attr, Key(...), *Node (a nil
// *Node is kept as a hole), []*Node, or string (a text leaf).
func El(tag string, args ...any) *Node {
	node := &Node{
		Kind: KindElement,
		Tag:  tag,
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional arguments)
			continue

		case Attrs:
			for name, value := range v {
				node.setAttr(name, value)
			}

		case Attr:
			if v.Name != "" {
				node.setAttr(v.Name, v.Value)
			}

		case []Attr:
			for _, attr := range v {
				if attr.Name != "" {
					node.setAttr(attr.Name, attr.Value)
				}
			}

		case keyArg:
			node.WithKey(string(v))

		case *Node:
			node.Children = append(node.Children, v)

		case []*Node:
			node.Children = append(node.Children, v...)

		case string:
			node.Children = append(node.Children, Text(v))
		}
	}

	return node
}

func (n *Node) setAttr(name string, value any) {
	if n.Attrs == nil {
		n.Attrs = make(Attrs)
	}
	n.Attrs[name] = value
}

// Text creates a text leaf.
func Text(content string) *Node {
	return &Node{
		Kind:    KindLeaf,
		Content: content,
	}
}

// Textf creates a formatted text leaf.
func Textf(format string, args ...any) *Node {
	return Text(fmt.Sprintf(format, args...))
}

// Leaf creates a leaf with arbitrary scalar content (string, number or nil).
func Leaf(content any) *Node {
	return &Node{
		Kind:    KindLeaf,
		Content: content,
	}
}

// Fragment creates a transparent root element grouping children.
func Fragment(children ...any) *Node {
	return El(FragmentTag, children...)
}
