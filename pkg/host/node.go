package host

// NodeType is the host node discriminator.
type NodeType uint8

const (
	ElementNode NodeType = iota // <div>, <slot>, etc.
	TextNode                    // Character data
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	default:
		return "Unknown"
	}
}

// Attribute is one serialized attribute.
type Attribute struct {
	Name  string
	Value string
}

// Node is a node of a mutable host tree.
type Node struct {
	Type     NodeType
	Tag      string      // For ElementNode
	Attrs    []Attribute // For ElementNode, in insertion order
	Data     string      // For TextNode
	Children []*Node
	Parent   *Node
}

// NewElement creates a detached element with no attributes or children.
func NewElement(tag string) *Node {
	return &Node{Type: ElementNode, Tag: tag}
}

// NewText creates a detached text node.
func NewText(data string) *Node {
	return &Node{Type: TextNode, Data: data}
}

// IsElement reports whether n is an element.
func (n *Node) IsElement() bool {
	return n != nil && n.Type == ElementNode
}

// AppendChild adds c as the last child of n, detaching it from any
// previous parent first.
func (n *Node) AppendChild(c *Node) {
	c.Detach()
	c.Parent = n
	n.Children = append(n.Children, c)
}

// InsertBefore inserts c immediately before ref. A nil ref, or one that is
// not a child of n, appends c.
func (n *Node) InsertBefore(c, ref *Node) {
	if ref == c {
		return
	}
	c.Detach()
	i := n.IndexOf(ref)
	if i < 0 {
		n.AppendChild(c)
		return
	}
	n.insert(i, c)
}

// InsertAt inserts c so that it ends up at position i. Positions past the
// end append; negative positions prepend.
func (n *Node) InsertAt(c *Node, i int) {
	c.Detach()
	if i < 0 {
		i = 0
	}
	if i > len(n.Children) {
		i = len(n.Children)
	}
	n.insert(i, c)
}

func (n *Node) insert(i int, c *Node) {
	c.Parent = n
	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = c
}

// RemoveChild removes c from n and reports whether it was a child.
func (n *Node) RemoveChild(c *Node) bool {
	i := n.IndexOf(c)
	if i < 0 {
		return false
	}
	n.removeAt(i)
	return true
}

func (n *Node) removeAt(i int) {
	c := n.Children[i]
	copy(n.Children[i:], n.Children[i+1:])
	n.Children[len(n.Children)-1] = nil
	n.Children = n.Children[:len(n.Children)-1]
	c.Parent = nil
}

// ReplaceChild puts c in the position of old, which is detached. It reports
// false, changing nothing, when old is not a child of n.
func (n *Node) ReplaceChild(c, old *Node) bool {
	if c == old {
		return n.IndexOf(old) >= 0
	}
	if n.IndexOf(old) < 0 {
		return false
	}
	c.Detach()
	// Detaching c may have shifted old.
	i := n.IndexOf(old)
	old.Parent = nil
	c.Parent = n
	n.Children[i] = c
	return true
}

// Detach removes n from its parent, if any.
func (n *Node) Detach() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// RemoveChildren detaches every child of n.
func (n *Node) RemoveChildren() {
	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = nil
}

// ChildAt returns the child at position i.
func (n *Node) ChildAt(i int) (*Node, bool) {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil, false
	}
	return n.Children[i], true
}

// IndexOf returns the position of c among the children of n, or -1.
func (n *Node) IndexOf(c *Node) int {
	if c == nil || c.Parent != n {
		return -1
	}
	for i, child := range n.Children {
		if child == c {
			return i
		}
	}
	return -1
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, keeping its position if it already exists.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attribute{Name: name, Value: value})
}

// RemoveAttr deletes an attribute. Removing a missing attribute is a no-op.
func (n *Node) RemoveAttr(name string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return
		}
	}
}

// Equal reports whether n and o are structurally equivalent: same types,
// tags, text, child order and attribute sets. Attribute order is ignored.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Type != o.Type || n.Tag != o.Tag || n.Data != o.Data {
		return false
	}
	if len(n.Attrs) != len(o.Attrs) || len(n.Children) != len(o.Children) {
		return false
	}
	for _, a := range n.Attrs {
		if v, ok := o.Attr(a.Name); !ok || v != a.Value {
			return false
		}
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// Clone returns a detached deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Type: n.Type, Tag: n.Tag, Data: n.Data}
	if n.Attrs != nil {
		c.Attrs = append([]Attribute(nil), n.Attrs...)
	}
	for _, child := range n.Children {
		cc := child.Clone()
		cc.Parent = c
		c.Children = append(c.Children, cc)
	}
	return c
}
