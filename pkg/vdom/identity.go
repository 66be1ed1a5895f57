package vdom

// IdentityAttr is the default domain identity attribute. Elements carrying
// it are matched across renders by its value.
const IdentityAttr = "data-section-id"

// Identity is the derived key deciding whether two nodes represent the same
// logical node. It is comparable; two nodes match iff identities are equal.
type Identity struct {
	Leaf  bool   // Leaf identity (Value is the content)
	Tag   string // Element tag
	Value string // Resolved identifier or canonical content
	Set   bool   // Value is present (a nil content or no identity signal leaves it unset)
}

// Matcher derives node identities.
// The zero value matches elements on key, slot name and style title only.
type Matcher struct {
	// IdentityAttr names the attribute consulted after the explicit key.
	IdentityAttr string
}

// DefaultMatcher uses IdentityAttr as the identity attribute.
var DefaultMatcher = Matcher{IdentityAttr: IdentityAttr}

// Matching reports whether a and b are the same logical node under
// DefaultMatcher.
func Matching(a, b *Node) bool {
	return DefaultMatcher.Match(a, b)
}

// Match reports whether a and b are the same logical node.
func (m Matcher) Match(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return m.Identify(a) == m.Identify(b)
}

// Identify returns the identity key of n.
func (m Matcher) Identify(n *Node) Identity {
	if n.Kind == KindLeaf {
		return Identity{
			Leaf:  true,
			Value: FormatValue(n.Content),
			Set:   n.Content != nil,
		}
	}

	id := Identity{Tag: n.Tag}
	if n.HasKey {
		id.Value, id.Set = n.Key, true
		return id
	}
	if m.IdentityAttr != "" {
		if v, ok := n.Attr(m.IdentityAttr); ok && v != nil {
			id.Value, id.Set = FormatValue(v), true
			return id
		}
	}

	var fallback string
	switch n.Tag {
	case "slot":
		fallback = "name"
	case "style":
		fallback = "title"
	}
	if fallback != "" {
		if v, ok := n.Attr(fallback); ok && v != nil {
			id.Value, id.Set = FormatValue(v), true
		}
	}
	return id
}
