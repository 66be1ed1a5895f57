package vdom

// Common element factories.

func Div(args ...any) *Node    { return El("div", args...) }
func Span(args ...any) *Node   { return El("span", args...) }
func P(args ...any) *Node      { return El("p", args...) }
func Ul(args ...any) *Node     { return El("ul", args...) }
func Li(args ...any) *Node     { return El("li", args...) }
func Button(args ...any) *Node { return El("button", args...) }
func Input(args ...any) *Node  { return El("input", args...) }

// Slot creates a named slot element; the name is its identity.
func Slot(name string, args ...any) *Node {
	return El("slot", append([]any{Attr{Name: "name", Value: name}}, args...)...)
}

// Style creates a style element; the title is its identity.
func Style(title, css string) *Node {
	return El("style", Attr{Name: "title", Value: title}, css)
}

// Attribute helpers

// Class sets the class attribute.
func Class(name string) Attr { return Attr{Name: "class", Value: name} }

// ID sets the id attribute.
func ID(id string) Attr { return Attr{Name: "id", Value: id} }

// Section sets the identity attribute consulted by DefaultMatcher.
func Section(id string) Attr { return Attr{Name: IdentityAttr, Value: id} }
