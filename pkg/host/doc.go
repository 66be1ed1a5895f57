// Package host provides the mutable tree that rendered output lives in,
// and the tree-construction collaborator that turns abstract nodes into it.
//
// A host tree is what a reconciler patches: elements with ordered
// attributes and children, and text nodes. Every node knows its parent, so
// a node can be detached or replaced without walking from the root.
//
//	b := host.NewBuilder()
//	root, err := b.Materialize(vdom.El("div", vdom.Attrs{"class": "box"}, "hi"))
//
// Parse converts a host tree back into an abstract tree, and ParseHTML
// builds a host tree from markup, so content that already exists can seed a
// diff.
package host
