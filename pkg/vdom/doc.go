// Package vdom provides the abstract tree and the incremental diff engine.
//
// An abstract tree is a platform-independent description of what should be
// rendered. Each Node is either an element (tag, attributes, ordered
// children, optional key) or a leaf (atomic content). The Kind field is the
// only discriminant; nothing else decides whether a node is an element.
//
// # Building Trees
//
//	El("ul", Attrs{"class": "todo"},
//	    El("li", Key("a"), "first"),
//	    El("li", Key("b"), "second"),
//	)
//
// Nil children are holes: they are kept in Children but ignored by the
// diff engine.
//
// # Identity
//
// A Matcher decides whether two nodes are the same logical node across
// renders. Leaves match only on equal content. Elements match on tag plus
// the first identity signal found: explicit key, the identity attribute
// (IdentityAttr), the name of a slot, the title of a style.
//
// # Diffing
//
// Diff compares two trees and returns an ordered list of Operations, each
// addressed by a Path from the render root. A Differ retains the last
// tree it was given so callers only pass the new one:
//
//	d := NewDiffer()
//	ops := d.Diff(tree) // against the previous tree
//
// Operations must be applied strictly in order; see package reconcile.
package vdom
