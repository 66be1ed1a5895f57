// Package reconcile applies diff operations to a host tree.
//
// Operations are applied strictly in order and every path is resolved
// against the tree as left by the previous operation. The reconciler keeps
// no history: it trusts that the tree it is given has the shape the
// operations were computed against. When that is not the case resolution
// fails, the batch stops at the failing operation, and the caller is
// expected to rebuild from scratch.
//
//	r := reconcile.New(host.NewBuilder())
//	root, err := r.Apply(root, vdom.Diff(prev, next))
package reconcile
