package vdom

import "sort"

// Diff compares two trees under DefaultMatcher and returns the operations
// that transform prev into next.
func Diff(prev, next *Node) []Operation {
	return DefaultMatcher.Diff(prev, next)
}

// Diff compares two trees and returns the operations that transform prev
// into next. Operations must be applied in order.
func (m Matcher) Diff(prev, next *Node) []Operation {
	w := walker{matcher: m}
	w.compare(prev, next, nil)
	return w.ops
}

// walker accumulates operations during one comparison.
type walker struct {
	matcher Matcher
	ops     []Operation
}

func (w *walker) emit(op Operation) {
	w.ops = append(w.ops, op)
}

// compare recursively compares nodes and appends operations.
func (w *walker) compare(prev, curr *Node, path Path) {
	switch {
	case prev == nil && curr == nil:
		return

	case prev == nil:
		w.emit(AddOp(path, curr))

	case curr == nil:
		w.emit(RemoveOp(path))

	case !w.matcher.Match(prev, curr):
		// A non-match swaps the whole subtree
		w.emit(ReplaceOp(path, curr))

	case prev.Kind == KindElement && curr.Kind == KindElement:
		w.diffAttrs(prev, curr, path)
		w.diffChildren(prev, curr, path)

		// Matching leaves have equal content by definition
	}
}

// diffAttrs emits Modify operations for added, changed and removed attributes,
// in that order. Names are sorted within each group.
func (w *walker) diffAttrs(prev, curr *Node, path Path) {
	var added, changed, removed []string

	for name, value := range curr.Attrs {
		prevValue, exists := prev.Attrs[name]
		if !exists {
			added = append(added, name)
		} else if !ValuesEqual(prevValue, value) {
			changed = append(changed, name)
		}
	}
	for name := range prev.Attrs {
		if _, exists := curr.Attrs[name]; !exists {
			removed = append(removed, name)
		}
	}

	sort.Strings(added)
	sort.Strings(changed)
	sort.Strings(removed)

	for _, name := range added {
		w.emit(ModifyOp(path.Attribute(name), curr.Attrs[name]))
	}
	for _, name := range changed {
		w.emit(ModifyOp(path.Attribute(name), curr.Attrs[name]))
	}
	for _, name := range removed {
		w.emit(ModifyOp(path.Attribute(name), nil))
	}
}

// diffChildren reconciles the child lists of two matching elements.
func (w *walker) diffChildren(prev, curr *Node, path Path) {
	prevChildren := prev.ElementChildren()
	currChildren := curr.ElementChildren()
	children := path.Children()

	if len(prevChildren) == 0 {
		for _, c := range currChildren {
			w.emit(AddOp(children, c))
		}
		return
	}
	if len(currChildren) == 0 {
		w.emit(RemoveOp(children))
		return
	}

	// Keyed matching pass: each current child takes the first previous
	// child that matches and is still free. matchedTo[prevIdx] is the
	// current index it was paired with, or -1.
	matchedTo := make([]int, len(prevChildren))
	for i := range matchedTo {
		matchedTo[i] = -1
	}
	var toInsert []int
	for currIdx, c := range currChildren {
		found := false
		for prevIdx, pc := range prevChildren {
			if matchedTo[prevIdx] == -1 && w.matcher.Match(c, pc) {
				matchedTo[prevIdx] = currIdx
				found = true
				break
			}
		}
		if !found {
			toInsert = append(toInsert, currIdx)
		}
	}

	var toRemove []int
	for prevIdx, currIdx := range matchedTo {
		if currIdx == -1 {
			toRemove = append(toRemove, prevIdx)
		}
	}

	// Matched pairs are addressed by their previous index, the position the
	// target tree still holds them at.
	for prevIdx, currIdx := range matchedTo {
		if currIdx != -1 {
			w.compare(prevChildren[prevIdx], currChildren[currIdx], path.Child(prevIdx))
		}
	}

	// Highest index first so lower indices stay valid.
	for i := len(toRemove) - 1; i >= 0; i-- {
		w.emit(RemoveOp(path.Child(toRemove[i])))
	}

	// Inserting at the head in reverse order restores relative order.
	for i := len(toInsert) - 1; i >= 0; i-- {
		w.emit(InsertOp(path.Child(0), currChildren[toInsert[i]]))
	}

	// TODO: the corrected position counts every insertion and ignores moves
	// already emitted for earlier pairs, so pure reorders and inserts that
	// interleave with kept children can misplace nodes.
	removedBefore := 0
	for prevIdx, currIdx := range matchedTo {
		if currIdx == -1 {
			removedBefore++
			continue
		}
		corrected := prevIdx - removedBefore + len(toInsert)
		if corrected != currIdx {
			w.emit(MoveOp(path.Child(corrected), currIdx))
		}
	}
}

// Differ retains the last rendered tree and diffs each new tree against it.
//
// A Differ is not safe for concurrent use; callers serialize render cycles.
type Differ struct {
	matcher Matcher
	last    *Node
}

// DifferOption configures a Differ.
type DifferOption func(*Differ)

// WithMatcher sets the identity rules used by the Differ.
func WithMatcher(m Matcher) DifferOption {
	return func(d *Differ) {
		d.matcher = m
	}
}

// NewDiffer creates a Differ with no retained tree.
func NewDiffer(opts ...DifferOption) *Differ {
	d := &Differ{matcher: DefaultMatcher}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Diff returns the operations transforming the retained tree into next and
// then retains next, replacing the previous tree wholesale. A nil next means
// nothing is rendered.
//
// The Differ takes ownership of next; callers must not modify it afterwards.
func (d *Differ) Diff(next *Node) []Operation {
	ops := d.matcher.Diff(d.last, next)
	d.last = next
	return ops
}

// Last returns the retained tree, or nil before the first Diff.
func (d *Differ) Last() *Node {
	return d.last
}

// Reset drops the retained tree; the next Diff starts from nothing.
func (d *Differ) Reset() {
	d.last = nil
}

// Seed adopts n as the retained tree without producing operations, e.g. a
// tree parsed from content already present in the target.
func (d *Differ) Seed(n *Node) {
	d.last = n
}

// Matcher returns the identity rules used by the Differ.
func (d *Differ) Matcher() Matcher {
	return d.matcher
}
