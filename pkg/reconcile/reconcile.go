package reconcile

import (
	stderrors "errors"

	"github.com/vango-dev/vdiff/internal/errors"
	"github.com/vango-dev/vdiff/pkg/host"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

var (
	// ErrPathNotFound is wrapped by errors for paths that do not resolve
	// against the target tree.
	ErrPathNotFound = stderrors.New("reconcile: path not found")

	// ErrNotApplicable is wrapped by errors for operations whose target
	// exists but cannot take the operation.
	ErrNotApplicable = stderrors.New("reconcile: operation not applicable")
)

// Reconciler applies operations to host trees. It holds no per-tree state,
// but a tree must not be patched by two batches at once.
type Reconciler struct {
	builder host.Builder
}

// New creates a Reconciler that materializes nodes with b. A nil b uses
// host.NewBuilder().
func New(b host.Builder) *Reconciler {
	if b == nil {
		b = host.NewBuilder()
	}
	return &Reconciler{builder: b}
}

// Builder returns the tree-construction collaborator.
func (r *Reconciler) Builder() host.Builder {
	return r.builder
}

// Apply applies ops to the tree rooted at root and returns the root
// afterwards. Root-level operations create (Add), swap (Replace) or clear
// (Remove) the root; a swapped root that has a parent is swapped there too.
//
// On failure Apply returns the root as it stands after the operations that
// did apply, along with an *errors.Error naming the failing operation.
func (r *Reconciler) Apply(root *host.Node, ops []vdom.Operation) (*host.Node, error) {
	for i, op := range ops {
		next, err := r.applyOne(root, op)
		if err != nil {
			var e *errors.Error
			if stderrors.As(err, &e) {
				e.WithDetailf("operation %d (%s): %s", i, op, e.Detail)
			}
			return root, err
		}
		root = next
	}
	return root, nil
}

// ApplyVerified applies ops like Apply and then compares the result with a
// fresh build of next. If the apply fails or the trees differ, the fresh
// build is returned instead and rebuilt is true. An error means next itself
// could not be built.
func (r *Reconciler) ApplyVerified(root *host.Node, ops []vdom.Operation, next *vdom.Node) (out *host.Node, rebuilt bool, err error) {
	patched, applyErr := r.Apply(root, ops)
	if next == nil {
		if applyErr == nil && patched == nil {
			return nil, false, nil
		}
		if patched != nil {
			patched.Detach()
		}
		return nil, true, nil
	}
	want, err := r.materialize(next)
	if err != nil {
		return patched, false, err
	}
	if applyErr == nil && patched.Equal(want) {
		return patched, false, nil
	}
	if patched != nil && patched.Parent != nil {
		patched.Parent.ReplaceChild(want, patched)
	}
	return want, true, nil
}

func (r *Reconciler) applyOne(root *host.Node, op vdom.Operation) (*host.Node, error) {
	if op.Path.IsRoot() {
		return r.applyRoot(root, op)
	}

	switch op.Op {
	case vdom.OpAdd:
		t, err := resolve(root, op.Path)
		if err != nil {
			return root, err
		}
		if t.attr != "" || !t.node.IsElement() {
			return root, notApplicable("add requires an element or child list")
		}
		n, err := r.materialize(op.Node)
		if err != nil {
			return root, err
		}
		t.node.AppendChild(n)

	case vdom.OpRemove:
		t, err := resolve(root, op.Path)
		if err != nil {
			return root, err
		}
		switch {
		case t.attr != "":
			return root, notApplicable("remove cannot address an attribute")
		case t.children:
			t.node.RemoveChildren()
		default:
			t.node.Detach()
		}

	case vdom.OpReplace:
		t, err := resolve(root, op.Path)
		if err != nil {
			return root, err
		}
		if t.attr != "" || t.children {
			return root, notApplicable("replace must address a node")
		}
		n, err := r.materialize(op.Node)
		if err != nil {
			return root, err
		}
		t.node.Parent.ReplaceChild(n, t.node)

	case vdom.OpInsert:
		last, _ := op.Path.Last()
		if last.Kind != vdom.StepChild {
			return root, notApplicable("insert must address a child position")
		}
		parent, err := resolve(root, op.Path.Parent())
		if err != nil {
			return root, err
		}
		if parent.attr != "" || parent.children || !parent.node.IsElement() {
			return root, notApplicable("insert requires an element parent")
		}
		n, err := r.materialize(op.Node)
		if err != nil {
			return root, err
		}
		if occupant, ok := parent.node.ChildAt(last.Index); ok {
			parent.node.InsertBefore(n, occupant)
		} else {
			parent.node.AppendChild(n)
		}

	case vdom.OpMove:
		t, err := resolve(root, op.Path)
		if err != nil {
			return root, err
		}
		if t.attr != "" || t.children {
			return root, notApplicable("move must address a node")
		}
		t.node.Parent.InsertAt(t.node, op.Index)

	case vdom.OpModify:
		t, err := resolve(root, op.Path)
		if err != nil {
			return root, err
		}
		if t.attr == "" {
			return root, notApplicable("modify must address an attribute")
		}
		if !t.node.IsElement() {
			return root, notApplicable("text nodes have no attributes")
		}
		if err := r.setAttr(t.node, t.attr, op.Value); err != nil {
			return root, err
		}

	default:
		return root, notApplicable("unknown operation")
	}
	return root, nil
}

func (r *Reconciler) applyRoot(root *host.Node, op vdom.Operation) (*host.Node, error) {
	switch op.Op {
	case vdom.OpAdd:
		if root != nil {
			return root, notApplicable("root already exists")
		}
		return r.materialize(op.Node)

	case vdom.OpRemove:
		if root == nil {
			return nil, notFound("no root to remove")
		}
		root.Detach()
		return nil, nil

	case vdom.OpReplace:
		if root == nil {
			return nil, notFound("no root to replace")
		}
		n, err := r.materialize(op.Node)
		if err != nil {
			return root, err
		}
		if root.Parent != nil {
			root.Parent.ReplaceChild(n, root)
		}
		return n, nil

	default:
		return root, notApplicable(op.Op.String() + " cannot address the root")
	}
}

func (r *Reconciler) setAttr(n *host.Node, name string, value any) error {
	if !host.ValidAttrName(name) {
		return errors.New("E003").WithDetailf("invalid attribute name %q on <%s>", name, n.Tag)
	}
	if value == nil {
		n.RemoveAttr(name)
		return nil
	}
	s, present, err := r.builder.SerializeAttr(value)
	if err != nil {
		return errors.FromError(err, "E003")
	}
	if present {
		n.SetAttr(name, s)
	} else {
		n.RemoveAttr(name)
	}
	return nil
}

func (r *Reconciler) materialize(n *vdom.Node) (*host.Node, error) {
	if n == nil {
		return nil, notApplicable("operation carries no node")
	}
	out, err := r.builder.Materialize(n)
	if err != nil {
		return nil, errors.FromError(err, "E003")
	}
	return out, nil
}

func notFound(detail string) error {
	return errors.New("E001").WithDetail(detail).Wrap(ErrPathNotFound)
}

func notApplicable(detail string) error {
	return errors.New("E002").WithDetail(detail).Wrap(ErrNotApplicable)
}
