package reconcile

import (
	"strconv"

	"github.com/vango-dev/vdiff/pkg/host"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

// target is a resolved path: a node, the node's child list, or one of the
// node's attributes.
type target struct {
	node     *host.Node
	children bool
	attr     string
}

// resolve walks p from root. Child steps descend; a children step or an
// attribute step ends the walk and must be last.
func resolve(root *host.Node, p vdom.Path) (target, error) {
	if root == nil {
		return target{}, notFound("tree is empty")
	}

	t := target{node: root}
	for i, step := range p {
		if t.children || t.attr != "" {
			return target{}, notFound("path continues past " + p[:i].String())
		}
		switch step.Kind {
		case vdom.StepChild:
			child, ok := t.node.ChildAt(step.Index)
			if !ok {
				return target{}, notFound("no child " + strconv.Itoa(step.Index) + " at " + pathOrRoot(p[:i]))
			}
			t.node = child
		case vdom.StepChildren:
			t.children = true
		case vdom.StepAttribute:
			t.attr = step.Name
		default:
			return target{}, notFound("invalid step in " + p.String())
		}
	}
	return t, nil
}

func pathOrRoot(p vdom.Path) string {
	if p.IsRoot() {
		return "<root>"
	}
	return p.String()
}
