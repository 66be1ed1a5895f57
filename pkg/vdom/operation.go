package vdom

import "fmt"

// Op is the type of a patch operation.
type Op uint8

const (
	OpAdd     Op = iota + 1 // Append a new node (or create the root)
	OpRemove                // Remove a node, or every child of a node
	OpReplace               // Swap a node for a new one
	OpInsert                // Insert a new node before the occupant of a position
	OpMove                  // Reposition an existing node among its siblings
	OpModify                // Set or remove an attribute
)

// String returns the wire name of the Op.
func (op Op) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	case OpReplace:
		return "replace"
	case OpInsert:
		return "insert"
	case OpMove:
		return "move"
	case OpModify:
		return "modify"
	default:
		return "unknown"
	}
}

// ParseOp returns the Op with the given wire name.
func ParseOp(s string) (Op, bool) {
	switch s {
	case "add":
		return OpAdd, true
	case "remove":
		return OpRemove, true
	case "replace":
		return OpReplace, true
	case "insert":
		return OpInsert, true
	case "move":
		return OpMove, true
	case "modify":
		return OpModify, true
	default:
		return 0, false
	}
}

// Operation is a single path-addressed change.
type Operation struct {
	Op    Op    // Operation type
	Path  Path  // Target location relative to the render root
	Node  *Node // For Add/Replace/Insert
	Index int   // For Move: target position among siblings
	Value any   // For Modify: new value; nil removes the attribute
}

// String returns a short human-readable form, e.g. "modify /children#0.height 5".
func (o Operation) String() string {
	path := o.Path.String()
	if path == "" {
		path = "<root>"
	}
	switch o.Op {
	case OpMove:
		return fmt.Sprintf("%s %s %d", o.Op, path, o.Index)
	case OpModify:
		if o.Value == nil {
			return fmt.Sprintf("%s %s <removed>", o.Op, path)
		}
		return fmt.Sprintf("%s %s %v", o.Op, path, o.Value)
	case OpAdd, OpReplace, OpInsert:
		return fmt.Sprintf("%s %s %s", o.Op, path, describe(o.Node))
	default:
		return fmt.Sprintf("%s %s", o.Op, path)
	}
}

func describe(n *Node) string {
	switch {
	case n == nil:
		return "<nil>"
	case n.Kind == KindLeaf:
		return fmt.Sprintf("%q", FormatValue(n.Content))
	default:
		return "<" + n.Tag + ">"
	}
}

// AddOp creates an Add operation.
func AddOp(p Path, n *Node) Operation {
	return Operation{Op: OpAdd, Path: p, Node: n}
}

// RemoveOp creates a Remove operation.
func RemoveOp(p Path) Operation {
	return Operation{Op: OpRemove, Path: p}
}

// ReplaceOp creates a Replace operation.
func ReplaceOp(p Path, n *Node) Operation {
	return Operation{Op: OpReplace, Path: p, Node: n}
}

// InsertOp creates an Insert operation.
func InsertOp(p Path, n *Node) Operation {
	return Operation{Op: OpInsert, Path: p, Node: n}
}

// MoveOp creates a Move operation.
func MoveOp(p Path, index int) Operation {
	return Operation{Op: OpMove, Path: p, Index: index}
}

// ModifyOp creates a Modify operation. A nil value removes the attribute.
func ModifyOp(p Path, value any) Operation {
	return Operation{Op: OpModify, Path: p, Value: value}
}
