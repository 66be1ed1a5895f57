package host

import (
	"encoding/json"
	"sort"

	"github.com/vango-dev/vdiff/internal/errors"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

// Builder turns abstract nodes into host nodes.
type Builder interface {
	// Materialize builds a detached host subtree for n. Holes are skipped.
	Materialize(n *vdom.Node) (*Node, error)

	// SerializeAttr converts an attribute value to its host form. A false
	// present result means the attribute must be absent.
	SerializeAttr(v any) (value string, present bool, err error)
}

// builder is the default Builder.
type builder struct{}

// NewBuilder returns the default Builder. Booleans are presence-only,
// strings and numbers are written literally, nil is omitted and any other
// value is JSON encoded.
func NewBuilder() Builder {
	return builder{}
}

func (b builder) Materialize(n *vdom.Node) (*Node, error) {
	if n == nil {
		return nil, errors.New("E003").WithDetail("nil node")
	}
	if n.Kind == vdom.KindLeaf {
		return NewText(vdom.FormatValue(n.Content)), nil
	}
	if !validName(n.Tag) {
		return nil, errors.New("E003").WithDetailf("invalid tag name %q", n.Tag)
	}

	el := NewElement(n.Tag)

	// Attribute maps are unordered; sort so output is deterministic.
	names := make([]string, 0, len(n.Attrs))
	for name := range n.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !ValidAttrName(name) {
			return nil, errors.New("E003").WithDetailf("invalid attribute name %q on <%s>", name, n.Tag)
		}
		value, present, err := b.SerializeAttr(n.Attrs[name])
		if err != nil {
			return nil, errors.New("E003").WithDetailf("attribute %q on <%s>", name, n.Tag).Wrap(err)
		}
		if present {
			el.Attrs = append(el.Attrs, Attribute{Name: name, Value: value})
		}
	}

	for _, child := range n.Children {
		if child == nil {
			continue
		}
		c, err := b.Materialize(child)
		if err != nil {
			return nil, err
		}
		el.AppendChild(c)
	}
	return el, nil
}

func (builder) SerializeAttr(v any) (string, bool, error) {
	switch val := v.(type) {
	case nil:
		return "", false, nil
	case bool:
		return "", val, nil
	case string:
		return val, true, nil
	}
	if vdom.IsNumber(v) {
		return vdom.FormatValue(v), true, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", false, errors.New("E003").WithDetail("attribute value is not serializable").Wrap(err)
	}
	return string(data), true, nil
}

// validName reports whether s is usable as an element tag: an ASCII letter
// followed by letters, digits, '-', '_', '.' or ':'.
func validName(s string) bool {
	if s == "" || !isLetter(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isLetter(c) && !isDigit(c) && c != '-' && c != '_' && c != '.' && c != ':' {
			return false
		}
	}
	return true
}

// ValidAttrName rejects names that cannot be written as an HTML attribute.
func ValidAttrName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case ' ', '\t', '\n', '\f', '\r', '"', '\'', '>', '/', '=', '<':
			return false
		default:
			if c < 0x20 || c == 0x7f {
				return false
			}
		}
	}
	return true
}

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
