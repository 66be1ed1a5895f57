package protocol

import (
	"errors"
	"sort"

	"github.com/vango-dev/vdiff/pkg/vdom"
)

// Node markers.
const (
	nodeNull    byte = 0xFF
	nodeElement byte = 0x01
	nodeLeaf    byte = 0x02
)

// ErrInvalidNode is returned for an unknown node marker or an element
// without a tag.
var ErrInvalidNode = errors.New("protocol: invalid node")

// EncodeNode appends a tree. Holes are kept, and attributes are written in
// name order so equal trees encode to equal bytes.
//
// Element: [0x01][tag][hasKey][key?][attr count]{[name][value]}[child count]{node}
// Leaf:    [0x02][value]
// Hole:    [0xFF]
func EncodeNode(e *Encoder, n *vdom.Node) error {
	if n == nil {
		e.WriteByte(nodeNull)
		return nil
	}

	if n.Kind == vdom.KindLeaf {
		e.WriteByte(nodeLeaf)
		return EncodeValue(e, n.Content)
	}

	e.WriteByte(nodeElement)
	e.WriteString(n.Tag)
	e.WriteBool(n.HasKey)
	if n.HasKey {
		e.WriteString(n.Key)
	}

	names := make([]string, 0, len(n.Attrs))
	for name := range n.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	e.WriteUvarint(uint64(len(names)))
	for _, name := range names {
		e.WriteString(name)
		if err := EncodeValue(e, n.Attrs[name]); err != nil {
			return err
		}
	}

	e.WriteUvarint(uint64(len(n.Children)))
	for _, child := range n.Children {
		if err := EncodeNode(e, child); err != nil {
			return err
		}
	}
	return nil
}

// DecodeNode reads a tree written by EncodeNode, enforcing MaxTreeDepth.
func DecodeNode(d *Decoder) (*vdom.Node, error) {
	return decodeNode(d, newDepthContext(MaxTreeDepth))
}

func decodeNode(d *Decoder, dc *depthContext) (*vdom.Node, error) {
	marker, err := d.ReadByte()
	if err != nil {
		return nil, err
	}

	switch marker {
	case nodeNull:
		return nil, nil

	case nodeLeaf:
		content, err := DecodeValue(d)
		if err != nil {
			return nil, err
		}
		return vdom.Leaf(content), nil

	case nodeElement:
		if err := dc.enter(); err != nil {
			return nil, err
		}
		defer dc.leave()

		n := &vdom.Node{Kind: vdom.KindElement}
		if n.Tag, err = d.ReadString(); err != nil {
			return nil, err
		}
		if n.Tag == "" {
			return nil, ErrInvalidNode
		}
		if n.HasKey, err = d.ReadBool(); err != nil {
			return nil, err
		}
		if n.HasKey {
			if n.Key, err = d.ReadString(); err != nil {
				return nil, err
			}
		}

		attrCount, err := d.ReadCollectionCount()
		if err != nil {
			return nil, err
		}
		if attrCount > 0 {
			n.Attrs = make(vdom.Attrs, attrCount)
			for i := 0; i < attrCount; i++ {
				name, err := d.ReadString()
				if err != nil {
					return nil, err
				}
				value, err := DecodeValue(d)
				if err != nil {
					return nil, err
				}
				n.Attrs[name] = value
			}
		}

		childCount, err := d.ReadCollectionCount()
		if err != nil {
			return nil, err
		}
		if childCount > 0 {
			n.Children = make([]*vdom.Node, childCount)
			for i := range n.Children {
				if n.Children[i], err = decodeNode(d, dc); err != nil {
					return nil, err
				}
			}
		}
		return n, nil

	default:
		return nil, ErrInvalidNode
	}
}

// EncodeTree encodes a tree as a complete message payload.
func EncodeTree(n *vdom.Node) ([]byte, error) {
	e := NewEncoder()
	if err := EncodeNode(e, n); err != nil {
		return nil, malformed("tree", err)
	}
	return e.Bytes(), nil
}

// DecodeTree decodes a payload written by EncodeTree.
func DecodeTree(data []byte) (*vdom.Node, error) {
	d := NewDecoder(data)
	n, err := DecodeNode(d)
	if err == nil && !d.EOF() {
		err = ErrTrailingData
	}
	if err != nil {
		return nil, malformed("tree", err)
	}
	return n, nil
}
