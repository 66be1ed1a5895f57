package vdom

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/vango-dev/vdiff/internal/errors"
)

// jsonElement is the JSON shape of an element node.
type jsonElement struct {
	Tag        string  `json:"tag"`
	Key        *string `json:"key,omitempty"`
	Attributes Attrs   `json:"attributes,omitempty"`
	Children   []*Node `json:"children,omitempty"`
}

// MarshalJSON encodes n as {"content": …} for leaves and
// {"tag": …, "key": …, "attributes": …, "children": […]} for elements.
// Holes are encoded as null.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}
	if n.Kind == KindLeaf {
		return json.Marshal(struct {
			Content any `json:"content"`
		}{n.Content})
	}
	e := jsonElement{
		Tag:        n.Tag,
		Attributes: n.Attrs,
		Children:   n.Children,
	}
	if n.HasKey {
		key := n.Key
		e.Key = &key
	}
	return json.Marshal(e)
}

// UnmarshalJSON decodes the form written by MarshalJSON. An object with a
// "content" member (even null) is a leaf; any other object is an element.
// Integral numbers decode as int64, others as float64.
func (n *Node) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return errors.New("E005").WithDetail("node is not a JSON object").Wrap(err)
	}

	if raw, ok := fields["content"]; ok {
		content, err := DecodeJSONValue(raw)
		if err != nil {
			return err
		}
		*n = Node{Kind: KindLeaf, Content: content}
		return nil
	}

	*n = Node{Kind: KindElement}
	if raw, ok := fields["tag"]; ok {
		if err := json.Unmarshal(raw, &n.Tag); err != nil {
			return errors.New("E005").WithDetail("tag must be a string").Wrap(err)
		}
	}
	if n.Tag == "" {
		return errors.New("E005").WithDetail("element without tag")
	}
	if raw, ok := fields["key"]; ok && string(raw) != "null" {
		key, err := DecodeJSONValue(raw)
		if err != nil {
			return err
		}
		n.WithKey(FormatValue(key))
	}
	if raw, ok := fields["attributes"]; ok && string(raw) != "null" {
		var attrs map[string]json.RawMessage
		if err := json.Unmarshal(raw, &attrs); err != nil {
			return errors.New("E005").WithDetail("attributes must be an object").Wrap(err)
		}
		n.Attrs = make(Attrs, len(attrs))
		for name, rawValue := range attrs {
			value, err := DecodeJSONValue(rawValue)
			if err != nil {
				return err
			}
			n.Attrs[name] = value
		}
	}
	if raw, ok := fields["children"]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &n.Children); err != nil {
			return errors.FromError(err, "E005")
		}
	}
	return nil
}

// DecodeJSONValue decodes a JSON value keeping integers integral: they
// become int64, other numbers float64.
func DecodeJSONValue(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.New("E005").WithDetail("invalid value").Wrap(err)
	}
	return normalizeNumbers(v), nil
}

func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(string(val), 10, 64); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return string(val)
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeNumbers(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = normalizeNumbers(item)
		}
		return val
	default:
		return v
	}
}

// jsonOperation is the JSON shape of an Operation.
type jsonOperation struct {
	Type string          `json:"type"`
	Path Path            `json:"path"`
	Data json.RawMessage `json:"data,omitempty"`
}

// MarshalJSON encodes o as {"type": "modify", "path": "/children#0.height", "data": 5}.
func (o Operation) MarshalJSON() ([]byte, error) {
	jo := jsonOperation{Type: o.Op.String(), Path: o.Path}
	var (
		data []byte
		err  error
	)
	switch o.Op {
	case OpAdd, OpReplace, OpInsert:
		data, err = json.Marshal(o.Node)
	case OpMove:
		data, err = json.Marshal(o.Index)
	case OpModify:
		data, err = json.Marshal(o.Value)
	}
	if err != nil {
		return nil, err
	}
	jo.Data = data
	return json.Marshal(jo)
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (o *Operation) UnmarshalJSON(data []byte) error {
	var jo jsonOperation
	if err := json.Unmarshal(data, &jo); err != nil {
		return errors.FromError(err, "E005")
	}
	op, ok := ParseOp(jo.Type)
	if !ok {
		return errors.New("E005").WithDetailf("unknown operation type %q", jo.Type)
	}
	*o = Operation{Op: op, Path: jo.Path}

	switch op {
	case OpAdd, OpReplace, OpInsert:
		if len(jo.Data) == 0 || string(jo.Data) == "null" {
			return errors.New("E005").WithDetailf("%s operation without node", op)
		}
		o.Node = new(Node)
		if err := json.Unmarshal(jo.Data, o.Node); err != nil {
			return err
		}
	case OpMove:
		if err := json.Unmarshal(jo.Data, &o.Index); err != nil {
			return errors.New("E005").WithDetail("move target must be an integer").Wrap(err)
		}
	case OpModify:
		if len(jo.Data) > 0 {
			value, err := DecodeJSONValue(jo.Data)
			if err != nil {
				return err
			}
			o.Value = value
		}
	}
	return nil
}
