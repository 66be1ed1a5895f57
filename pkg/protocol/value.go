package protocol

import (
	"encoding/json"
	"errors"
	"math"

	"github.com/vango-dev/vdiff/pkg/vdom"
)

// ValueTag identifies the type of an encoded value.
type ValueTag uint8

const (
	ValueNull   ValueTag = 0x00
	ValueFalse  ValueTag = 0x01
	ValueTrue   ValueTag = 0x02
	ValueString ValueTag = 0x03
	ValueInt    ValueTag = 0x04 // ZigZag varint
	ValueFloat  ValueTag = 0x05 // IEEE 754, big-endian
	ValueJSON   ValueTag = 0x06 // Length-prefixed JSON text
)

// ErrInvalidValueTag is returned for an unknown value tag.
var ErrInvalidValueTag = errors.New("protocol: invalid value tag")

// EncodeValue appends an attribute value or leaf content. Integers that
// fit in an int64 keep their integral form; other numbers become floats and
// non-scalar values are JSON encoded.
func EncodeValue(e *Encoder, v any) error {
	switch val := v.(type) {
	case nil:
		e.WriteByte(byte(ValueNull))
	case bool:
		if val {
			e.WriteByte(byte(ValueTrue))
		} else {
			e.WriteByte(byte(ValueFalse))
		}
	case string:
		e.WriteByte(byte(ValueString))
		e.WriteString(val)
	case int:
		writeInt(e, int64(val))
	case int8:
		writeInt(e, int64(val))
	case int16:
		writeInt(e, int64(val))
	case int32:
		writeInt(e, int64(val))
	case int64:
		writeInt(e, val)
	case uint:
		writeUint(e, uint64(val))
	case uint8:
		writeInt(e, int64(val))
	case uint16:
		writeInt(e, int64(val))
	case uint32:
		writeInt(e, int64(val))
	case uint64:
		writeUint(e, val)
	case float32:
		e.WriteByte(byte(ValueFloat))
		e.WriteFloat64(float64(val))
	case float64:
		e.WriteByte(byte(ValueFloat))
		e.WriteFloat64(val)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		e.WriteByte(byte(ValueJSON))
		e.WriteLenBytes(data)
	}
	return nil
}

func writeInt(e *Encoder, v int64) {
	e.WriteByte(byte(ValueInt))
	e.WriteSvarint(v)
}

func writeUint(e *Encoder, v uint64) {
	if v > math.MaxInt64 {
		e.WriteByte(byte(ValueFloat))
		e.WriteFloat64(float64(v))
		return
	}
	writeInt(e, int64(v))
}

// DecodeValue reads a value written by EncodeValue. Integers decode as
// int64 and floats as float64; JSON values decode with the same number
// handling as the vdom JSON codec.
func DecodeValue(d *Decoder) (any, error) {
	tag, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	switch ValueTag(tag) {
	case ValueNull:
		return nil, nil
	case ValueFalse:
		return false, nil
	case ValueTrue:
		return true, nil
	case ValueString:
		return d.ReadString()
	case ValueInt:
		return d.ReadSvarint()
	case ValueFloat:
		return d.ReadFloat64()
	case ValueJSON:
		data, err := d.ReadLenBytes()
		if err != nil {
			return nil, err
		}
		return vdom.DecodeJSONValue(data)
	default:
		return nil, ErrInvalidValueTag
	}
}
