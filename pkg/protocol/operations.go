package protocol

import (
	"errors"
	"fmt"

	vderrors "github.com/vango-dev/vdiff/internal/errors"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

// ErrInvalidOp is returned for an unknown operation type.
var ErrInvalidOp = errors.New("protocol: invalid operation type")

// OperationsFrame is a batch of operations with a sequence number.
// A Resync batch starts from an empty tree.
type OperationsFrame struct {
	Seq    uint64
	Resync bool
	Ops    []vdom.Operation
}

// Frame wraps the encoded batch in a FrameOperations frame.
func (of *OperationsFrame) Frame() (*Frame, error) {
	payload, err := EncodeOperations(of)
	if err != nil {
		return nil, err
	}
	flags := FlagSequenced
	if of.Resync {
		flags |= FlagResync
	}
	return &Frame{Type: FrameOperations, Flags: flags, Payload: payload}, nil
}

// EncodeOperations encodes an operation batch.
//
// Format: [seq: varint][count: varint]{[op: byte][path: string][data]}
// where data is a node for add/replace/insert, a varint for move, a value
// for modify and empty for remove.
func EncodeOperations(of *OperationsFrame) ([]byte, error) {
	e := NewEncoder()
	e.WriteUvarint(of.Seq)
	e.WriteBool(of.Resync)
	e.WriteUvarint(uint64(len(of.Ops)))
	for i, op := range of.Ops {
		if err := encodeOperation(e, op); err != nil {
			return nil, malformed(fmt.Sprintf("operation %d", i), err)
		}
	}
	return e.Bytes(), nil
}

func encodeOperation(e *Encoder, op vdom.Operation) error {
	e.WriteByte(byte(op.Op))
	e.WriteString(op.Path.String())

	switch op.Op {
	case vdom.OpAdd, vdom.OpReplace, vdom.OpInsert:
		if op.Node == nil {
			return fmt.Errorf("%s without node", op.Op)
		}
		return EncodeNode(e, op.Node)
	case vdom.OpRemove:
		return nil
	case vdom.OpMove:
		e.WriteUvarint(uint64(op.Index))
		return nil
	case vdom.OpModify:
		return EncodeValue(e, op.Value)
	default:
		return ErrInvalidOp
	}
}

// DecodeOperations decodes a batch written by EncodeOperations.
func DecodeOperations(data []byte) (*OperationsFrame, error) {
	d := NewDecoder(data)
	of, err := decodeOperations(d)
	if err == nil && !d.EOF() {
		err = ErrTrailingData
	}
	if err != nil {
		return nil, malformed("operation batch", err)
	}
	return of, nil
}

func decodeOperations(d *Decoder) (*OperationsFrame, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	resync, err := d.ReadBool()
	if err != nil {
		return nil, err
	}
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}

	of := &OperationsFrame{Seq: seq, Resync: resync, Ops: make([]vdom.Operation, 0, count)}
	for i := 0; i < count; i++ {
		op, err := decodeOperation(d)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		of.Ops = append(of.Ops, op)
	}
	return of, nil
}

func decodeOperation(d *Decoder) (vdom.Operation, error) {
	var op vdom.Operation

	b, err := d.ReadByte()
	if err != nil {
		return op, err
	}
	op.Op = vdom.Op(b)

	raw, err := d.ReadString()
	if err != nil {
		return op, err
	}
	if op.Path, err = vdom.ParsePath(raw); err != nil {
		return op, err
	}

	switch op.Op {
	case vdom.OpAdd, vdom.OpReplace, vdom.OpInsert:
		if op.Node, err = DecodeNode(d); err != nil {
			return op, err
		}
		if op.Node == nil {
			return op, fmt.Errorf("%s without node", op.Op)
		}
	case vdom.OpRemove:
	case vdom.OpMove:
		idx, err := d.ReadUvarint()
		if err != nil {
			return op, err
		}
		if idx > MaxCollectionCount {
			return op, ErrCollectionTooLarge
		}
		op.Index = int(idx)
	case vdom.OpModify:
		if op.Value, err = DecodeValue(d); err != nil {
			return op, err
		}
	default:
		return op, ErrInvalidOp
	}
	return op, nil
}

// malformed wraps a codec failure as an E005 error. The cause stays
// reachable with errors.Is.
func malformed(what string, err error) error {
	return vderrors.New("E005").WithDetail("invalid " + what).Wrap(err)
}
