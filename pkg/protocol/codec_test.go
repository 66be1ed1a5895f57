package protocol

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	vderrors "github.com/vango-dev/vdiff/internal/errors"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

func TestEncoderDecoderPrimitives(t *testing.T) {
	e := NewEncoder()
	e.WriteByte(0xAB)
	e.WriteUvarint(300)
	e.WriteSvarint(-42)
	e.WriteString("héllo")
	e.WriteLenBytes([]byte{1, 2, 3})
	e.WriteBool(true)
	e.WriteUint32(0xDEADBEEF)
	e.WriteUint64(1 << 40)
	e.WriteFloat64(2.5)

	d := NewDecoder(e.Bytes())
	if b, err := d.ReadByte(); err != nil || b != 0xAB {
		t.Errorf("ReadByte() = %x, %v", b, err)
	}
	if v, err := d.ReadUvarint(); err != nil || v != 300 {
		t.Errorf("ReadUvarint() = %d, %v", v, err)
	}
	if v, err := d.ReadSvarint(); err != nil || v != -42 {
		t.Errorf("ReadSvarint() = %d, %v", v, err)
	}
	if s, err := d.ReadString(); err != nil || s != "héllo" {
		t.Errorf("ReadString() = %q, %v", s, err)
	}
	if b, err := d.ReadLenBytes(); err != nil || !cmp.Equal(b, []byte{1, 2, 3}) {
		t.Errorf("ReadLenBytes() = %v, %v", b, err)
	}
	if b, err := d.ReadBool(); err != nil || !b {
		t.Errorf("ReadBool() = %v, %v", b, err)
	}
	if v, err := d.ReadUint32(); err != nil || v != 0xDEADBEEF {
		t.Errorf("ReadUint32() = %x, %v", v, err)
	}
	if v, err := d.ReadUint64(); err != nil || v != 1<<40 {
		t.Errorf("ReadUint64() = %d, %v", v, err)
	}
	if v, err := d.ReadFloat64(); err != nil || v != 2.5 {
		t.Errorf("ReadFloat64() = %v, %v", v, err)
	}
	if !d.EOF() {
		t.Errorf("Remaining() = %d, want 0", d.Remaining())
	}
	if _, err := d.ReadByte(); err != io.ErrUnexpectedEOF {
		t.Errorf("ReadByte() past end error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestSvarintExtremes(t *testing.T) {
	for _, v := range []int64{0, 1, -1, math.MaxInt64, math.MinInt64} {
		e := NewEncoder()
		e.WriteSvarint(v)
		got, err := NewDecoder(e.Bytes()).ReadSvarint()
		if err != nil || got != v {
			t.Errorf("svarint %d: got %d, %v", v, got, err)
		}
	}
}

func TestEncoderReset(t *testing.T) {
	e := NewEncoder()
	e.WriteString("abc")
	e.Reset()
	if e.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", e.Len())
	}
}

func TestValueRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"true", true, true},
		{"false", false, false},
		{"string", "blue", "blue"},
		{"empty string", "", ""},
		{"int", 5, int64(5)},
		{"negative", int32(-7), int64(-7)},
		{"uint8", uint8(200), int64(200)},
		{"uint64 large", uint64(math.MaxUint64), float64(math.MaxUint64)},
		{"float", 1.5, 1.5},
		{"float32", float32(0.25), 0.25},
		{"json slice", []any{"a", 1}, []any{"a", int64(1)}},
		{"json map", map[string]any{"k": 2.5}, map[string]any{"k": 2.5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEncoder()
			if err := EncodeValue(e, tc.in); err != nil {
				t.Fatalf("EncodeValue() error = %v", err)
			}
			d := NewDecoder(e.Bytes())
			got, err := DecodeValue(d)
			if err != nil {
				t.Fatalf("DecodeValue() error = %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("value mismatch (-want +got):\n%s", diff)
			}
			if !d.EOF() {
				t.Errorf("%d bytes left over", d.Remaining())
			}
		})
	}
}

func TestValueKeepsEquality(t *testing.T) {
	// A value that survives the codec still compares equal to the original,
	// so a diff against a decoded tree stays empty.
	for _, v := range []any{3, 3.0, "3", true, nil} {
		e := NewEncoder()
		if err := EncodeValue(e, v); err != nil {
			t.Fatal(err)
		}
		got, err := DecodeValue(NewDecoder(e.Bytes()))
		if err != nil {
			t.Fatal(err)
		}
		if !vdom.ValuesEqual(v, got) {
			t.Errorf("ValuesEqual(%#v, %#v) = false", v, got)
		}
	}
}

func TestValueErrors(t *testing.T) {
	e := NewEncoder()
	if err := EncodeValue(e, func() {}); err == nil {
		t.Error("EncodeValue(func) error = nil")
	}

	if _, err := DecodeValue(NewDecoder([]byte{0x7F})); err != ErrInvalidValueTag {
		t.Errorf("DecodeValue(bad tag) error = %v, want ErrInvalidValueTag", err)
	}
	if _, err := DecodeValue(NewDecoder(nil)); err != io.ErrUnexpectedEOF {
		t.Errorf("DecodeValue(empty) error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func sampleTree() *vdom.Node {
	return vdom.El("main", vdom.Attrs{"id": "app", "hidden": true, "tabindex": 3},
		vdom.El("h1", nil, vdom.Text("Title")).WithKey("head"),
		(*vdom.Node)(nil),
		vdom.El("p", vdom.Attrs{"ratio": 0.5}, vdom.Leaf(42), vdom.Leaf(nil)),
		vdom.El("slot", nil).WithKey(""),
	)
}

func TestTreeRoundTrip(t *testing.T) {
	tree := sampleTree()

	data, err := EncodeTree(tree)
	if err != nil {
		t.Fatalf("EncodeTree() error = %v", err)
	}
	got, err := DecodeTree(data)
	if err != nil {
		t.Fatalf("DecodeTree() error = %v", err)
	}

	if ops := vdom.Diff(tree, got); len(ops) != 0 {
		t.Errorf("Diff(original, decoded) = %v, want no operations", ops)
	}
	if got.Children[1] != nil {
		t.Errorf("hole decoded as %v", got.Children[1])
	}
	if !got.Children[3].HasKey || got.Children[3].Key != "" {
		t.Error("empty key was lost")
	}
	if got.Children[2].Children[0].Content != int64(42) {
		t.Errorf("leaf content = %#v, want int64(42)", got.Children[2].Children[0].Content)
	}
}

func TestTreeEncodingIsDeterministic(t *testing.T) {
	a, err := EncodeTree(sampleTree())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		b, err := EncodeTree(sampleTree())
		if err != nil {
			t.Fatal(err)
		}
		if !cmp.Equal(a, b) {
			t.Fatal("equal trees encoded to different bytes")
		}
	}
}

func TestNilTree(t *testing.T) {
	data, err := EncodeTree(nil)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeTree(data)
	if err != nil || got != nil {
		t.Errorf("DecodeTree(nil tree) = %v, %v", got, err)
	}
}

func TestDecodeTreeErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, io.ErrUnexpectedEOF},
		{"unknown marker", []byte{0x09}, ErrInvalidNode},
		{"empty tag", []byte{nodeElement, 0x00, 0x00, 0x00, 0x00}, ErrInvalidNode},
		{"bad key flag", []byte{nodeElement, 0x01, 'p', 0x07}, ErrInvalidBool},
		{"trailing", []byte{nodeNull, 0x00}, ErrTrailingData},
		{"truncated children", []byte{nodeElement, 0x01, 'p', 0x00, 0x00, 0x02, nodeNull}, io.ErrUnexpectedEOF},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeTree(tc.data)
			if !errors.Is(err, tc.want) {
				t.Errorf("DecodeTree() error = %v, want %v", err, tc.want)
			}
			if !vderrors.HasCode(err, "E005") {
				t.Errorf("DecodeTree() error %v does not carry E005", err)
			}
		})
	}
}

func TestDepthLimit(t *testing.T) {
	deep := func(depth int) *vdom.Node {
		n := vdom.El("div", nil)
		root := n
		for i := 1; i < depth; i++ {
			child := vdom.El("div", nil)
			n.Children = []*vdom.Node{child}
			n = child
		}
		return root
	}

	data, err := EncodeTree(deep(MaxTreeDepth))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeTree(data); err != nil {
		t.Errorf("DecodeTree(depth %d) error = %v", MaxTreeDepth, err)
	}

	data, err = EncodeTree(deep(MaxTreeDepth + 1))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeTree(data); !errors.Is(err, ErrMaxDepthExceeded) {
		t.Errorf("DecodeTree(depth %d) error = %v, want ErrMaxDepthExceeded", MaxTreeDepth+1, err)
	}
}

func TestOperationsRoundTrip(t *testing.T) {
	prev := vdom.El("div", nil,
		vdom.El("a", vdom.Attrs{"width": 10}),
		vdom.El("b", nil),
		vdom.Text("old"),
	)
	curr := vdom.El("div", nil,
		vdom.El("b", nil),
		vdom.El("a", vdom.Attrs{"width": 20, "color": "blue"}),
		vdom.Text("new"),
		vdom.El("c", nil).WithKey("k"),
	)
	ops := vdom.Diff(prev, curr)
	ops = append(ops,
		vdom.ReplaceOp(vdom.Path(nil), vdom.El("x", nil)),
		vdom.ModifyOp(vdom.Path(nil).Attribute("hidden"), nil),
	)

	in := &OperationsFrame{Seq: 7, Ops: ops}
	data, err := EncodeOperations(in)
	if err != nil {
		t.Fatalf("EncodeOperations() error = %v", err)
	}
	got, err := DecodeOperations(data)
	if err != nil {
		t.Fatalf("DecodeOperations() error = %v", err)
	}

	if got.Seq != 7 || got.Resync {
		t.Errorf("header = seq %d resync %v, want 7 false", got.Seq, got.Resync)
	}
	if diff := cmp.Diff(opStrings(in.Ops), opStrings(got.Ops)); diff != "" {
		t.Errorf("operations mismatch (-want +got):\n%s", diff)
	}
}

func opStrings(ops []vdom.Operation) []string {
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = op.String()
	}
	return out
}

func TestOperationsFrame(t *testing.T) {
	of := &OperationsFrame{Seq: 1, Resync: true, Ops: []vdom.Operation{
		vdom.AddOp(vdom.Path(nil), vdom.El("div", nil)),
	}}
	f, err := of.Frame()
	if err != nil {
		t.Fatal(err)
	}
	if f.Type != FrameOperations {
		t.Errorf("Type = %v, want Operations", f.Type)
	}
	if !f.Flags.Has(FlagSequenced) || !f.Flags.Has(FlagResync) {
		t.Errorf("Flags = %#x, want sequenced and resync", f.Flags)
	}

	decoded, err := DecodeFrame(f.Encode())
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeOperations(decoded.Payload)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Resync || len(got.Ops) != 1 || got.Ops[0].Op != vdom.OpAdd {
		t.Errorf("decoded batch = %+v", got)
	}
}

func TestOperationsErrors(t *testing.T) {
	t.Run("encode without node", func(t *testing.T) {
		_, err := EncodeOperations(&OperationsFrame{Ops: []vdom.Operation{
			{Op: vdom.OpInsert, Path: vdom.Path(nil).Child(0)},
		}})
		if !vderrors.HasCode(err, "E005") {
			t.Errorf("error = %v, want E005", err)
		}
	})

	t.Run("encode unknown op", func(t *testing.T) {
		_, err := EncodeOperations(&OperationsFrame{Ops: []vdom.Operation{{Op: 99}}})
		if !errors.Is(err, ErrInvalidOp) {
			t.Errorf("error = %v, want ErrInvalidOp", err)
		}
	})

	t.Run("decode unknown op", func(t *testing.T) {
		e := NewEncoder()
		e.WriteUvarint(1)
		e.WriteBool(false)
		e.WriteUvarint(1)
		e.WriteByte(99)
		e.WriteString("")
		if _, err := DecodeOperations(e.Bytes()); !errors.Is(err, ErrInvalidOp) {
			t.Errorf("error = %v, want ErrInvalidOp", err)
		}
	})

	t.Run("decode bad path", func(t *testing.T) {
		e := NewEncoder()
		e.WriteUvarint(1)
		e.WriteBool(false)
		e.WriteUvarint(1)
		e.WriteByte(byte(vdom.OpRemove))
		e.WriteString("/children#x")
		_, err := DecodeOperations(e.Bytes())
		if err == nil {
			t.Fatal("error = nil")
		}
		if !vderrors.HasCode(err, "E005") {
			t.Errorf("error = %v, want E005", err)
		}
	})

	t.Run("decode trailing", func(t *testing.T) {
		data, err := EncodeOperations(&OperationsFrame{Seq: 1})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := DecodeOperations(append(data, 0x00)); !errors.Is(err, ErrTrailingData) {
			t.Errorf("error = %v, want ErrTrailingData", err)
		}
	})
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		msg  *ErrorMessage
		want string
	}{
		{"plain", NewError("E005", "bad frame"), "E005: bad frame"},
		{"fatal", NewFatalError("E005", "bad frame"), "fatal: E005: bad frame"},
		{"no code", &ErrorMessage{Message: "oops"}, "oops"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := tc.msg.Frame()
			if f.Type != FrameError {
				t.Errorf("Type = %v, want Error", f.Type)
			}
			got, err := DecodeErrorMessage(f.Payload)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.msg, got); diff != "" {
				t.Errorf("message mismatch (-want +got):\n%s", diff)
			}
			if got.Error() != tc.want {
				t.Errorf("Error() = %q, want %q", got.Error(), tc.want)
			}
		})
	}
}

func TestErrorMessageFrom(t *testing.T) {
	err := vderrors.New("E001").WithDetail("no node at /children#4")
	em := ErrorMessageFrom(err, false)
	if em.Code != "E001" {
		t.Errorf("Code = %q, want E001", em.Code)
	}
	if em.Message != err.Error() {
		t.Errorf("Message = %q, want %q", em.Message, err.Error())
	}

	em = ErrorMessageFrom(errors.New("plain"), true)
	want := &ErrorMessage{Message: "plain", Fatal: true}
	if diff := cmp.Diff(want, em, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
