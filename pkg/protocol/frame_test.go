package protocol

import (
	"bytes"
	"io"
	"testing"
)

func TestFrameEncodeDecode(t *testing.T) {
	tests := []struct {
		name    string
		frame   Frame
		wantLen int // expected total length including header
	}{
		{
			name:    "empty_payload",
			frame:   Frame{Type: FrameTree, Payload: []byte{}},
			wantLen: FrameHeaderSize,
		},
		{
			name:    "sequenced",
			frame:   Frame{Type: FrameOperations, Flags: FlagSequenced, Payload: []byte{0x01, 0x02, 0x03}},
			wantLen: FrameHeaderSize + 3,
		},
		{
			name:    "resync",
			frame:   Frame{Type: FrameOperations, Flags: FlagSequenced | FlagResync, Payload: []byte("test")},
			wantLen: FrameHeaderSize + 4,
		},
		{
			name:    "large",
			frame:   Frame{Type: FrameTree, Payload: bytes.Repeat([]byte{0xAA}, 70_000)},
			wantLen: FrameHeaderSize + 70_000,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			encoded := tc.frame.Encode()
			if len(encoded) != tc.wantLen {
				t.Errorf("Encode() length = %d, want %d", len(encoded), tc.wantLen)
			}
			if FrameType(encoded[0]) != tc.frame.Type {
				t.Errorf("Encoded type = %v, want %v", FrameType(encoded[0]), tc.frame.Type)
			}
			if FrameFlags(encoded[1]) != tc.frame.Flags {
				t.Errorf("Encoded flags = %v, want %v", FrameFlags(encoded[1]), tc.frame.Flags)
			}

			decoded, err := DecodeFrame(encoded)
			if err != nil {
				t.Fatalf("DecodeFrame() error = %v", err)
			}
			if decoded.Type != tc.frame.Type || decoded.Flags != tc.frame.Flags {
				t.Errorf("Decoded header = %v/%v, want %v/%v", decoded.Type, decoded.Flags, tc.frame.Type, tc.frame.Flags)
			}
			if !bytes.Equal(decoded.Payload, tc.frame.Payload) {
				t.Error("Decoded payload mismatch")
			}
		})
	}
}

func TestDecodeFrameErrors(t *testing.T) {
	valid := NewFrame(FrameTree, []byte{1, 2, 3}).Encode()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short header", valid[:3], ErrBufferTooShort},
		{"short payload", valid[:len(valid)-1], io.ErrUnexpectedEOF},
		{"trailing", append(append([]byte{}, valid...), 0x00), ErrTrailingData},
		{"too large", []byte{byte(FrameTree), 0, 0xFF, 0xFF, 0xFF, 0xFF}, ErrFrameTooLarge},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeFrame(tc.data); err != tc.want {
				t.Errorf("DecodeFrame() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestReadWriteFrame(t *testing.T) {
	var buf bytes.Buffer
	frames := []*Frame{
		NewFrame(FrameTree, []byte("one")),
		{Type: FrameOperations, Flags: FlagSequenced, Payload: []byte("two")},
		NewFrame(FrameError, nil),
	}
	for _, f := range frames {
		if err := WriteFrame(&buf, f); err != nil {
			t.Fatalf("WriteFrame() error = %v", err)
		}
	}

	for i, want := range frames {
		got, err := ReadFrame(&buf)
		if err != nil {
			t.Fatalf("ReadFrame() #%d error = %v", i, err)
		}
		if got.Type != want.Type || got.Flags != want.Flags || !bytes.Equal(got.Payload, want.Payload) {
			t.Errorf("frame #%d = %+v, want %+v", i, got, want)
		}
	}

	if _, err := ReadFrame(&buf); err != io.EOF {
		t.Errorf("ReadFrame() at end error = %v, want io.EOF", err)
	}
}

func TestWriteFrameTooLarge(t *testing.T) {
	f := NewFrame(FrameTree, make([]byte, MaxPayloadSize+1))
	if err := WriteFrame(io.Discard, f); err != ErrFrameTooLarge {
		t.Errorf("WriteFrame() error = %v, want ErrFrameTooLarge", err)
	}
}

func TestFrameTypeString(t *testing.T) {
	tests := []struct {
		ft   FrameType
		want string
	}{
		{FrameTree, "Tree"},
		{FrameOperations, "Operations"},
		{FrameError, "Error"},
		{FrameType(0x42), "Unknown"},
	}
	for _, tc := range tests {
		if got := tc.ft.String(); got != tc.want {
			t.Errorf("FrameType(%#x).String() = %q, want %q", uint8(tc.ft), got, tc.want)
		}
	}
}
