package protocol

import (
	vderrors "github.com/vango-dev/vdiff/internal/errors"
)

// ErrorMessage is sent in a FrameError.
type ErrorMessage struct {
	Code    string // Error code, e.g. "E005"
	Message string // Human-readable error message
	Fatal   bool   // If true, connection should be closed
}

// NewError creates a new non-fatal ErrorMessage.
func NewError(code, message string) *ErrorMessage {
	return &ErrorMessage{Code: code, Message: message}
}

// NewFatalError creates a new fatal ErrorMessage.
func NewFatalError(code, message string) *ErrorMessage {
	return &ErrorMessage{Code: code, Message: message, Fatal: true}
}

// ErrorMessageFrom builds an ErrorMessage from err, keeping its code when
// err carries one.
func ErrorMessageFrom(err error, fatal bool) *ErrorMessage {
	return &ErrorMessage{
		Code:    vderrors.CodeOf(err),
		Message: err.Error(),
		Fatal:   fatal,
	}
}

// Frame wraps the encoded message in a FrameError frame.
func (em *ErrorMessage) Frame() *Frame {
	return NewFrame(FrameError, EncodeErrorMessage(em))
}

// EncodeErrorMessage encodes an ErrorMessage to bytes.
func EncodeErrorMessage(em *ErrorMessage) []byte {
	e := NewEncoder()
	e.WriteString(em.Code)
	e.WriteString(em.Message)
	e.WriteBool(em.Fatal)
	return e.Bytes()
}

// DecodeErrorMessage decodes an ErrorMessage from bytes.
func DecodeErrorMessage(data []byte) (*ErrorMessage, error) {
	d := NewDecoder(data)

	code, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	message, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	fatal, err := d.ReadBool()
	if err != nil {
		return nil, err
	}

	return &ErrorMessage{Code: code, Message: message, Fatal: fatal}, nil
}

// Error implements the error interface.
func (em *ErrorMessage) Error() string {
	prefix := ""
	if em.Fatal {
		prefix = "fatal: "
	}
	if em.Code == "" {
		return prefix + em.Message
	}
	return prefix + em.Code + ": " + em.Message
}
