/*
Package codec writes and reads the protobuf wire format of the models,
messages and transactions of the chain.

Every extension keeps its schema in a codec.proto file next to the Go
types. The types encode themselves field by field with a Writer and decode
with Unmarshal, so the bytes stay readable by any protobuf implementation
using that schema. Zero values are omitted as proto3 does.
*/
package codec

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lockbox/errors"
)

// Message is a value with a protobuf wire form.
type Message interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}

// Writer appends protobuf fields to a buffer.
// The first error stops all further writes and is returned by Result.
type Writer struct {
	buf *proto.Buffer
	err error
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{buf: proto.NewBuffer(nil)}
}

func (w *Writer) key(field int, wire int) {
	w.err = w.buf.EncodeVarint(uint64(field)<<3 | uint64(wire))
}

// Uint64 writes a varint field, omitted when zero.
func (w *Writer) Uint64(field int, v uint64) {
	if v == 0 || w.err != nil {
		return
	}
	w.key(field, proto.WireVarint)
	if w.err == nil {
		w.err = w.buf.EncodeVarint(v)
	}
}

// Int64 writes an int64 field. Negative values take ten bytes.
func (w *Writer) Int64(field int, v int64) {
	w.Uint64(field, uint64(v))
}

// Bytes writes a length delimited field, omitted when empty.
func (w *Writer) Bytes(field int, v []byte) {
	if len(v) == 0 {
		return
	}
	w.raw(field, v)
}

// String writes a string field, omitted when empty.
func (w *Writer) String(field int, v string) {
	w.Bytes(field, []byte(v))
}

// RepeatedBytes writes one field per element. Empty elements are kept.
func (w *Writer) RepeatedBytes(field int, vs [][]byte) {
	for _, v := range vs {
		w.raw(field, v)
	}
}

// Message writes the embedded message m. Callers skip nil messages.
func (w *Writer) Message(field int, m Message) {
	if w.err != nil {
		return
	}
	raw, err := m.Marshal()
	if err != nil {
		w.err = err
		return
	}
	w.raw(field, raw)
}

func (w *Writer) raw(field int, v []byte) {
	if w.err != nil {
		return
	}
	w.key(field, proto.WireBytes)
	if w.err == nil {
		w.err = w.buf.EncodeRawBytes(v)
	}
}

// Result returns the encoded message.
func (w *Writer) Result() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.buf.Bytes(), nil
}

// Field is a single decoded field of a message.
type Field struct {
	Num  int
	Wire int

	varint uint64
	data   []byte
}

// Uint64 returns the value of a varint field.
func (f Field) Uint64() (uint64, error) {
	if f.Wire != proto.WireVarint {
		return 0, errors.Wrapf(errors.ErrInput, "field %d: wire type %d, want varint", f.Num, f.Wire)
	}
	return f.varint, nil
}

// Int64 returns the value of an int64 field.
func (f Field) Int64() (int64, error) {
	v, err := f.Uint64()
	return int64(v), err
}

// Bytes returns a copy of a length delimited field.
func (f Field) Bytes() ([]byte, error) {
	if f.Wire != proto.WireBytes {
		return nil, errors.Wrapf(errors.ErrInput, "field %d: wire type %d, want bytes", f.Num, f.Wire)
	}
	return append([]byte(nil), f.data...), nil
}

// String returns the value of a string field.
func (f Field) String() (string, error) {
	if f.Wire != proto.WireBytes {
		return "", errors.Wrapf(errors.ErrInput, "field %d: wire type %d, want bytes", f.Num, f.Wire)
	}
	return string(f.data), nil
}

// Message decodes an embedded message into m.
func (f Field) Message(m Message) error {
	if f.Wire != proto.WireBytes {
		return errors.Wrapf(errors.ErrInput, "field %d: wire type %d, want message", f.Num, f.Wire)
	}
	return errors.Wrapf(m.Unmarshal(f.data), "field %d", f.Num)
}

// Unmarshal calls fn for every varint or length delimited field of raw,
// in wire order. Fields of other wire types are skipped, so are the
// field numbers fn does not know about when it returns nil for them.
func Unmarshal(raw []byte, fn func(Field) error) error {
	for len(raw) > 0 {
		key, n := proto.DecodeVarint(raw)
		if n == 0 {
			return errors.Wrap(errors.ErrInput, "truncated field key")
		}
		f := Field{Num: int(key >> 3), Wire: int(key & 0x7)}
		if f.Num <= 0 {
			return errors.Wrapf(errors.ErrInput, "illegal field number %d", f.Num)
		}

		switch f.Wire {
		case proto.WireVarint:
			v, m := proto.DecodeVarint(raw[n:])
			if m == 0 {
				return errors.Wrapf(errors.ErrInput, "field %d: truncated varint", f.Num)
			}
			f.varint = v
			raw = raw[n+m:]
		case proto.WireBytes:
			l, m := proto.DecodeVarint(raw[n:])
			start := n + m
			if m == 0 || l > uint64(len(raw)-start) {
				return errors.Wrapf(errors.ErrInput, "field %d: truncated bytes", f.Num)
			}
			end := start + int(l)
			f.data = raw[start:end]
			raw = raw[end:]
		default:
			skip, err := proto.Skip(raw)
			if err != nil {
				return errors.Wrapf(errors.ErrInput, "field %d: %s", f.Num, err)
			}
			if skip > len(raw) {
				return errors.Wrapf(errors.ErrInput, "field %d: truncated", f.Num)
			}
			raw = raw[skip:]
			continue
		}

		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}
