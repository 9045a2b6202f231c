package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lockbox/codec"
)

func init() {
	proto.RegisterType((*UserData)(nil), "sigs.UserData")
	proto.RegisterType((*StdSignature)(nil), "sigs.StdSignature")
}

func (m *UserData) Reset()         { *m = UserData{} }
func (m *UserData) String() string { return proto.CompactTextString(m) }
func (*UserData) ProtoMessage()    {}

// Marshal implements lockbox.Persistent
func (m *UserData) Marshal() ([]byte, error) {
	w := codec.NewWriter()
	w.Bytes(1, m.Pubkey)
	w.Int64(2, m.Sequence)
	return w.Result()
}

// Unmarshal implements lockbox.Persistent
func (m *UserData) Unmarshal(raw []byte) error {
	*m = UserData{}
	return codec.Unmarshal(raw, func(f codec.Field) (err error) {
		switch f.Num {
		case 1:
			m.Pubkey, err = f.Bytes()
		case 2:
			m.Sequence, err = f.Int64()
		}
		return err
	})
}

func (m *StdSignature) Reset()         { *m = StdSignature{} }
func (m *StdSignature) String() string { return proto.CompactTextString(m) }
func (*StdSignature) ProtoMessage()    {}

// Marshal implements lockbox.Persistent
func (m *StdSignature) Marshal() ([]byte, error) {
	w := codec.NewWriter()
	w.Int64(1, m.Sequence)
	w.Bytes(2, m.Pubkey)
	w.Bytes(4, m.Signature)
	return w.Result()
}

// Unmarshal implements lockbox.Persistent
func (m *StdSignature) Unmarshal(raw []byte) error {
	*m = StdSignature{}
	return codec.Unmarshal(raw, func(f codec.Field) (err error) {
		switch f.Num {
		case 1:
			m.Sequence, err = f.Int64()
		case 2:
			m.Pubkey, err = f.Bytes()
		case 4:
			m.Signature, err = f.Bytes()
		}
		return err
	})
}
