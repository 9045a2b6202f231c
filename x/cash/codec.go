package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lockbox/codec"
	amino "github.com/tendermint/go-amino"
)

// cdc serializes the configuration of this package. Models and messages
// use the protobuf schema in codec.proto.
var cdc = amino.NewCodec()

func init() {
	proto.RegisterType((*Wallet)(nil), "cash.Wallet")
	proto.RegisterType((*FeeInfo)(nil), "cash.FeeInfo")
	proto.RegisterType((*SendMsg)(nil), "cash.SendMsg")
}

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return proto.CompactTextString(m) }
func (*Wallet) ProtoMessage()    {}

// Marshal implements lockbox.Persistent
func (m *Wallet) Marshal() ([]byte, error) {
	w := codec.NewWriter()
	w.Uint64(1, m.Balance)
	return w.Result()
}

// Unmarshal implements lockbox.Persistent
func (m *Wallet) Unmarshal(raw []byte) error {
	*m = Wallet{}
	return codec.Unmarshal(raw, func(f codec.Field) (err error) {
		if f.Num == 1 {
			m.Balance, err = f.Uint64()
		}
		return err
	})
}

func (m *FeeInfo) Reset()         { *m = FeeInfo{} }
func (m *FeeInfo) String() string { return proto.CompactTextString(m) }
func (*FeeInfo) ProtoMessage()    {}

// Marshal implements lockbox.Persistent
func (m *FeeInfo) Marshal() ([]byte, error) {
	w := codec.NewWriter()
	w.Bytes(1, m.Payer)
	w.Uint64(2, m.Amount)
	return w.Result()
}

// Unmarshal implements lockbox.Persistent
func (m *FeeInfo) Unmarshal(raw []byte) error {
	*m = FeeInfo{}
	return codec.Unmarshal(raw, func(f codec.Field) (err error) {
		switch f.Num {
		case 1:
			m.Payer, err = f.Bytes()
		case 2:
			m.Amount, err = f.Uint64()
		}
		return err
	})
}

func (m *SendMsg) Reset()         { *m = SendMsg{} }
func (m *SendMsg) String() string { return proto.CompactTextString(m) }
func (*SendMsg) ProtoMessage()    {}

// Marshal implements lockbox.Persistent
func (m *SendMsg) Marshal() ([]byte, error) {
	w := codec.NewWriter()
	w.Bytes(1, m.Source)
	w.Bytes(2, m.Destination)
	w.Uint64(3, m.Amount)
	w.String(4, m.Memo)
	return w.Result()
}

// Unmarshal implements lockbox.Persistent
func (m *SendMsg) Unmarshal(raw []byte) error {
	*m = SendMsg{}
	return codec.Unmarshal(raw, func(f codec.Field) (err error) {
		switch f.Num {
		case 1:
			m.Source, err = f.Bytes()
		case 2:
			m.Destination, err = f.Bytes()
		case 3:
			m.Amount, err = f.Uint64()
		case 4:
			m.Memo, err = f.String()
		}
		return err
	})
}
