package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lockbox/codec"
	amino "github.com/tendermint/go-amino"
)

// cdc serializes the configuration of this package. The escrow record
// has its own fixed layout, messages use the protobuf schema in
// codec.proto.
var cdc = amino.NewCodec()

func init() {
	proto.RegisterType((*InitializeMsg)(nil), "escrow.InitializeMsg")
	proto.RegisterType((*ClaimMsg)(nil), "escrow.ClaimMsg")
	proto.RegisterType((*CancelMsg)(nil), "escrow.CancelMsg")
}

func (m *InitializeMsg) Reset()         { *m = InitializeMsg{} }
func (m *InitializeMsg) String() string { return proto.CompactTextString(m) }
func (*InitializeMsg) ProtoMessage()    {}

// Marshal implements lockbox.Persistent
func (m *InitializeMsg) Marshal() ([]byte, error) {
	w := codec.NewWriter()
	w.Bytes(1, m.Depositor)
	w.Bytes(2, m.Recipient)
	w.Uint64(3, m.Amount)
	w.Uint64(4, m.EscrowID)
	w.Bytes(5, m.Escrow)
	return w.Result()
}

// Unmarshal implements lockbox.Persistent
func (m *InitializeMsg) Unmarshal(raw []byte) error {
	*m = InitializeMsg{}
	return codec.Unmarshal(raw, func(f codec.Field) (err error) {
		switch f.Num {
		case 1:
			m.Depositor, err = f.Bytes()
		case 2:
			m.Recipient, err = f.Bytes()
		case 3:
			m.Amount, err = f.Uint64()
		case 4:
			m.EscrowID, err = f.Uint64()
		case 5:
			m.Escrow, err = f.Bytes()
		}
		return err
	})
}

func (m *ClaimMsg) Reset()         { *m = ClaimMsg{} }
func (m *ClaimMsg) String() string { return proto.CompactTextString(m) }
func (*ClaimMsg) ProtoMessage()    {}

// Marshal implements lockbox.Persistent
func (m *ClaimMsg) Marshal() ([]byte, error) {
	w := codec.NewWriter()
	w.Bytes(1, m.Recipient)
	w.Bytes(2, m.Depositor)
	w.Bytes(3, m.Escrow)
	return w.Result()
}

// Unmarshal implements lockbox.Persistent
func (m *ClaimMsg) Unmarshal(raw []byte) error {
	*m = ClaimMsg{}
	return codec.Unmarshal(raw, func(f codec.Field) (err error) {
		switch f.Num {
		case 1:
			m.Recipient, err = f.Bytes()
		case 2:
			m.Depositor, err = f.Bytes()
		case 3:
			m.Escrow, err = f.Bytes()
		}
		return err
	})
}

func (m *CancelMsg) Reset()         { *m = CancelMsg{} }
func (m *CancelMsg) String() string { return proto.CompactTextString(m) }
func (*CancelMsg) ProtoMessage()    {}

// Marshal implements lockbox.Persistent
func (m *CancelMsg) Marshal() ([]byte, error) {
	w := codec.NewWriter()
	w.Bytes(1, m.Depositor)
	w.Bytes(2, m.Escrow)
	return w.Result()
}

// Unmarshal implements lockbox.Persistent
func (m *CancelMsg) Unmarshal(raw []byte) error {
	*m = CancelMsg{}
	return codec.Unmarshal(raw, func(f codec.Field) (err error) {
		switch f.Num {
		case 1:
			m.Depositor, err = f.Bytes()
		case 2:
			m.Escrow, err = f.Bytes()
		}
		return err
	})
}
