package cash

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
)

// Ensure we implement the Msg interface
var _ lockbox.Msg = (*SendMsg)(nil)

const (
	pathSendMsg = "cash/send"

	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// SendMsg moves value between two accounts.
type SendMsg struct {
	Source      lockbox.Address `protobuf:"bytes,1,opt,name=source,proto3,casttype=github.com/iov-one/lockbox.Address" json:"source"`
	Destination lockbox.Address `protobuf:"bytes,2,opt,name=destination,proto3,casttype=github.com/iov-one/lockbox.Address" json:"destination"`
	Amount      uint64          `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
	Memo        string          `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	var errs error
	if s.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	errs = errors.AppendField(errs, "Source", s.Source.Validate())
	errs = errors.AppendField(errs, "Destination", s.Destination.Validate())
	if len(s.Memo) > maxMemoSize {
		errs = errors.AppendField(errs, "Memo", errors.Wrap(errors.ErrInput, "too long"))
	}
	return errs
}

// FeeTx exposes information about the fees that
// should be paid
type FeeTx interface {
	GetFees() *FeeInfo
}

// FeeInfo describes the fee attached to a transaction.
type FeeInfo struct {
	Payer  lockbox.Address `protobuf:"bytes,1,opt,name=payer,proto3,casttype=github.com/iov-one/lockbox.Address" json:"payer,omitempty"`
	Amount uint64          `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
}

// DefaultPayer makes sure there is a payer.
// If it was already set, returns f.
// If none was set, returns a new FeeInfo, with the
// New address set
func (f *FeeInfo) DefaultPayer(addr lockbox.Address) *FeeInfo {
	if f == nil {
		return nil
	}
	if len(f.Payer) != 0 {
		return f
	}
	return &FeeInfo{
		Payer:  addr,
		Amount: f.Amount,
	}
}

// IsEmpty returns true if no fee is declared.
func (f *FeeInfo) IsEmpty() bool {
	return f == nil || f.Amount == 0
}

// Validate makes sure that this is sensible.
func (f *FeeInfo) Validate() error {
	if f == nil {
		return errors.Wrap(errors.ErrInput, "nil fee info")
	}
	return errors.Field("Payer", f.Payer.Validate(), "payer")
}
