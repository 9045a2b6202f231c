package escrow

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
)

const (
	pathInitializeMsg = "escrow/initialize"
	pathClaimMsg      = "escrow/claim"
	pathCancelMsg     = "escrow/cancel"

	initializeCost int64 = 300
	claimCost      int64 = 200
	cancelCost     int64 = 200
)

var _ lockbox.Msg = (*InitializeMsg)(nil)
var _ lockbox.Msg = (*ClaimMsg)(nil)
var _ lockbox.Msg = (*CancelMsg)(nil)

// InitializeMsg locks Amount for Recipient. The depositor must sign it.
type InitializeMsg struct {
	Depositor lockbox.Address `protobuf:"bytes,1,opt,name=depositor,proto3,casttype=github.com/iov-one/lockbox.Address" json:"depositor"`
	Recipient lockbox.Address `protobuf:"bytes,2,opt,name=recipient,proto3,casttype=github.com/iov-one/lockbox.Address" json:"recipient"`
	Amount    uint64          `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
	EscrowID  uint64          `protobuf:"varint,4,opt,name=escrow_id,json=escrowId,proto3" json:"escrow_id"`
	// Escrow is optional. When set, it must be the address derived from
	// the depositor and the escrow ID.
	Escrow lockbox.Address `protobuf:"bytes,5,opt,name=escrow,proto3,casttype=github.com/iov-one/lockbox.Address" json:"escrow,omitempty"`
}

// Path returns the routing path for this message
func (InitializeMsg) Path() string {
	return pathInitializeMsg
}

// Validate makes sure that this is sensible
func (m *InitializeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Depositor", m.Depositor.Validate())
	errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", ErrInvalidAmount)
	}
	if len(m.Escrow) != 0 {
		errs = errors.AppendField(errs, "Escrow", m.Escrow.Validate())
	}
	return errs
}

// ClaimMsg releases an escrow to its recipient, who must sign it.
type ClaimMsg struct {
	Recipient lockbox.Address `protobuf:"bytes,1,opt,name=recipient,proto3,casttype=github.com/iov-one/lockbox.Address" json:"recipient"`
	Depositor lockbox.Address `protobuf:"bytes,2,opt,name=depositor,proto3,casttype=github.com/iov-one/lockbox.Address" json:"depositor"`
	Escrow    lockbox.Address `protobuf:"bytes,3,opt,name=escrow,proto3,casttype=github.com/iov-one/lockbox.Address" json:"escrow"`
}

// Path returns the routing path for this message
func (ClaimMsg) Path() string {
	return pathClaimMsg
}

// Validate makes sure that this is sensible
func (m *ClaimMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	errs = errors.AppendField(errs, "Depositor", m.Depositor.Validate())
	errs = errors.AppendField(errs, "Escrow", m.Escrow.Validate())
	return errs
}

// CancelMsg returns an escrow to its depositor, who must sign it.
type CancelMsg struct {
	Depositor lockbox.Address `protobuf:"bytes,1,opt,name=depositor,proto3,casttype=github.com/iov-one/lockbox.Address" json:"depositor"`
	Escrow    lockbox.Address `protobuf:"bytes,2,opt,name=escrow,proto3,casttype=github.com/iov-one/lockbox.Address" json:"escrow"`
}

// Path returns the routing path for this message
func (CancelMsg) Path() string {
	return pathCancelMsg
}

// Validate makes sure that this is sensible
func (m *CancelMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Depositor", m.Depositor.Validate())
	errs = errors.AppendField(errs, "Escrow", m.Escrow.Validate())
	return errs
}
