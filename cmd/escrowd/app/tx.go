package app

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/codec"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/x/cash"
	"github.com/iov-one/lockbox/x/escrow"
	"github.com/iov-one/lockbox/x/sigs"
)

// Field numbers of the Tx message, see codec.proto. Messages share the
// sum oneof, so a transaction carries exactly one of them.
const (
	fieldFee        = 1
	fieldSignatures = 2

	fieldSendMsg       = 51
	fieldInitializeMsg = 52
	fieldClaimMsg      = 53
	fieldCancelMsg     = 54
)

// Tx is the transaction format of the escrow chain.
type Tx struct {
	Msg        lockbox.Msg          `json:"msg"`
	Fee        *cash.FeeInfo        `json:"fee,omitempty"`
	Signatures []*sigs.StdSignature `json:"signatures,omitempty"`
}

// make sure tx fulfills all interfaces
var _ lockbox.Tx = (*Tx)(nil)
var _ cash.FeeTx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (lockbox.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// msgField returns the sum field number of a routed message.
func msgField(msg lockbox.Msg) (int, codec.Message, error) {
	switch m := msg.(type) {
	case *cash.SendMsg:
		return fieldSendMsg, m, nil
	case *escrow.InitializeMsg:
		return fieldInitializeMsg, m, nil
	case *escrow.ClaimMsg:
		return fieldClaimMsg, m, nil
	case *escrow.CancelMsg:
		return fieldCancelMsg, m, nil
	default:
		return 0, nil, errors.Wrapf(errors.ErrMsg, "unsupported message %T", msg)
	}
}

// Marshal implements lockbox.Persistent
func (tx *Tx) Marshal() ([]byte, error) {
	w := codec.NewWriter()
	if tx.Fee != nil {
		w.Message(fieldFee, tx.Fee)
	}
	for _, sig := range tx.Signatures {
		w.Message(fieldSignatures, sig)
	}
	if tx.Msg != nil {
		field, msg, err := msgField(tx.Msg)
		if err != nil {
			return nil, err
		}
		w.Message(field, msg)
	}
	bz, err := w.Result()
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return bz, nil
}

// Unmarshal implements lockbox.Persistent
func (tx *Tx) Unmarshal(bz []byte) error {
	*tx = Tx{}
	err := codec.Unmarshal(bz, func(f codec.Field) error {
		var msg interface {
			lockbox.Msg
			codec.Message
		}
		switch f.Num {
		case fieldFee:
			tx.Fee = new(cash.FeeInfo)
			return f.Message(tx.Fee)
		case fieldSignatures:
			var sig sigs.StdSignature
			if err := f.Message(&sig); err != nil {
				return err
			}
			tx.Signatures = append(tx.Signatures, &sig)
			return nil
		case fieldSendMsg:
			msg = new(cash.SendMsg)
		case fieldInitializeMsg:
			msg = new(escrow.InitializeMsg)
		case fieldClaimMsg:
			msg = new(escrow.ClaimMsg)
		case fieldCancelMsg:
			msg = new(escrow.CancelMsg)
		default:
			return nil
		}
		if tx.Msg != nil {
			return errors.Wrap(errors.ErrMsg, "more than one message")
		}
		tx.Msg = msg
		return f.Message(msg)
	})
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// GetMsg returns the carried message.
func (tx *Tx) GetMsg() (lockbox.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "missing msg")
	}
	return tx.Msg, nil
}

// GetFees returns the declared fee, if any.
func (tx *Tx) GetFees() *cash.FeeInfo {
	return tx.Fee
}

// GetSignatures returns all signatures attached to the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the encoded transaction without its signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	signed := Tx{Msg: tx.Msg, Fee: tx.Fee}
	return signed.Marshal()
}
