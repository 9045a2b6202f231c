package escrow

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/x"
	"github.com/iov-one/lockbox/x/cash"
	"github.com/tendermint/tendermint/libs/common"
)

// TagKey is the tag attached to every delivered escrow transaction. Its
// value is the escrow address.
const TagKey = "escrow"

// RegisterRoutes routes the three escrow messages. All handlers share
// one bucket and move coins through cashctrl.
func RegisterRoutes(r lockbox.Registry, auth x.Authenticator, cashctrl cash.Controller) {
	bucket := NewBucket()
	r.Handle(&InitializeMsg{}, InitializeHandler{auth: auth, bucket: bucket, bank: cashctrl})
	r.Handle(&ClaimMsg{}, ClaimHandler{auth: auth, bucket: bucket, bank: cashctrl})
	r.Handle(&CancelMsg{}, CancelHandler{auth: auth, bucket: bucket, bank: cashctrl})
}

// RegisterQuery serves the escrow records under "/escrows".
func RegisterQuery(qr lockbox.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

func addressTag(addr lockbox.Address) []common.KVPair {
	return []common.KVPair{{Key: []byte(TagKey), Value: []byte(addr.String())}}
}

// InitializeHandler creates escrows.
type InitializeHandler struct {
	auth   x.Authenticator
	bucket Bucket
	bank   cash.CoinMover
}

var _ lockbox.Handler = InitializeHandler{}

// Check runs every test of Deliver except the balance check.
func (h InitializeHandler) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &lockbox.CheckResult{GasAllocated: initializeCost}, nil
}

// Deliver moves the principal and the reservation deposit from the
// depositor into the custody account and stores the record.
func (h InitializeHandler) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	msg, addr, salt, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := lockbox.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, err
	}
	reservation, err := conf.Reservation()
	if err != nil {
		return nil, err
	}
	total := msg.Amount + reservation
	if total < msg.Amount {
		return nil, errors.Wrapf(errors.ErrOverflow, "%d + %d", msg.Amount, reservation)
	}

	if err := h.bank.MoveCoins(db, msg.Depositor, addr, total); err != nil {
		if errors.ErrInsufficientAmount.Is(err) {
			return nil, errors.Wrapf(ErrInsufficientFunds, "need %d including reservation", total)
		}
		return nil, errors.Wrap(err, "deposit")
	}

	escrow := &Escrow{
		Depositor: msg.Depositor,
		Recipient: msg.Recipient,
		Amount:    msg.Amount,
		Salt:      salt,
		EscrowID:  msg.EscrowID,
		CreatedAt: lockbox.AsUnixTime(now),
	}
	if err := h.bucket.Create(db, addr, escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	return &lockbox.DeliverResult{Data: addr, Tags: addressTag(addr)}, nil
}

// validate derives the escrow address and requires it to be unused.
func (h InitializeHandler) validate(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*InitializeMsg, lockbox.Address, uint8, error) {
	var msg InitializeMsg
	if err := lockbox.LoadMsg(tx, &msg); err != nil {
		return nil, nil, 0, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Depositor) {
		return nil, nil, 0, errors.Wrap(errors.ErrUnauthorized, "depositor signature missing")
	}
	addr, salt, err := DeriveAddress(msg.Depositor, msg.EscrowID)
	if err != nil {
		return nil, nil, 0, err
	}
	if len(msg.Escrow) != 0 && !msg.Escrow.Equals(addr) {
		return nil, nil, 0, errors.Wrapf(ErrSeedsMismatch, "seeds derive %s", addr)
	}
	switch err := h.bucket.Has(db, addr); {
	case err == nil:
		return nil, nil, 0, errors.Wrapf(ErrDuplicateEscrow, "escrow %s", addr)
	case !errors.ErrNotFound.Is(err):
		return nil, nil, 0, err
	}
	return &msg, addr, salt, nil
}

// ClaimHandler releases escrows to their recipients.
type ClaimHandler struct {
	auth   x.Authenticator
	bucket Bucket
	bank   cash.Controller
}

var _ lockbox.Handler = ClaimHandler{}

// Check confirms the escrow exists and the signer may claim it.
func (h ClaimHandler) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &lockbox.CheckResult{GasAllocated: claimCost}, nil
}

// Deliver pays the principal to the recipient, returns whatever else the
// custody account holds to the depositor and deletes the record.
func (h ClaimHandler) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	msg, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bank.MoveCoins(db, msg.Escrow, escrow.Recipient, escrow.Amount); err != nil {
		return nil, errors.Wrap(err, "release")
	}
	if err := closeEscrow(db, h.bank, h.bucket, msg.Escrow, escrow); err != nil {
		return nil, err
	}
	return &lockbox.DeliverResult{Tags: addressTag(msg.Escrow)}, nil
}

// validate loads the escrow named by the message and checks that the
// signer is its recipient.
func (h ClaimHandler) validate(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*ClaimMsg, *Escrow, error) {
	var msg ClaimMsg
	if err := lockbox.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	escrow, err := loadEscrow(db, h.bucket, msg.Escrow)
	if err != nil {
		return nil, nil, err
	}
	if err := checkDepositorSeed(escrow, msg.Depositor); err != nil {
		return nil, nil, err
	}
	if err := checkRelationship(escrow, msg.Escrow); err != nil {
		return nil, nil, err
	}
	if err := checkClaimer(ctx, h.auth, escrow, msg.Recipient); err != nil {
		return nil, nil, err
	}
	return &msg, escrow, nil
}

// CancelHandler returns escrows to their depositors.
type CancelHandler struct {
	auth   x.Authenticator
	bucket Bucket
	bank   cash.Controller
}

var _ lockbox.Handler = CancelHandler{}

// Check confirms the escrow exists and the signer may cancel it.
func (h CancelHandler) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &lockbox.CheckResult{GasAllocated: cancelCost}, nil
}

// Deliver returns the whole custody balance to the depositor and deletes
// the record.
func (h CancelHandler) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	msg, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := closeEscrow(db, h.bank, h.bucket, msg.Escrow, escrow); err != nil {
		return nil, err
	}
	return &lockbox.DeliverResult{Tags: addressTag(msg.Escrow)}, nil
}

// validate loads the escrow named by the message and checks that the
// signer is its depositor.
func (h CancelHandler) validate(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*CancelMsg, *Escrow, error) {
	var msg CancelMsg
	if err := lockbox.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	escrow, err := loadEscrow(db, h.bucket, msg.Escrow)
	if err != nil {
		return nil, nil, err
	}
	if err := checkRelationship(escrow, msg.Escrow); err != nil {
		return nil, nil, err
	}
	if err := checkCanceller(ctx, h.auth, escrow, msg.Depositor); err != nil {
		return nil, nil, err
	}
	return &msg, escrow, nil
}

// closeEscrow moves everything left in the custody account to the
// depositor and deletes the record. Value sent to the custody address by
// third parties is returned to the depositor as well.
func closeEscrow(db lockbox.KVStore, bank cash.Controller, bucket Bucket, addr lockbox.Address, escrow *Escrow) error {
	remaining, err := bank.Balance(db, addr)
	if err != nil {
		return err
	}
	if remaining > 0 {
		if err := bank.MoveCoins(db, addr, escrow.Depositor, remaining); err != nil {
			return errors.Wrap(err, "refund")
		}
	}
	if err := bucket.Delete(db, addr); err != nil {
		return errors.Wrap(err, "cannot delete escrow")
	}
	return nil
}
