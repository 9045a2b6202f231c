package cash

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/x"
)

// RegisterRoutes routes SendMsg to a SendHandler.
func RegisterRoutes(r lockbox.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
}

// RegisterQuery serves the wallets under "/wallets".
func RegisterQuery(qr lockbox.QueryRouter) {
	NewBucket().Register("wallets", qr)
}

// SendHandler transfers coins between two accounts. The source account
// must have signed.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ lockbox.Handler = SendHandler{}

func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{auth: auth, control: control}
}

// Check does not look at balances, a transfer is only known to succeed
// once delivered.
func (h SendHandler) Check(ctx lockbox.Context, _ lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	if _, err := h.authorized(ctx, tx); err != nil {
		return nil, err
	}
	return &lockbox.CheckResult{GasAllocated: sendTxCost}, nil
}

func (h SendHandler) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	msg, err := h.authorized(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &lockbox.DeliverResult{}, nil
}

// authorized loads the message and requires the signature of its source.
func (h SendHandler) authorized(ctx lockbox.Context, tx lockbox.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := lockbox.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s did not sign", msg.Source)
	}
	return &msg, nil
}
