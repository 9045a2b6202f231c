/*
Package sigs authenticates transactions. Every signature covers the
transaction, the chain id and a per signer sequence, which is stored in
the "sigs" bucket and protects against replays.
*/
package sigs

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
)

// signatureVerifyCost is the gas charged in CheckTx for every signature.
const signatureVerifyCost = 500

// RegisterQuery exposes the signer states under "/auth".
func RegisterQuery(qr lockbox.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator verifies the signatures of a SignedTx and hands the signers
// to the rest of the stack through the context. A SignedTx without any
// signature is rejected. Other transactions pass untouched.
type Decorator struct{}

var _ lockbox.Decorator = Decorator{}

func NewDecorator() Decorator {
	return Decorator{}
}

func (d Decorator) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx, next lockbox.Checker) (*lockbox.CheckResult, error) {
	signers, err := authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if signers == nil {
		return next.Check(ctx, db, tx)
	}
	res, err := next.Check(withSigners(ctx, signers), db, tx)
	if err != nil {
		return nil, err
	}
	res.GasAllocated += int64(len(signers)) * signatureVerifyCost
	return res, nil
}

func (d Decorator) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx, next lockbox.Deliverer) (*lockbox.DeliverResult, error) {
	signers, err := authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if signers == nil {
		return next.Deliver(ctx, db, tx)
	}
	return next.Deliver(withSigners(ctx, signers), db, tx)
}

// authenticate returns nil signers for a transaction that does not carry
// signatures at all.
func authenticate(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) ([]lockbox.Address, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return nil, nil
	}
	if len(stx.GetSignatures()) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	signers, err := verifyTx(db, stx, lockbox.GetChainID(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "cannot verify signatures")
	}
	return signers, nil
}
