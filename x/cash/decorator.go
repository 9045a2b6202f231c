package cash

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/x"
)

// FeeDecorator ensures that the fee can be deducted from the account. All
// deducted fees are send to the collector, configured via gconf together
// with the minimal fee. If minimal fee is zero, no fees are required.
//
// It uses auth to verify the payer.
type FeeDecorator struct {
	auth x.Authenticator
	ctrl CoinMover
}

var _ lockbox.Decorator = FeeDecorator{}

// NewFeeDecorator returns a FeeDecorator moving fees with given
// controller.
func NewFeeDecorator(auth x.Authenticator, ctrl CoinMover) FeeDecorator {
	return FeeDecorator{
		auth: auth,
		ctrl: ctrl,
	}
}

// Check verifies and deducts fees before calling down the stack
func (d FeeDecorator) Check(ctx lockbox.Context, store lockbox.KVStore, tx lockbox.Tx, next lockbox.Checker) (*lockbox.CheckResult, error) {
	if err := d.chargeFee(ctx, store, tx); err != nil {
		return nil, err
	}
	return next.Check(ctx, store, tx)
}

// Deliver verifies and deducts fees before calling down the stack
func (d FeeDecorator) Deliver(ctx lockbox.Context, store lockbox.KVStore, tx lockbox.Tx, next lockbox.Deliverer) (*lockbox.DeliverResult, error) {
	if err := d.chargeFee(ctx, store, tx); err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d FeeDecorator) chargeFee(ctx lockbox.Context, store lockbox.KVStore, tx lockbox.Tx) error {
	conf, err := LoadConfiguration(store)
	if err != nil {
		return err
	}

	var finfo *FeeInfo
	if ftx, ok := tx.(FeeTx); ok {
		finfo = ftx.GetFees().DefaultPayer(x.MainSigner(ctx, d.auth))
	}

	if finfo.IsEmpty() {
		if conf.MinimalFee == 0 {
			return nil
		}
		return errors.Wrapf(errors.ErrAmount, "fee required, minimal %d", conf.MinimalFee)
	}
	if err := finfo.Validate(); err != nil {
		return err
	}
	if finfo.Amount < conf.MinimalFee {
		return errors.Wrapf(errors.ErrAmount, "fee %d below minimal %d", finfo.Amount, conf.MinimalFee)
	}
	if !d.auth.HasAddress(ctx, finfo.Payer) {
		return errors.Wrap(errors.ErrUnauthorized, "fee payer signature missing")
	}
	if err := d.ctrl.MoveCoins(store, finfo.Payer, conf.CollectorAddress, finfo.Amount); err != nil {
		return errors.Wrap(err, "cannot pay fee")
	}
	lockbox.GetLogger(ctx).Debug("fee charged", "payer", finfo.Payer, "amount", finfo.Amount)
	return nil
}
