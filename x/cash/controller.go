package cash

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
)

// Balancer is implemented by anything that can read balances.
type Balancer interface {
	Balance(lockbox.ReadOnlyKVStore, lockbox.Address) (uint64, error)
}

// CoinMover is implemented by anything that can move value between
// accounts.
type CoinMover interface {
	MoveCoins(db lockbox.KVStore, src, dest lockbox.Address, amount uint64) error
}

// CoinMinter is implemented by anything that can create value.
type CoinMinter interface {
	CoinMint(db lockbox.KVStore, dest lockbox.Address, amount uint64) error
}

// Controller is the functionality needed by other extensions to work
// with balances.
type Controller interface {
	Balancer
	CoinMover
	CoinMinter
}

// BaseController is a simple implementation of Controller backed by the
// cash bucket.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller using given bucket.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the balance of given address, zero if it holds no
// wallet.
func (c BaseController) Balance(db lockbox.ReadOnlyKVStore, addr lockbox.Address) (uint64, error) {
	w, err := c.bucket.GetOrEmpty(db, addr)
	if err != nil {
		return 0, err
	}
	return w.Balance, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't have sufficient coins, it fails.
func (c BaseController) MoveCoins(db lockbox.KVStore, src, dest lockbox.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero value")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.bucket.GetOrEmpty(db, src)
	if err != nil {
		return errors.Wrap(err, "load source")
	}
	if err := sender.Subtract(amount); err != nil {
		return err
	}
	if src.Equals(dest) {
		return nil
	}
	recipient, err := c.bucket.GetOrEmpty(db, dest)
	if err != nil {
		return errors.Wrap(err, "load destination")
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}

	if err := c.bucket.Save(db, src, sender); err != nil {
		return errors.Wrap(err, "save source")
	}
	if err := c.bucket.Save(db, dest, recipient); err != nil {
		return errors.Wrap(err, "save destination")
	}
	return nil
}

// CoinMint adds the given amount to the destination address. Fails if it
// overflows the wallet.
func (c BaseController) CoinMint(db lockbox.KVStore, dest lockbox.Address, amount uint64) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	w, err := c.bucket.GetOrEmpty(db, dest)
	if err != nil {
		return err
	}
	if err := w.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, dest, w)
}
