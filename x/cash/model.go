package cash

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet holds the native balance of a single address.
type Wallet struct {
	Balance uint64 `protobuf:"varint,1,opt,name=balance,proto3" json:"balance"`
}

var _ orm.Model = (*Wallet)(nil)

// Validate rejects empty wallets, they are removed instead of stored.
func (w *Wallet) Validate() error {
	if w.Balance == 0 {
		return errors.Wrap(errors.ErrEmpty, "balance")
	}
	return nil
}

// Add increases the balance, failing on overflow.
func (w *Wallet) Add(amount uint64) error {
	sum := w.Balance + amount
	if sum < w.Balance {
		return errors.Wrapf(errors.ErrOverflow, "%d + %d", w.Balance, amount)
	}
	w.Balance = sum
	return nil
}

// Subtract decreases the balance, failing if the balance is too low.
func (w *Wallet) Subtract(amount uint64) error {
	if w.Balance < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, need %d", w.Balance, amount)
	}
	w.Balance -= amount
	return nil
}

// Bucket is a type-safe wrapper around orm.ModelBucket
type Bucket struct {
	orm.ModelBucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Wallet{}),
	}
}

// GetOrEmpty returns the wallet of given address, or an empty wallet if
// none is stored.
func (b Bucket) GetOrEmpty(db lockbox.ReadOnlyKVStore, addr lockbox.Address) (*Wallet, error) {
	var w Wallet
	switch err := b.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, err
	}
}

// Save stores the wallet, or removes it when the balance is zero.
func (b Bucket) Save(db lockbox.KVStore, addr lockbox.Address, w *Wallet) error {
	if w.Balance == 0 {
		err := b.Delete(db, addr)
		if errors.ErrNotFound.Is(err) {
			return nil
		}
		return err
	}
	return b.Put(db, addr, w)
}
