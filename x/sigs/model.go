package sigs

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/crypto"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/orm"
)

// BucketName is the bucket of signer states, keyed by address.
const BucketName = "sigs"

// maxSequenceValue is the greatest nonce value a javascript client can
// represent exactly (Number.MAX_SAFE_INTEGER).
const maxSequenceValue = (1 << 53) - 1

// StdSignature carries one signature of a transaction together with the
// key that produced it and the signer sequence it was made for.
type StdSignature struct {
	Sequence  int64            `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence"`
	Pubkey    crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3,casttype=github.com/iov-one/lockbox/crypto.PublicKey" json:"pubkey"`
	Signature []byte           `protobuf:"bytes,4,opt,name=signature,proto3" json:"signature"`
}

// Validate checks the fields without verifying the signature.
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if len(s.Pubkey) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if err := s.Pubkey.Validate(); err != nil {
		return errors.Wrap(errors.ErrUnauthorized, err.Error())
	}
	if len(s.Signature) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

// UserData is the persistent replay protection state of a signer.
type UserData struct {
	Pubkey   crypto.PublicKey `protobuf:"bytes,1,opt,name=pubkey,proto3,casttype=github.com/iov-one/lockbox/crypto.PublicKey" json:"pubkey"`
	Sequence int64            `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence"`
}

var _ orm.Model = (*UserData)(nil)

// Validate checks the sequence range and that a used account knows its key.
func (u *UserData) Validate() error {
	var errs error
	if seq := u.Sequence; seq < 0 {
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	} else if seq > 0 && len(u.Pubkey) == 0 {
		errs = errors.Append(errs, errors.Field("Sequence", ErrInvalidSequence, "needs Pubkey"))
	}
	if len(u.Pubkey) != 0 {
		errs = errors.AppendField(errs, "Pubkey", u.Pubkey.Validate())
	}
	return errs
}

// CheckAndIncrementSequence consumes expected, which must be the current
// sequence.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "signed for %d, account is at %d", expected, u.Sequence)
	}
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// Bucket holds the UserData of every signer seen so far.
type Bucket struct {
	orm.ModelBucket
}

func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &UserData{}),
	}
}

// GetOrCreate loads the state of the signer owning pubkey, or returns a
// fresh state with a zero sequence if none was stored yet.
func (b Bucket) GetOrCreate(db lockbox.ReadOnlyKVStore, pubkey crypto.PublicKey) (*UserData, error) {
	var user UserData
	switch err := b.One(db, pubkey.Address(), &user); {
	case err == nil:
		return &user, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{Pubkey: pubkey}, nil
	default:
		return nil, err
	}
}
