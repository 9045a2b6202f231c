package escrow

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/orm"
)

// BucketName is where escrow records are stored, keyed by their address.
const BucketName = "escrow"

const (
	discriminatorLen = 8

	// RecordSize is the length of a serialized escrow record, including
	// the discriminator.
	RecordSize = discriminatorLen + 2*lockbox.AddressLength + 8 + 1 + 8 + 8
)

// Discriminator prefixes every serialized record so that bytes of any
// other account type are never read as an escrow.
var Discriminator = discriminator("account:Escrow")

func discriminator(name string) []byte {
	h := sha256.Sum256([]byte(name))
	return h[:discriminatorLen]
}

// Escrow is a single active escrow. Once created, none of its fields
// change until the record is deleted.
type Escrow struct {
	Depositor lockbox.Address `json:"depositor"`
	Recipient lockbox.Address `json:"recipient"`
	// Amount is the principal only. The reservation deposit kept in the
	// custody account is not included.
	Amount    uint64           `json:"amount"`
	Salt      uint8            `json:"salt"`
	EscrowID  uint64           `json:"escrow_id"`
	CreatedAt lockbox.UnixTime `json:"created_at"`
}

var _ orm.Model = (*Escrow)(nil)

// Marshal writes the fixed size little endian layout.
func (e *Escrow) Marshal() ([]byte, error) {
	if len(e.Depositor) != lockbox.AddressLength || len(e.Recipient) != lockbox.AddressLength {
		return nil, errors.Wrap(errors.ErrInput, "addresses must be set before serialization")
	}
	raw := make([]byte, 0, RecordSize)
	raw = append(raw, Discriminator...)
	raw = append(raw, e.Depositor...)
	raw = append(raw, e.Recipient...)
	raw = appendUint64(raw, e.Amount)
	raw = append(raw, e.Salt)
	raw = appendUint64(raw, e.EscrowID)
	raw = appendUint64(raw, uint64(e.CreatedAt))
	return raw, nil
}

// Unmarshal rejects anything that is not exactly one serialized record.
func (e *Escrow) Unmarshal(raw []byte) error {
	if len(raw) != RecordSize {
		return errors.Wrapf(errors.ErrInput, "record size %d, want %d", len(raw), RecordSize)
	}
	if !lockbox.Address(raw[:discriminatorLen]).Equals(Discriminator) {
		return errors.Wrapf(errors.ErrType, "discriminator %X", raw[:discriminatorLen])
	}
	rest := raw[discriminatorLen:]
	e.Depositor = lockbox.Address(rest[:lockbox.AddressLength]).Clone()
	rest = rest[lockbox.AddressLength:]
	e.Recipient = lockbox.Address(rest[:lockbox.AddressLength]).Clone()
	rest = rest[lockbox.AddressLength:]
	e.Amount = binary.LittleEndian.Uint64(rest)
	e.Salt = rest[8]
	e.EscrowID = binary.LittleEndian.Uint64(rest[9:])
	e.CreatedAt = lockbox.UnixTime(binary.LittleEndian.Uint64(rest[17:]))
	return nil
}

func appendUint64(b []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(b, buf[:]...)
}

// Validate checks the record content. It does not check the relation to
// the address it is stored under.
func (e *Escrow) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Depositor", e.Depositor.Validate())
	errs = errors.AppendField(errs, "Recipient", e.Recipient.Validate())
	if e.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", ErrInvalidAmount)
	}
	if e.CreatedAt < 0 {
		errs = errors.AppendField(errs, "CreatedAt", errors.Wrap(errors.ErrInput, "negative"))
	}
	return errs
}

// Address recomputes the custody address from the stored seeds.
func (e *Escrow) Address() (lockbox.Address, error) {
	return CreateDerivedAddress(e.Depositor, e.EscrowID, e.Salt)
}

// Bucket is a type-safe wrapper around orm.ModelBucket
type Bucket struct {
	orm.ModelBucket
}

// NewBucket initializes an escrow.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Escrow{}),
	}
}

// All returns every stored record together with its address, in ascending
// address order.
func (b Bucket) All(db lockbox.ReadOnlyKVStore) ([]lockbox.Address, []*Escrow, error) {
	var (
		keys []lockbox.Address
		recs []*Escrow
		e    Escrow
	)
	err := b.Each(db, &e, func(key []byte) error {
		cpy := e
		keys = append(keys, lockbox.Address(key).Clone())
		recs = append(recs, &cpy)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return keys, recs, nil
}
