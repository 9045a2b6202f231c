package escrow

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/gconf"
)

const confPkg = "escrow"

const (
	// DefaultStorageOverhead is the fixed per account cost, in bytes,
	// added to the record size when computing the reservation.
	DefaultStorageOverhead = 128
	// DefaultReservationPerByte is the price of one stored byte.
	DefaultReservationPerByte = 6960
)

// Configuration prices the storage an escrow record occupies. The
// reservation is collected on Initialize and returned to the depositor
// when the escrow closes.
type Configuration struct {
	StorageOverhead    uint64 `json:"storage_overhead"`
	ReservationPerByte uint64 `json:"reservation_per_byte"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// DefaultConfiguration is used when the genesis does not declare one.
func DefaultConfiguration() Configuration {
	return Configuration{
		StorageOverhead:    DefaultStorageOverhead,
		ReservationPerByte: DefaultReservationPerByte,
	}
}

// Marshal implements lockbox.Persistent
func (c *Configuration) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

// Unmarshal implements lockbox.Persistent
func (c *Configuration) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

// Validate rejects a configuration whose reservation overflows.
func (c *Configuration) Validate() error {
	if _, err := c.Reservation(); err != nil {
		return errors.Field("ReservationPerByte", err, "reservation")
	}
	return nil
}

// Reservation returns the deposit required for a single record.
func (c *Configuration) Reservation() (uint64, error) {
	size := c.StorageOverhead + RecordSize
	if size < c.StorageOverhead {
		return 0, errors.Wrap(errors.ErrOverflow, "storage size")
	}
	if c.ReservationPerByte != 0 && size > ^uint64(0)/c.ReservationPerByte {
		return 0, errors.Wrap(errors.ErrOverflow, "reservation")
	}
	return size * c.ReservationPerByte, nil
}

// LoadConfiguration reads the escrow configuration from the store, falling
// back to the defaults when none was saved.
func LoadConfiguration(db lockbox.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, confPkg, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		conf = DefaultConfiguration()
		return &conf, nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}
