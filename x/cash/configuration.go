package cash

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/gconf"
)

const confPkg = "cash"

// Configuration is the global cash configuration, stored via gconf.
type Configuration struct {
	// CollectorAddress receives all collected fees.
	CollectorAddress lockbox.Address `json:"collector_address"`
	// MinimalFee is the lowest fee a transaction must pay. Zero means
	// fees are optional.
	MinimalFee uint64 `json:"minimal_fee"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// Marshal implements lockbox.Persistent
func (c *Configuration) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

// Unmarshal implements lockbox.Persistent
func (c *Configuration) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

// Validate requires a collector to be set.
func (c *Configuration) Validate() error {
	if len(c.CollectorAddress) == 0 {
		return errors.Field("CollectorAddress", errors.ErrEmpty, "collector address missing")
	}
	return errors.Field("CollectorAddress", c.CollectorAddress.Validate(), "collector address")
}

// LoadConfiguration reads the cash configuration from the store.
func LoadConfiguration(db lockbox.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
