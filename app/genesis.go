package app

import (
	"github.com/iov-one/lockbox"
)

// ChainInitializers runs every initializer on the genesis in order and
// stops at the first failure.
func ChainInitializers(inits ...lockbox.Initializer) lockbox.Initializer {
	return initializers(inits)
}

type initializers []lockbox.Initializer

func (all initializers) FromGenesis(opts lockbox.Options, db lockbox.KVStore) error {
	for _, init := range all {
		if err := init.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
