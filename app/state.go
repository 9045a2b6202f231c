package app

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
)

// state pairs the committed tree with the caches used by the ABCI calls.
// Writes done in DeliverTx become the next version on commit, while
// CheckTx writes are dropped at every commit.
type state struct {
	root    lockbox.CommitKVStore
	deliver lockbox.KVCacheWrap
	check   lockbox.KVCacheWrap
}

func loadState(root lockbox.CommitKVStore) (*state, error) {
	if err := root.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	return &state{
		root:    root,
		deliver: root.CacheWrap(),
		check:   root.CacheWrap(),
	}, nil
}

func (s *state) commit() (lockbox.CommitID, error) {
	if err := s.deliver.Write(); err != nil {
		return lockbox.CommitID{}, errors.Wrap(err, "flush deliver cache")
	}
	s.check.Discard()
	return s.root.Commit()
}

// chainIDKey is outside of every bucket prefix.
const chainIDKey = "_lb:chainID"

func loadChainID(db lockbox.ReadOnlyKVStore) (string, error) {
	raw, err := db.Get([]byte(chainIDKey))
	return string(raw), err
}

// saveChainID stores the chain id once. It can never change afterwards.
func saveChainID(db lockbox.KVStore, chainID string) error {
	if !lockbox.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	switch has, err := db.Has([]byte(chainIDKey)); {
	case err != nil:
		return errors.Wrap(err, "read chain id")
	case has:
		return errors.Wrap(errors.ErrImmutable, "chain id is set at genesis")
	}
	return db.Set([]byte(chainIDKey), []byte(chainID))
}
