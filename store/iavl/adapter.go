package iavl

import (
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// nodeCache is the number of tree nodes kept in memory.
const nodeCache = 10000

// CommitStore keeps the application state in a versioned merkle tree.
// Writes land in the working tree and become a version on Commit.
type CommitStore struct {
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore opens the leveldb database name in dir.
func NewCommitStore(dir, name string) (CommitStore, error) {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return CommitStore{}, errors.Wrapf(errors.ErrState, "open %s in %s: %s", name, dir, err)
	}
	return CommitStore{tree: iavl.NewMutableTree(db, nodeCache)}, nil
}

// MemCommitStore returns a CommitStore that lives in memory.
func MemCommitStore() CommitStore {
	return CommitStore{tree: iavl.NewMutableTree(dbm.NewMemDB(), nodeCache)}
}

// Get reads the last saved version.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	_, v := s.tree.GetVersioned(key, s.tree.Version())
	return v, nil
}

func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrState, err.Error())
	}
	return store.CommitID{Version: version, Hash: hash}, nil
}

func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrState, err.Error())
	}
	return nil
}

func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{Version: s.tree.Version(), Hash: s.tree.Hash()}, nil
}

// CacheWrap stages writes for the working tree.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return store.NewCache(s.Working())
}

// Working exposes the working tree. Its writes are part of the next
// version.
func (s CommitStore) Working() store.CacheableKVStore {
	return working{tree: s.tree}
}

type working struct {
	tree *iavl.MutableTree
}

func (w working) Get(key []byte) ([]byte, error) {
	_, v := w.tree.Get(key)
	return v, nil
}

func (w working) Has(key []byte) (bool, error) {
	return w.tree.Has(key), nil
}

func (w working) Set(key, value []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrInput, "nil key")
	}
	w.tree.Set(key, value)
	return nil
}

func (w working) Delete(key []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrInput, "nil key")
	}
	w.tree.Remove(key)
	return nil
}

// Iterator loads the range up front, so writes during the iteration are
// safe.
func (w working) Iterator(start, end []byte) (store.Iterator, error) {
	var models []store.Model
	w.tree.IterateRange(start, end, true, func(k, v []byte) bool {
		models = append(models, store.Model{Key: k, Value: v})
		return false
	})
	return store.NewSliceIterator(models), nil
}

func (w working) CacheWrap() store.KVCacheWrap {
	return store.NewCache(w)
}
