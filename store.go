package lockbox

// ReadOnlyKVStore answers point and range reads.
type ReadOnlyKVStore interface {
	// Get returns nil when the key is absent.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	// Iterator walks [start, end) in ascending key order. A nil bound
	// leaves that side of the range open. The store must not be written
	// while the iterator is open.
	Iterator(start, end []byte) (Iterator, error)
}

// KVStore is the state every handler and decorator works on.
type KVStore interface {
	ReadOnlyKVStore
	Set(key, value []byte) error
	Delete(key []byte) error
}

// Iterator is a cursor over a key range:
//
//	it, err := db.Iterator(start, end)
//	...
//	defer it.Close()
//	for ; it.Valid(); it.Next() {
//		use(it.Key(), it.Value())
//	}
//
// Next, Key and Value panic once Valid returns false.
type Iterator interface {
	Valid() bool
	Next()
	Key() []byte
	Value() []byte
	Close()
}

// CacheableKVStore can stage writes in a cache layer, so that a failed
// transaction leaves no trace.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap holds writes on top of its parent. Reads see the staged
// writes. Write flushes them into the parent and Discard drops them; the
// cache is empty and reusable afterwards in both cases.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the persistent root of the application state.
type CommitKVStore interface {
	// Get reads the last committed version, ignoring pending writes.
	Get(key []byte) ([]byte, error)
	// CacheWrap stages writes for the next version.
	CacheWrap() KVCacheWrap
	// Commit saves the next version.
	Commit() (CommitID, error)
	// LoadLatestVersion restores the newest version found on disk.
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version by height and merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
