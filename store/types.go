package store

import "github.com/iov-one/lockbox"

// Aliases so that store users need a single import.
type (
	ReadOnlyKVStore  = lockbox.ReadOnlyKVStore
	KVStore          = lockbox.KVStore
	Iterator         = lockbox.Iterator
	CacheableKVStore = lockbox.CacheableKVStore
	KVCacheWrap      = lockbox.KVCacheWrap
	CommitKVStore    = lockbox.CommitKVStore
	CommitID         = lockbox.CommitID
	Model            = lockbox.Model
)
