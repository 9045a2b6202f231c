package store

import (
	"testing"

	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/weavetest/assert"
)

func TestCacheConformance(t *testing.T) {
	Conformance(t, func() (CacheableKVStore, func()) {
		// MemStore drops what is written into it, so test the layer above.
		return MemStore().CacheWrap(), func() {}
	})
}

func TestCacheRejectsNilKey(t *testing.T) {
	db := MemStore()
	assert.IsErr(t, errors.ErrInput, db.Set(nil, []byte("x")))
	assert.IsErr(t, errors.ErrInput, db.Delete(nil))
}

func TestCacheIteratorIsSnapshot(t *testing.T) {
	db := MemStore()
	assert.Nil(t, db.Set([]byte("a"), []byte("1")))
	assert.Nil(t, db.Set([]byte("b"), []byte("2")))

	it, err := db.Iterator(nil, nil)
	assert.Nil(t, err)
	defer it.Close()

	// Removing keys while iterating does not disturb the cursor.
	var keys []string
	for ; it.Valid(); it.Next() {
		keys = append(keys, string(it.Key()))
		assert.Nil(t, db.Delete(it.Key()))
	}
	assert.Equal(t, []string{"a", "b"}, keys)

	has, err := db.Has([]byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)
}

func TestCacheWriteIsReusable(t *testing.T) {
	base := MemStore()
	cache := base.CacheWrap()
	assert.Nil(t, cache.Set([]byte("a"), []byte("1")))
	assert.Nil(t, cache.Write())

	// The cache is empty again and keeps working on top of base.
	assert.Nil(t, cache.Set([]byte("b"), []byte("2")))
	cache.Discard()

	v, err := base.Get([]byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("1"), v)
	v, err = base.Get([]byte("b"))
	assert.Nil(t, err)
	assert.Nil(t, v)
}

func TestSliceIteratorPanicsWhenExhausted(t *testing.T) {
	it := NewSliceIterator([]Model{{Key: []byte("k"), Value: []byte("v")}})
	it.Next()
	assert.Panics(t, func() { it.Key() })
}
