package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/lockbox/errors"
)

// degree of the btree holding pending writes.
const degree = 8

// Cache stages writes over a parent store in a btree ordered by key.
// Only the last write to a key is kept, a removed key is a tombstone that
// hides the parent value.
type Cache struct {
	parent  KVStore
	pending *btree.BTree
}

var _ KVCacheWrap = (*Cache)(nil)

// NewCache returns an empty cache over parent.
func NewCache(parent KVStore) *Cache {
	return &Cache{parent: parent, pending: btree.New(degree)}
}

// MemStore returns a store kept in memory only.
func MemStore() CacheableKVStore {
	return NewCache(nothing{})
}

// write is one staged change. A nil value with gone set removes the key.
type write struct {
	key   []byte
	value []byte
	gone  bool
}

func (w *write) Less(than btree.Item) bool {
	return bytes.Compare(w.key, than.(*write).key) < 0
}

func (c *Cache) lookup(key []byte) *write {
	if it := c.pending.Get(&write{key: key}); it != nil {
		return it.(*write)
	}
	return nil
}

// Get prefers a staged write over the parent value.
func (c *Cache) Get(key []byte) ([]byte, error) {
	if w := c.lookup(key); w != nil {
		return w.value, nil
	}
	return c.parent.Get(key)
}

// Has prefers a staged write over the parent state.
func (c *Cache) Has(key []byte) (bool, error) {
	if w := c.lookup(key); w != nil {
		return !w.gone, nil
	}
	return c.parent.Has(key)
}

// Set stages a value for key.
func (c *Cache) Set(key, value []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrInput, "nil key")
	}
	if value == nil {
		value = []byte{}
	}
	c.pending.ReplaceOrInsert(&write{key: key, value: value})
	return nil
}

// Delete stages the removal of key.
func (c *Cache) Delete(key []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrInput, "nil key")
	}
	c.pending.ReplaceOrInsert(&write{key: key, gone: true})
	return nil
}

// inRange calls fn with the staged writes within [start, end) in key order.
func (c *Cache) inRange(start, end []byte, fn func(*write)) {
	visit := func(it btree.Item) bool {
		w := it.(*write)
		if end != nil && bytes.Compare(w.key, end) >= 0 {
			return false
		}
		fn(w)
		return true
	}
	if start == nil {
		c.pending.Ascend(visit)
		return
	}
	c.pending.AscendGreaterOrEqual(&write{key: start}, visit)
}

// Iterator merges the parent range with the staged writes. The result is
// a snapshot, so the cache may be written while it is open.
func (c *Cache) Iterator(start, end []byte) (Iterator, error) {
	var staged []*write
	c.inRange(start, end, func(w *write) { staged = append(staged, w) })

	it, err := c.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var (
		out []Model
		i   int
	)
	keep := func(w *write) {
		if !w.gone {
			out = append(out, Model{Key: w.key, Value: w.value})
		}
	}
	for ; it.Valid(); it.Next() {
		key := it.Key()
		for i < len(staged) && bytes.Compare(staged[i].key, key) < 0 {
			keep(staged[i])
			i++
		}
		if i < len(staged) && bytes.Equal(staged[i].key, key) {
			keep(staged[i])
			i++
			continue
		}
		out = append(out, Model{Key: key, Value: it.Value()})
	}
	for ; i < len(staged); i++ {
		keep(staged[i])
	}
	return NewSliceIterator(out), nil
}

// CacheWrap stacks another cache on top of this one.
func (c *Cache) CacheWrap() KVCacheWrap {
	return NewCache(c)
}

// Write applies the staged writes to the parent in key order and empties
// the cache. On error the cache keeps what was not applied yet.
func (c *Cache) Write() error {
	for c.pending.Len() > 0 {
		w := c.pending.Min().(*write)
		var err error
		if w.gone {
			err = c.parent.Delete(w.key)
		} else {
			err = c.parent.Set(w.key, w.value)
		}
		if err != nil {
			return errors.Wrapf(err, "write %x", w.key)
		}
		c.pending.DeleteMin()
	}
	return nil
}

// Discard drops every staged write.
func (c *Cache) Discard() {
	c.pending.Clear(false)
}

// nothing is an empty store that ignores writes. It is the base layer of
// MemStore, where the top cache never gets written.
type nothing struct{}

func (nothing) Get([]byte) ([]byte, error) { return nil, nil }
func (nothing) Has([]byte) (bool, error)   { return false, nil }
func (nothing) Set(_, _ []byte) error      { return nil }
func (nothing) Delete([]byte) error        { return nil }

func (nothing) Iterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}
