package orm

import (
	"testing"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/store"
	"github.com/iov-one/lockbox/weavetest/assert"
)

func TestModelBucket(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})

	if err := b.Put(db, []byte("c1"), &counter{Count: 1}); err != nil {
		t.Fatalf("cannot save counter instance: %s", err)
	}

	var c1 counter
	if err := b.One(db, []byte("c1"), &c1); err != nil {
		t.Fatalf("cannot get c1 counter: %s", err)
	}
	if c1.Count != 1 {
		t.Fatalf("unexpected counter state: %d", c1.Count)
	}

	if err := b.Delete(db, []byte("c1")); err != nil {
		t.Fatalf("cannot delete c1 counter: %s", err)
	}
	if err := b.Delete(db, []byte("unknown")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error when deleting unexisting instance: %s", err)
	}
	if err := b.One(db, []byte("c1"), &c1); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error for an unknown model get: %s", err)
	}
}

func TestModelBucketCreate(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})

	assert.Nil(t, b.Create(db, []byte("x"), &counter{Count: 1}))
	assert.IsErr(t, errors.ErrDuplicate, b.Create(db, []byte("x"), &counter{Count: 2}))

	var c counter
	assert.Nil(t, b.One(db, []byte("x"), &c))
	assert.Equal(t, int64(1), c.Count)

	// A deleted key is free to be used again.
	assert.Nil(t, b.Delete(db, []byte("x")))
	assert.Nil(t, b.Create(db, []byte("x"), &counter{Count: 3}))
	assert.Nil(t, b.One(db, []byte("x"), &c))
	assert.Equal(t, int64(3), c.Count)
}

func TestModelBucketRejectsInvalid(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})

	assert.IsErr(t, errors.ErrInput, b.Put(db, []byte("x"), &counter{Count: -4}))
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, []byte("x")))
}

func TestModelBucketWrongDestination(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})
	assert.Nil(t, b.Put(db, []byte("x"), &counter{Count: 1}))

	var l label
	assert.IsErr(t, errors.ErrType, b.One(db, []byte("x"), &l))
}

func TestModelBucketEach(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})
	for i, k := range []string{"c", "a", "b"} {
		assert.Nil(t, b.Put(db, []byte(k), &counter{Count: int64(i)}))
	}

	var (
		keys   []string
		counts []int64
		c      counter
	)
	err := b.Each(db, &c, func(key []byte) error {
		keys = append(keys, string(key))
		counts = append(counts, c.Count)
		return nil
	})
	assert.Nil(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)
	assert.Equal(t, []int64{1, 2, 0}, counts)

	stop := errors.ErrHuman.New("stop")
	var visited int
	err = b.Each(db, &c, func([]byte) error {
		visited++
		return stop
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 1, visited)
}

func TestModelBucketName(t *testing.T) {
	assert.Panics(t, func() { NewModelBucket("l33t", &counter{}) })
	assert.Panics(t, func() { NewModelBucket("ab", &counter{}) })
}

func TestModelBucketRejectsEmptyKey(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})
	assert.IsErr(t, errors.ErrEmpty, b.Put(db, nil, &counter{Count: 1}))
}

func TestModelBucketSharedName(t *testing.T) {
	db := store.MemStore()
	counters := NewModelBucket("shared", &counter{})
	labels := NewModelBucket("shared", &label{})

	// Buckets do not know about each other, the second write wins.
	assert.Nil(t, counters.Put(db, []byte("k"), &counter{Count: 7}))
	assert.Nil(t, labels.Put(db, []byte("k"), &label{Text: "not a counter"}))

	var c counter
	assert.IsErr(t, ErrCorrupted, counters.One(db, []byte("k"), &c))
}

func TestModelBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})
	other := NewModelBucket("cntx", &counter{})
	for _, k := range []string{"b", "a", "c"} {
		assert.Nil(t, b.Put(db, []byte(k), &counter{Count: 1}))
	}
	assert.Nil(t, other.Put(db, []byte("a"), &counter{Count: 2}))

	qr := lockbox.NewQueryRouter()
	b.Register("counters", qr)
	RegisterQuery(qr)

	cases := map[string]struct {
		path     string
		mod      string
		data     []byte
		wantKeys []string
		wantErr  *errors.Error
	}{
		"key hit": {
			path:     "/counters",
			data:     []byte("b"),
			wantKeys: []string{"cnts:b"},
		},
		"key miss": {
			path: "/counters",
			data: []byte("z"),
		},
		"prefix stays in the bucket": {
			path:     "/counters",
			mod:      lockbox.PrefixQueryMod,
			wantKeys: []string{"cnts:a", "cnts:b", "cnts:c"},
		},
		"raw prefix spans buckets": {
			path:     "/",
			mod:      lockbox.PrefixQueryMod,
			data:     []byte("cnt"),
			wantKeys: []string{"cnts:a", "cnts:b", "cnts:c", "cntx:a"},
		},
		"raw key": {
			path:     "/",
			data:     []byte("cntx:a"),
			wantKeys: []string{"cntx:a"},
		},
		"unknown mod": {
			path:    "/counters",
			mod:     "range",
			wantErr: ErrQueryMod,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			h := qr.Handler(tc.path)
			if h == nil {
				t.Fatalf("nothing registered at %q", tc.path)
			}
			res, err := h.Query(db, tc.mod, tc.data)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			var keys []string
			for _, m := range res {
				keys = append(keys, string(m.Key))
			}
			assert.Equal(t, tc.wantKeys, keys)
		})
	}
}
