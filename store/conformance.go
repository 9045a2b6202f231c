package store

import (
	"bytes"
	"fmt"
	"sort"
	"testing"

	"github.com/iov-one/lockbox/weavetest/assert"
)

// change is a write used to prepare a store in Conformance.
// An empty Value removes the key.
type change struct {
	Key, Value string
}

// Conformance checks the behaviour shared by every CacheableKVStore
// implementation against a plain map. newStore returns an empty store
// and a function releasing it.
func Conformance(t *testing.T, newStore func() (CacheableKVStore, func())) {
	cases := map[string]struct {
		base  []change
		cache []change
	}{
		"empty": {},
		"cache only": {
			cache: []change{{"k2", "c"}, {"k0", "a"}, {"k1", "b"}},
		},
		"base only": {
			base: []change{{"k0", "a"}, {"k1", "b"}, {"k2", "c"}},
		},
		"interleaved": {
			base:  []change{{"k0", "a"}, {"k2", "c"}, {"k4", "e"}},
			cache: []change{{"k1", "b"}, {"k3", "d"}},
		},
		"overwrite": {
			base:  []change{{"k0", "a"}, {"k1", "b"}, {"k2", "c"}},
			cache: []change{{"k0", "a2"}, {"k1", "b2"}, {"k3", "d"}},
		},
		"removals hide the base": {
			base:  []change{{"k0", "a"}, {"k2", "c"}, {"k3", "d"}},
			cache: []change{{"k0", ""}, {"k1", ""}, {"k3", ""}},
		},
		"remove then set again": {
			base:  []change{{"k0", "first"}},
			cache: []change{{"k0", ""}, {"k0", "second"}},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := newStore()
			defer cleanup()

			want := map[string]string{}
			apply(t, base, want, tc.base)
			before := copyState(want)

			cache := base.CacheWrap()
			apply(t, cache, want, tc.cache)

			checkState(t, base, before)
			checkState(t, cache, want)

			// A nested cache sees everything below it.
			checkState(t, cache.CacheWrap(), want)

			assert.Nil(t, cache.Write())
			checkState(t, base, want)
			checkState(t, cache, want)

			// Discarded changes never reach the base.
			cache = base.CacheWrap()
			apply(t, cache, copyState(want), []change{{"k0", "dropped"}, {"k2", ""}})
			cache.Discard()
			checkState(t, base, want)
		})
	}
}

func apply(t testing.TB, kv KVStore, state map[string]string, changes []change) {
	t.Helper()
	for _, c := range changes {
		if c.Value == "" {
			assert.Nil(t, kv.Delete([]byte(c.Key)))
			delete(state, c.Key)
		} else {
			assert.Nil(t, kv.Set([]byte(c.Key), []byte(c.Value)))
			state[c.Key] = c.Value
		}
	}
}

func copyState(state map[string]string) map[string]string {
	cp := make(map[string]string, len(state))
	for k, v := range state {
		cp[k] = v
	}
	return cp
}

// checkState compares point reads and a set of ranges of kv with state.
func checkState(t testing.TB, kv ReadOnlyKVStore, state map[string]string) {
	t.Helper()
	for i := 0; i < 6; i++ {
		key := fmt.Sprintf("k%d", i)
		got, err := kv.Get([]byte(key))
		assert.Nil(t, err)
		want, ok := state[key]
		if ok != (got != nil) || string(got) != want {
			t.Fatalf("get %s: want %q, got %q", key, want, got)
		}
		has, err := kv.Has([]byte(key))
		assert.Nil(t, err)
		assert.Equal(t, ok, has)
	}

	ranges := [][2]string{{"", ""}, {"k1", "k3"}, {"k2", ""}, {"", "k2"}, {"k3", "k3"}}
	for _, r := range ranges {
		it, err := kv.Iterator(bound(r[0]), bound(r[1]))
		assert.Nil(t, err)
		var got []Model
		for ; it.Valid(); it.Next() {
			got = append(got, Model{Key: it.Key(), Value: it.Value()})
		}
		it.Close()

		want := inRange(state, r[0], r[1])
		if len(want) != len(got) {
			t.Fatalf("range %q: want %d models, got %d", r, len(want), len(got))
		}
		for i := range want {
			if !bytes.Equal(want[i].Key, got[i].Key) || !bytes.Equal(want[i].Value, got[i].Value) {
				t.Fatalf("range %q at %d: want %s=%s, got %s=%s", r, i, want[i].Key, want[i].Value, got[i].Key, got[i].Value)
			}
		}
	}
}

func bound(s string) []byte {
	if s == "" {
		return nil
	}
	return []byte(s)
}

func inRange(state map[string]string, start, end string) []Model {
	var res []Model
	for k, v := range state {
		if (start == "" || k >= start) && (end == "" || k < end) {
			res = append(res, Model{Key: []byte(k), Value: []byte(v)})
		}
	}
	sort.Slice(res, func(i, j int) bool { return bytes.Compare(res[i].Key, res[j].Key) < 0 })
	return res
}
