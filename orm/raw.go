package orm

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
)

// RegisterQuery exposes the raw store under "/", for key lookups and
// prefix scans over the whole key space.
func RegisterQuery(qr lockbox.QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

func (rawQuery) Query(db lockbox.ReadOnlyKVStore, mod string, data []byte) ([]lockbox.Model, error) {
	return query(db, mod, data)
}

// query serves a key lookup, answering nothing on a miss, or a prefix
// scan in ascending key order.
func query(db lockbox.ReadOnlyKVStore, mod string, key []byte) ([]lockbox.Model, error) {
	switch mod {
	case lockbox.KeyQueryMod:
		val, err := db.Get(key)
		if err != nil || val == nil {
			return nil, err
		}
		return []lockbox.Model{lockbox.Pair(key, val)}, nil
	case lockbox.PrefixQueryMod:
		start, end := prefixRange(key)
		it, err := db.Iterator(start, end)
		if err != nil {
			return nil, err
		}
		defer it.Close()
		res := []lockbox.Model{}
		for ; it.Valid(); it.Next() {
			res = append(res, lockbox.Pair(it.Key(), it.Value()))
		}
		return res, nil
	default:
		return nil, errors.Wrapf(ErrQueryMod, "%q", mod)
	}
}
