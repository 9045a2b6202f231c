package orm

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
)

// Model is implemented by every entity that can be stored in a bucket.
type Model interface {
	lockbox.Persistent
	Validate() error
}

// ModelBucket stores models of one type under a prefix of the store.
type ModelBucket interface {
	// One loads the model stored under key into dest. It returns
	// ErrNotFound for a missing key and ErrType when dest is not of the
	// bucket model type.
	One(db lockbox.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if key is in use and ErrNotFound otherwise.
	Has(db lockbox.ReadOnlyKVStore, key []byte) error

	// Put validates m and stores it under key, overwriting any previous
	// value.
	Put(db lockbox.KVStore, key []byte, m Model) error

	// Create is Put that fails with ErrDuplicate when key is in use.
	Create(db lockbox.KVStore, key []byte, m Model) error

	// Delete removes key. It returns ErrNotFound if key is not in use.
	Delete(db lockbox.KVStore, key []byte) error

	// Each loads every stored model into dest in ascending key order and
	// calls fn with its key. An error from fn stops the walk.
	Each(db lockbox.ReadOnlyKVStore, dest Model, fn func(key []byte) error) error

	// Register serves the bucket content under "/"+name. An empty name
	// uses the bucket name.
	Register(name string, r lockbox.QueryRouter)
}

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

type modelBucket struct {
	name   string
	prefix []byte
	model  reflect.Type
}

var (
	_ ModelBucket          = (*modelBucket)(nil)
	_ lockbox.QueryHandler = (*modelBucket)(nil)
)

// NewModelBucket returns a bucket for models of the same type as m. It
// panics for a name that is not 3 to 10 lowercase letters or underscores.
func NewModelBucket(name string, m Model) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("invalid bucket name %q", name))
	}
	return &modelBucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		model:  reflect.TypeOf(m),
	}
}

// dbKey never shares memory with the prefix.
func (b *modelBucket) dbKey(key []byte) []byte {
	out := make([]byte, 0, len(b.prefix)+len(key))
	return append(append(out, b.prefix...), key...)
}

func (b *modelBucket) checkType(m Model) error {
	if got := reflect.TypeOf(m); got != b.model {
		return errors.Wrapf(errors.ErrType, "bucket %s holds %s, not %s", b.name, b.model, got)
	}
	return nil
}

func (b *modelBucket) load(raw []byte, dest Model) error {
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(ErrCorrupted, "%s: %s", b.name, err)
	}
	return nil
}

func (b *modelBucket) One(db lockbox.ReadOnlyKVStore, key []byte, dest Model) error {
	if err := b.checkType(dest); err != nil {
		return err
	}
	raw, err := db.Get(b.dbKey(key))
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	return b.load(raw, dest)
}

func (b *modelBucket) Has(db lockbox.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(b.dbKey(key))
	switch {
	case err != nil:
		return err
	case !ok:
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	return nil
}

func (b *modelBucket) Put(db lockbox.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := b.checkType(m); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal")
	}
	return db.Set(b.dbKey(key), raw)
}

func (b *modelBucket) Create(db lockbox.KVStore, key []byte, m Model) error {
	switch err := b.Has(db, key); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "%s %X", b.name, key)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return b.Put(db, key, m)
}

func (b *modelBucket) Delete(db lockbox.KVStore, key []byte) error {
	if err := b.Has(db, key); err != nil {
		return err
	}
	return db.Delete(b.dbKey(key))
}

func (b *modelBucket) Each(db lockbox.ReadOnlyKVStore, dest Model, fn func(key []byte) error) error {
	if err := b.checkType(dest); err != nil {
		return err
	}
	start, end := prefixRange(b.prefix)
	it, err := db.Iterator(start, end)
	if err != nil {
		return err
	}
	defer it.Close()

	for ; it.Valid(); it.Next() {
		if err := b.load(it.Value(), dest); err != nil {
			return err
		}
		if err := fn(it.Key()[len(b.prefix):]); err != nil {
			return err
		}
	}
	return nil
}

func (b *modelBucket) Register(name string, r lockbox.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
}

// Query answers with full database keys, so results of different buckets
// never collide.
func (b *modelBucket) Query(db lockbox.ReadOnlyKVStore, mod string, data []byte) ([]lockbox.Model, error) {
	return query(db, mod, b.dbKey(data))
}
