package gconf

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
)

// Configuration is the settings object of one extension.
type Configuration interface {
	lockbox.Persistent
	Validate() error
}

// Key is where the configuration of pkg lives.
func Key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates conf and stores it as the configuration of pkg.
func Save(db lockbox.KVStore, pkg string, conf Configuration) error {
	if err := conf.Validate(); err != nil {
		return errors.Wrapf(err, "%s configuration", pkg)
	}
	raw, err := conf.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal %s configuration", pkg)
	}
	return db.Set(Key(pkg), raw)
}

// Load reads the configuration of pkg into dest. It returns ErrNotFound
// when none was saved.
func Load(db lockbox.ReadOnlyKVStore, pkg string, dest Configuration) error {
	raw, err := db.Get(Key(pkg))
	switch {
	case err != nil:
		return err
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "%s configuration", pkg)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal %s configuration", pkg)
	}
	return nil
}

// InitConfig saves the genesis section conf.<pkg>, decoded into conf.
// A missing section is ErrNotFound, a malformed one ErrInput.
func InitConfig(db lockbox.KVStore, opts lockbox.Options, pkg string, conf Configuration) error {
	var all lockbox.Options
	if err := opts.ReadOptions("conf", &all); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis conf: %s", err)
	}
	if _, ok := all[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "genesis conf has no %q section", pkg)
	}
	if err := all.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis conf.%s: %s", pkg, err)
	}
	return Save(db, pkg, conf)
}
