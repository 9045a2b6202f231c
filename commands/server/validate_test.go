package server

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type requireKey struct {
	key string
}

func (r requireKey) FromGenesis(opts lockbox.Options, db lockbox.KVStore) error {
	var val string
	if err := opts.ReadOptions(r.key, &val); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if val == "" {
		return errors.Wrapf(errors.ErrEmpty, "%q", r.key)
	}
	return db.Set([]byte(r.key), []byte(val))
}

func TestValidateGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "lockbox-validate")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))
		return path
	}
	good := write("good.json", `{"app_state": {"name": "lockbox"}}`)
	missing := write("missing.json", `{"app_state": {}}`)
	broken := write("broken.json", `{"app_state": `)

	ini := requireKey{key: "name"}
	assert.NoError(t, ValidateGenesis(ini, []string{good}))

	err = ValidateGenesis(ini, []string{good, missing})
	assert.True(t, errors.ErrEmpty.Is(err))

	err = ValidateGenesis(ini, []string{broken})
	assert.True(t, errors.ErrInput.Is(err))

	err = ValidateGenesis(ini, []string{filepath.Join(dir, "nope.json")})
	assert.True(t, errors.ErrInput.Is(err))

	err = ValidateGenesis(ini, nil)
	assert.True(t, errors.ErrInput.Is(err))
}
