package cash

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/store"
	"github.com/iov-one/lockbox/weavetest"
	"github.com/iov-one/lockbox/weavetest/assert"
)

func TestGenesis(t *testing.T) {
	alice := weavetest.NewAddress()
	collector := weavetest.NewAddress()

	genesis := fmt.Sprintf(`{
		"conf": {"cash": {"collector_address": "%s", "minimal_fee": 5}},
		"cash": [{"address": "%s", "balance": 5000}]
	}`, collector, alice)

	var opts lockbox.Options
	if err := json.Unmarshal([]byte(genesis), &opts); err != nil {
		t.Fatalf("cannot unmarshal genesis: %s", err)
	}

	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	got, err := NewController(NewBucket()).Balance(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, uint64(5000), got)

	conf, err := LoadConfiguration(db)
	assert.Nil(t, err)
	assert.Equal(t, collector, conf.CollectorAddress)
	assert.Equal(t, uint64(5), conf.MinimalFee)
}

func TestGenesisRejectsInvalidAccount(t *testing.T) {
	collector := weavetest.NewAddress()
	genesis := fmt.Sprintf(`{
		"conf": {"cash": {"collector_address": "%s"}},
		"cash": [{"address": "abcd", "balance": 1}]
	}`, collector)

	var opts lockbox.Options
	if err := json.Unmarshal([]byte(genesis), &opts); err != nil {
		t.Fatalf("cannot unmarshal genesis: %s", err)
	}
	assert.IsErr(t, errors.ErrInput, Initializer{}.FromGenesis(opts, store.MemStore()))
}

func TestGenesisRequiresConfiguration(t *testing.T) {
	var opts lockbox.Options
	assert.Nil(t, json.Unmarshal([]byte(`{"cash": []}`), &opts))
	assert.IsErr(t, errors.ErrNotFound, Initializer{}.FromGenesis(opts, store.MemStore()))
}
