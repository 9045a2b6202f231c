package app

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/commands/server"
	"github.com/iov-one/lockbox/crypto"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/x/cash"
	"github.com/iov-one/lockbox/x/escrow"
	abci "github.com/tendermint/tendermint/abci/types"
)

// DevBalance is the balance of the account created by GenInitOptions.
const DevBalance = 123456789000

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode.
//
// The first argument, if given, is the address of that account. Otherwise
// a new key is generated and its seed printed, so the account can be used.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var addr lockbox.Address
	if len(args) > 0 {
		a, err := lockbox.ParseAddress(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "account address")
		}
		addr = a
	} else {
		key := crypto.GenPrivKeyEd25519()
		addr = key.PublicKey().Address()
		fmt.Printf("generated dev account %s, seed %s\n", addr, hex.EncodeToString(key[:32]))
	}

	type (
		dict  map[string]interface{}
		array []interface{}
	)
	return json.Marshal(dict{
		"cash": array{
			cash.GenesisAccount{Address: addr, Balance: DevBalance},
		},
		"conf": dict{
			"cash": cash.Configuration{
				CollectorAddress: addr,
				MinimalFee:       0, // no fee
			},
			"escrow": escrow.DefaultConfiguration(),
		},
	})
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(options *server.Options) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if options.Home != "" {
		dbPath = filepath.Join(options.Home, "abci.db")
	}

	application, err := Application(Name, Stack(), TxDecoder, dbPath, options.Debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(options.Logger)
	return application, nil
}
