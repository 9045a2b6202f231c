package server

import (
	"encoding/json"
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/lockbox/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagIgnore = "i"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

// GenesisPath returns the location of the tendermint genesis file within
// the given home directory.
func GenesisPath(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

func parseInitFlags(args []string) (bool, []string, error) {
	var ignore bool
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	initFlags.BoolVar(&ignore, flagIgnore, false, "overwrite an existing app_state")
	if err := initFlags.Parse(args); err != nil {
		return false, nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return ignore, initFlags.Args(), nil
}

// InitCmd will add the generated app_state to a genesis file that was
// already created by `tendermint init`.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	ignore, rest, err := parseInitFlags(args)
	if err != nil {
		return err
	}

	genFile := GenesisPath(home)
	doc, err := loadGenesisDoc(genFile)
	if err != nil {
		return err
	}
	if state, ok := doc["app_state"]; ok && len(state) > 0 && string(state) != "null" && !ignore {
		return errors.Wrapf(errors.ErrState, "%s already has app_state, use -%s to overwrite", genFile, flagIgnore)
	}

	options, err := gen(rest)
	if err != nil {
		return errors.Wrap(err, "generate app_state")
	}
	doc["app_state"] = options

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := ioutil.WriteFile(genFile, out, 0600); err != nil {
		return errors.Wrapf(errors.ErrHuman, "write genesis: %s", err)
	}
	logger.Info("App state written to genesis file", "path", genFile)
	return nil
}

func loadGenesisDoc(genFile string) (GenesisDoc, error) {
	raw, err := ioutil.ReadFile(genFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "%s, run `tendermint init` first", genFile)
		}
		return nil, errors.Wrapf(errors.ErrHuman, "read genesis: %s", err)
	}
	var doc GenesisDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "parse genesis: %s", err)
	}
	return doc, nil
}
