package main

import (
	"encoding/hex"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/crypto"
	"github.com/iov-one/lockbox/errors"
	"golang.org/x/crypto/ed25519"
	"gopkg.in/yaml.v3"
)

const (
	configFile  = "config.yaml"
	keyringFile = "keys.yaml"
)

// Config is read from config.yaml in the home directory. Missing values
// fall back to DefaultConfig.
type Config struct {
	ChainID string `yaml:"chain_id"`
	Node    string `yaml:"node"`
}

// DefaultConfig points to a local node.
func DefaultConfig() Config {
	return Config{
		ChainID: "escrow-devnet",
		Node:    "tcp://localhost:26657",
	}
}

// LoadConfig reads the configuration from the home directory. A missing
// file is not an error.
func LoadConfig(home string) (Config, error) {
	conf := DefaultConfig()
	raw, err := ioutil.ReadFile(filepath.Join(home, configFile))
	switch {
	case os.IsNotExist(err):
		return conf, nil
	case err != nil:
		return conf, errors.Wrapf(errors.ErrInput, "read config: %s", err)
	}
	if err := yaml.Unmarshal(raw, &conf); err != nil {
		return conf, errors.Wrapf(errors.ErrInput, "parse config: %s", err)
	}
	return conf, nil
}

// keyEntry is the keyring representation of a private key. Only the seed is
// stored, the key pair is recomputed on load.
type keyEntry struct {
	Name string `yaml:"name"`
	Seed string `yaml:"seed"`
}

// Keyring is a named set of private keys persisted as YAML.
type Keyring struct {
	path string
	keys []keyEntry
}

// LoadKeyring reads the keyring from the home directory. A missing file
// gives an empty keyring.
func LoadKeyring(home string) (*Keyring, error) {
	kr := &Keyring{path: filepath.Join(home, keyringFile)}
	raw, err := ioutil.ReadFile(kr.path)
	switch {
	case os.IsNotExist(err):
		return kr, nil
	case err != nil:
		return nil, errors.Wrapf(errors.ErrInput, "read keyring: %s", err)
	}
	var doc struct {
		Keys []keyEntry `yaml:"keys"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "parse keyring: %s", err)
	}
	kr.keys = doc.Keys
	return kr, nil
}

// Add stores a new key under the given name. Names are unique.
func (kr *Keyring) Add(name string, key crypto.PrivateKey) error {
	if name == "" {
		return errors.Wrap(errors.ErrEmpty, "key name")
	}
	if _, err := kr.Get(name); err == nil {
		return errors.Wrapf(errors.ErrDuplicate, "key %q", name)
	}
	kr.keys = append(kr.keys, keyEntry{Name: name, Seed: hex.EncodeToString(key[:ed25519.SeedSize])})
	return kr.save()
}

// Get returns the private key stored under the given name.
func (kr *Keyring) Get(name string) (crypto.PrivateKey, error) {
	for _, k := range kr.keys {
		if k.Name != name {
			continue
		}
		seed, err := hex.DecodeString(k.Seed)
		if err != nil || len(seed) != ed25519.SeedSize {
			return nil, errors.Wrapf(errors.ErrState, "key %q has a malformed seed", name)
		}
		return crypto.PrivKeyEd25519FromSeed(seed), nil
	}
	return nil, errors.Wrapf(errors.ErrNotFound, "key %q", name)
}

// Resolve turns a key name or a textual address into an address.
func (kr *Keyring) Resolve(nameOrAddr string) (lockbox.Address, error) {
	if key, err := kr.Get(nameOrAddr); err == nil {
		return key.PublicKey().Address(), nil
	}
	addr, err := lockbox.ParseAddress(nameOrAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "%q is neither a key name nor an address", nameOrAddr)
	}
	return addr, nil
}

func (kr *Keyring) save() error {
	raw, err := yaml.Marshal(struct {
		Keys []keyEntry `yaml:"keys"`
	}{Keys: kr.keys})
	if err != nil {
		return errors.Wrap(errors.ErrHuman, err.Error())
	}
	if err := os.MkdirAll(filepath.Dir(kr.path), 0700); err != nil {
		return errors.Wrapf(errors.ErrInput, "create home: %s", err)
	}
	if err := ioutil.WriteFile(kr.path, raw, 0600); err != nil {
		return errors.Wrapf(errors.ErrInput, "write keyring: %s", err)
	}
	return nil
}
