package main

import (
	"encoding/hex"
	"fmt"

	"github.com/iov-one/lockbox/crypto"
	"github.com/iov-one/lockbox/errors"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ed25519"
)

// NewKeysCommand creates the keys command group.
func NewKeysCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage the local keyring",
	}
	cmd.AddCommand(newKeysAddCommand(rootOpts))
	cmd.AddCommand(newKeysShowCommand(rootOpts))
	return cmd
}

func newKeysAddCommand(rootOpts *RootOptions) *cobra.Command {
	var seed string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new key and store it in the keyring",
		Long: `Create a new ed25519 key and store it under the given name.

The key is random unless --seed provides the 32 byte seed in hex.
The address of the key is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kr, err := LoadKeyring(rootOpts.Home)
			if err != nil {
				return err
			}
			key := crypto.GenPrivKeyEd25519()
			if seed != "" {
				raw, err := hex.DecodeString(seed)
				if err != nil || len(raw) != ed25519.SeedSize {
					return errors.Wrapf(errors.ErrInput, "seed must be %d hex encoded bytes", ed25519.SeedSize)
				}
				key = crypto.PrivKeyEd25519FromSeed(raw)
			}
			if err := kr.Add(args[0], key); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key.PublicKey().Address())
			return nil
		},
	}
	cmd.Flags().StringVar(&seed, "seed", "", "hex encoded seed to recover a key from")
	return cmd
}

func newKeysShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print the address of a stored key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kr, err := LoadKeyring(rootOpts.Home)
			if err != nil {
				return err
			}
			key, err := kr.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key.PublicKey().Address())
			return nil
		},
	}
}
