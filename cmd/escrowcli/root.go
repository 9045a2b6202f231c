package main

import (
	"os"
	"path/filepath"

	"github.com/iov-one/lockbox/client"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Home    string
	Node    string
	ChainID string

	// Querier connects to the node. Replaced in tests by an in-process
	// application.
	Querier func(node string) client.Querier
	// Submitter connects to the node for broadcasting.
	Submitter func(node string) *client.Client
}

func httpClient(node string) *client.Client {
	return client.NewClient(client.NewHTTPConnection(node))
}

// NewRootCommand creates the root command of the escrow CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{
		Querier:   func(node string) client.Querier { return httpClient(node) },
		Submitter: httpClient,
	}
	return newRootCommand(opts)
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "escrowcli",
		Short:         "Escrow ledger client",
		Long:          "Manage keys, build and sign escrow transactions and inspect the escrow ledger.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			conf, err := LoadConfig(opts.Home)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("node") {
				opts.Node = conf.Node
			}
			if !cmd.Flags().Changed("chain-id") {
				opts.ChainID = conf.ChainID
			}
			return nil
		},
	}

	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".escrowcli")
	cmd.PersistentFlags().StringVar(&opts.Home, "home", defaultHome, "directory holding config.yaml and keys.yaml")
	cmd.PersistentFlags().StringVar(&opts.Node, "node", "", "tendermint rpc address, overrides the config")
	cmd.PersistentFlags().StringVar(&opts.ChainID, "chain-id", "", "chain id used for signing, overrides the config")

	cmd.AddCommand(NewKeysCommand(opts))
	cmd.AddCommand(NewDeriveCommand(opts))
	cmd.AddCommand(NewInitializeCommand(opts))
	cmd.AddCommand(NewClaimCommand(opts))
	cmd.AddCommand(NewCancelCommand(opts))
	cmd.AddCommand(NewSubmitCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewWalletCommand(opts))
	return cmd
}
