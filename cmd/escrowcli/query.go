package main

import (
	"fmt"
	"io"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/client"
	"github.com/iov-one/lockbox/x/escrow"
	"github.com/spf13/cobra"
)

// NewDeriveCommand creates the derive command.
func NewDeriveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "derive <depositor> <escrow-id>",
		Short: "Print the escrow address for a depositor and escrow id",
		Long: `Print the escrow address for a depositor and escrow id, together with the
salt that makes the address fall off the ed25519 curve. No node is contacted.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kr, err := LoadKeyring(rootOpts.Home)
			if err != nil {
				return err
			}
			dep, err := kr.Resolve(args[0])
			if err != nil {
				return err
			}
			id, err := parseEscrowID(args[1])
			if err != nil {
				return err
			}
			addr, salt, err := escrow.DeriveAddress(dep, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", addr, salt)
			return nil
		},
	}
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list <key-or-address>",
		Short: "List the open escrows funded by or payable to an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kr, err := LoadKeyring(rootOpts.Home)
			if err != nil {
				return err
			}
			me, err := kr.Resolve(args[0])
			if err != nil {
				return err
			}
			entries, err := client.ListEscrows(rootOpts.Querier(rootOpts.Node))
			if err != nil {
				return err
			}
			deposited, receivable := client.PartitionEscrows(entries, me)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "deposited:")
			printEscrows(out, deposited, func(e *escrow.Escrow) lockbox.Address { return e.Recipient })
			fmt.Fprintln(out, "receivable:")
			printEscrows(out, receivable, func(e *escrow.Escrow) lockbox.Address { return e.Depositor })
			return nil
		},
	}
}

// printEscrows writes one line per escrow: address, id, amount and the
// counterparty selected by other.
func printEscrows(w io.Writer, entries []client.EscrowEntry, other func(*escrow.Escrow) lockbox.Address) {
	for _, e := range entries {
		fmt.Fprintf(w, "  %s id=%d amount=%d with=%s\n", e.Address, e.Escrow.EscrowID, e.Escrow.Amount, other(e.Escrow))
	}
}

// NewWalletCommand creates the wallet command.
func NewWalletCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "wallet <key-or-address>",
		Short: "Print the balance of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kr, err := LoadKeyring(rootOpts.Home)
			if err != nil {
				return err
			}
			addr, err := kr.Resolve(args[0])
			if err != nil {
				return err
			}
			balance, err := client.GetWallet(rootOpts.Querier(rootOpts.Node), addr)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), balance)
			return nil
		},
	}
}
