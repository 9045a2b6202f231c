package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/client"
	"github.com/iov-one/lockbox/cmd/escrowd/app"
	"github.com/iov-one/lockbox/crypto"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/x/cash"
	"github.com/iov-one/lockbox/x/escrow"
	"github.com/iov-one/lockbox/x/sigs"
	"github.com/spf13/cobra"
)

// txFlags are shared by all commands producing a signed transaction.
type txFlags struct {
	from     string
	sequence int64
	fee      uint64
}

func (f *txFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "name of the signing key")
	cmd.Flags().Int64Var(&f.sequence, "sequence", -1, "signer nonce, queried from the node when negative")
	cmd.Flags().Uint64Var(&f.fee, "fee", 0, "fee paid by the signer")
	_ = cmd.MarkFlagRequired("from")
}

// signer loads the signing key named by --from.
func (f *txFlags) signer(kr *Keyring) (crypto.PrivateKey, error) {
	return kr.Get(f.from)
}

// sign wraps msg into a transaction signed by key and writes it hex
// encoded to the command output.
func (f *txFlags) sign(cmd *cobra.Command, opts *RootOptions, key crypto.PrivateKey, msg lockbox.Msg) error {
	signer := key.PublicKey().Address()
	seq := f.sequence
	if seq < 0 {
		s, err := sequenceOf(opts, signer)
		if err != nil {
			return err
		}
		seq = s
	}

	tx := &app.Tx{Msg: msg}
	if f.fee > 0 {
		tx.Fee = &cash.FeeInfo{Payer: signer, Amount: f.fee}
	}
	sig, err := sigs.SignTx(key, tx, opts.ChainID, seq)
	if err != nil {
		return errors.Wrap(err, "sign")
	}
	tx.Signatures = append(tx.Signatures, sig)

	raw, err := tx.Marshal()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(raw))
	return nil
}

func sequenceOf(opts *RootOptions, addr lockbox.Address) (int64, error) {
	seq, err := client.Sequence(opts.Querier(opts.Node), addr)
	if err != nil {
		return 0, errors.Wrap(err, "query sequence, use --sequence when offline")
	}
	return seq, nil
}

func parseEscrowID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInput, "escrow id %q", raw)
	}
	return id, nil
}

// NewInitializeCommand creates the initialize command.
func NewInitializeCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		flags     txFlags
		recipient string
		amount    uint64
		escrowID  string
	)
	cmd := &cobra.Command{
		Use:   "initialize",
		Short: "Build and sign a transaction opening an escrow",
		Long: `Build and sign a transaction that locks --amount from the --from key in a
new escrow payable to --recipient. The escrow address is derived from the
depositor and --id. The depositor is also charged the storage reservation,
returned when the escrow closes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kr, err := LoadKeyring(rootOpts.Home)
			if err != nil {
				return err
			}
			key, err := flags.signer(kr)
			if err != nil {
				return err
			}
			rcpt, err := kr.Resolve(recipient)
			if err != nil {
				return err
			}
			id, err := parseEscrowID(escrowID)
			if err != nil {
				return err
			}
			depositor := key.PublicKey().Address()
			addr, _, err := escrow.DeriveAddress(depositor, id)
			if err != nil {
				return err
			}
			msg := &escrow.InitializeMsg{
				Depositor: depositor,
				Recipient: rcpt,
				Amount:    amount,
				EscrowID:  id,
				Escrow:    addr,
			}
			if err := msg.Validate(); err != nil {
				return err
			}
			return flags.sign(cmd, rootOpts, key, msg)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&recipient, "recipient", "", "recipient key name or address")
	cmd.Flags().Uint64Var(&amount, "amount", 0, "amount to lock")
	cmd.Flags().StringVar(&escrowID, "id", "", "escrow id, unique per depositor")
	_ = cmd.MarkFlagRequired("recipient")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

// NewClaimCommand creates the claim command.
func NewClaimCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		flags     txFlags
		escrowArg string
		depositor string
	)
	cmd := &cobra.Command{
		Use:   "claim",
		Short: "Build and sign a transaction releasing an escrow to its recipient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kr, err := LoadKeyring(rootOpts.Home)
			if err != nil {
				return err
			}
			key, err := flags.signer(kr)
			if err != nil {
				return err
			}
			addr, err := lockbox.ParseAddress(escrowArg)
			if err != nil {
				return errors.Wrap(err, "escrow")
			}
			dep, err := kr.Resolve(depositor)
			if err != nil {
				return err
			}
			msg := &escrow.ClaimMsg{
				Recipient: key.PublicKey().Address(),
				Depositor: dep,
				Escrow:    addr,
			}
			if err := msg.Validate(); err != nil {
				return err
			}
			return flags.sign(cmd, rootOpts, key, msg)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&escrowArg, "escrow", "", "escrow address")
	cmd.Flags().StringVar(&depositor, "depositor", "", "depositor key name or address")
	_ = cmd.MarkFlagRequired("escrow")
	_ = cmd.MarkFlagRequired("depositor")
	return cmd
}

// NewCancelCommand creates the cancel command.
func NewCancelCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		flags     txFlags
		escrowArg string
	)
	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Build and sign a transaction returning an escrow to its depositor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kr, err := LoadKeyring(rootOpts.Home)
			if err != nil {
				return err
			}
			key, err := flags.signer(kr)
			if err != nil {
				return err
			}
			addr, err := lockbox.ParseAddress(escrowArg)
			if err != nil {
				return errors.Wrap(err, "escrow")
			}
			msg := &escrow.CancelMsg{
				Depositor: key.PublicKey().Address(),
				Escrow:    addr,
			}
			if err := msg.Validate(); err != nil {
				return err
			}
			return flags.sign(cmd, rootOpts, key, msg)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&escrowArg, "escrow", "", "escrow address")
	_ = cmd.MarkFlagRequired("escrow")
	return cmd
}

// NewSubmitCommand creates the submit command.
func NewSubmitCommand(rootOpts *RootOptions) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "submit <hex-tx>",
		Short: "Broadcast a signed transaction and wait until it is in a block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := hex.DecodeString(strings.TrimSpace(args[0]))
			if err != nil {
				return errors.Wrap(errors.ErrInput, "transaction is not hex encoded")
			}
			tx, err := app.TxDecoder(raw)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			res, err := rootOpts.Submitter(rootOpts.Node).CommitTx(ctx, tx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "committed %s at height %d\n", res.ID, res.Height)
			if len(res.Result.Data) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "data %s\n", lockbox.Address(res.Result.Data))
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "how long to wait for the block")
	return cmd
}
