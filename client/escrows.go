package client

import (
	"bytes"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/app"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/x/cash"
	"github.com/iov-one/lockbox/x/escrow"
	"github.com/iov-one/lockbox/x/sigs"
)

// Querier runs abci queries. It is implemented by Client for a remote node
// and by any abci.Application running in process.
type Querier interface {
	Query(RequestQuery) ResponseQuery
}

// EscrowEntry is an escrow record together with its custody address.
type EscrowEntry struct {
	Address lockbox.Address
	Escrow  *escrow.Escrow
}

func query(q Querier, path string, data []byte) (keys, values *app.ResultSet, err error) {
	res := q.Query(RequestQuery{Path: path, Data: data})
	if res.Code != 0 {
		return nil, nil, errors.ABCIError(res.Code, res.Log)
	}
	keys, values = &app.ResultSet{}, &app.ResultSet{}
	if err := keys.Unmarshal(res.Key); err != nil {
		return nil, nil, errors.Wrap(err, "keys")
	}
	if err := values.Unmarshal(res.Value); err != nil {
		return nil, nil, errors.Wrap(err, "values")
	}
	return keys, values, nil
}

// GetWallet returns the balance of the given address. An address that never
// received anything has a zero balance.
func GetWallet(q Querier, addr lockbox.Address) (uint64, error) {
	_, values, err := query(q, "/wallets", addr)
	if err != nil {
		return 0, err
	}
	if len(values.Results) == 0 {
		return 0, nil
	}
	var w cash.Wallet
	if err := w.Unmarshal(values.Results[0]); err != nil {
		return 0, errors.Wrap(err, "wallet")
	}
	return w.Balance, nil
}

// Sequence returns the nonce the next transaction signed by addr must use.
func Sequence(q Querier, addr lockbox.Address) (int64, error) {
	_, values, err := query(q, "/auth", addr)
	if err != nil {
		return 0, err
	}
	if len(values.Results) == 0 {
		return 0, nil
	}
	var user sigs.UserData
	if err := user.Unmarshal(values.Results[0]); err != nil {
		return 0, errors.Wrap(err, "user data")
	}
	return user.Sequence, nil
}

// GetEscrow loads the escrow stored under the given custody address.
func GetEscrow(q Querier, addr lockbox.Address) (*escrow.Escrow, error) {
	_, values, err := query(q, "/escrows", addr)
	if err != nil {
		return nil, err
	}
	if len(values.Results) == 0 {
		return nil, errors.Wrapf(escrow.ErrAccountNotFound, "escrow %s", addr)
	}
	var e escrow.Escrow
	if err := e.Unmarshal(values.Results[0]); err != nil {
		return nil, errors.Wrap(err, "escrow")
	}
	return &e, nil
}

// ListEscrows returns every open escrow, ordered by custody address.
func ListEscrows(q Querier) ([]EscrowEntry, error) {
	keys, values, err := query(q, "/escrows?prefix", nil)
	if err != nil {
		return nil, err
	}
	models, err := app.JoinResults(keys, values)
	if err != nil {
		return nil, err
	}
	prefix := []byte(escrow.BucketName + ":")
	out := make([]EscrowEntry, 0, len(models))
	for _, m := range models {
		var e escrow.Escrow
		if err := e.Unmarshal(m.Value); err != nil {
			return nil, errors.Wrapf(err, "escrow %X", m.Key)
		}
		out = append(out, EscrowEntry{
			Address: lockbox.Address(bytes.TrimPrefix(m.Key, prefix)),
			Escrow:  &e,
		})
	}
	return out, nil
}

// PartitionEscrows splits the entries into those funded by me and those
// payable to me. An escrow where I am both depositor and recipient is in
// both lists. Everything else is dropped.
func PartitionEscrows(entries []EscrowEntry, me lockbox.Address) (deposited, receivable []EscrowEntry) {
	for _, e := range entries {
		if e.Escrow.Depositor.Equals(me) {
			deposited = append(deposited, e)
		}
		if e.Escrow.Recipient.Equals(me) {
			receivable = append(receivable, e)
		}
	}
	return deposited, receivable
}
