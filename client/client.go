package client

import (
	"context"
	"fmt"
	"time"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	tmtypes "github.com/tendermint/tendermint/types"
)

// RequestQuery and ResponseQuery are the abci query types, so the same
// helpers work against a node and an in-process application.
type (
	RequestQuery  = abci.RequestQuery
	ResponseQuery = abci.ResponseQuery
)

// Client talks to a node over the tendermint RPC.
type Client struct {
	conn rpcclient.Client
}

var _ Querier = (*Client)(nil)

func NewClient(conn rpcclient.Client) *Client {
	return &Client{conn: conn}
}

// NewHTTPConnection connects to the RPC endpoint of remote.
func NewHTTPConnection(remote string) rpcclient.Client {
	return rpcclient.NewHTTP(remote, "/websocket")
}

// Query reads the last committed state of the node. Transport failures
// are reported as an ErrNetwork response.
func (c *Client) Query(q RequestQuery) ResponseQuery {
	opts := rpcclient.ABCIQueryOptions{Height: q.Height, Prove: q.Prove}
	res, err := c.conn.ABCIQueryWithOptions(q.Path, q.Data, opts)
	if err != nil {
		code, log := errors.ABCIInfo(errors.Wrap(errors.ErrNetwork, err.Error()), false)
		return ResponseQuery{Code: code, Log: log}
	}
	return res.Response
}

// Committed is a transaction included in a block.
type Committed struct {
	ID     cmn.HexBytes
	Height int64
	Result *lockbox.DeliverResult
}

// settle is the pause after a commit so that queries issued right after
// CommitTx see the new state.
const settle = 100 * time.Millisecond

// CommitTx broadcasts tx and waits until it is in a block. Rejection by
// CheckTx or DeliverTx is returned as the decoded abci error.
func (c *Client) CommitTx(ctx context.Context, tx lockbox.Tx) (*Committed, error) {
	raw, err := tx.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal tx")
	}
	hash := tmtypes.Tx(raw).Hash()

	// Subscribe first, the block may come before BroadcastTxSync returns.
	query := fmt.Sprintf("%s='%s' AND %s='%X'", tmtypes.EventTypeKey, tmtypes.EventTx, tmtypes.TxHashKey, hash)
	subscriber := cmn.RandStr(16)
	events, err := c.conn.Subscribe(ctx, subscriber, query)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "subscribe: %s", err)
	}
	defer func() { _ = c.conn.Unsubscribe(context.Background(), subscriber, query) }()

	check, err := c.conn.BroadcastTxSync(raw)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "broadcast: %s", err)
	}
	if check.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(check.Code, check.Log)
	}

	select {
	case <-ctx.Done():
		return nil, errors.Wrapf(errors.ErrTimeout, "tx %X: %s", hash, ctx.Err())
	case ev := <-events:
		data, ok := ev.Data.(tmtypes.EventDataTx)
		if !ok {
			return nil, errors.Wrapf(errors.ErrState, "unexpected event %T", ev.Data)
		}
		res, err := lockbox.ParseDeliverOrError(data.Result)
		if err != nil {
			return nil, err
		}
		time.Sleep(settle)
		return &Committed{ID: hash, Height: data.Height, Result: res}, nil
	}
}
