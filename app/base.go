package app

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp is the complete ABCI application: StoreApp plus transaction
// decoding and the handler stack.
type BaseApp struct {
	*StoreApp
	decode  lockbox.TxDecoder
	handler lockbox.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp runs every transaction decoded by decode through handler.
// With debug set, error responses carry stack traces.
func NewBaseApp(store *StoreApp, decode lockbox.TxDecoder, handler lockbox.Handler, debug bool) BaseApp {
	return BaseApp{StoreApp: store, decode: decode, handler: handler, debug: debug}
}

func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	tx, ctx, err := b.prepare(raw, "deliver_tx")
	if err != nil {
		return lockbox.DeliverTxError(err, b.debug)
	}
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return lockbox.DeliverOrError(res, err, b.debug)
}

func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, ctx, err := b.prepare(raw, "check_tx")
	if err != nil {
		return lockbox.CheckTxError(err, b.debug)
	}
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return lockbox.CheckOrError(res, err, b.debug)
}

// prepare decodes raw and builds the context of the call. A panicking
// decoder is reported as an error.
func (b BaseApp) prepare(raw []byte, call string) (tx lockbox.Tx, ctx lockbox.Context, err error) {
	defer errors.Recover(&err)
	if tx, err = b.decode(raw); err != nil {
		return nil, nil, err
	}
	ctx = lockbox.WithLogInfo(b.BlockContext(), "call", call, "path", lockbox.GetPath(tx))
	return tx, ctx, nil
}
