package sigs

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/weavetest"
)

// payloadTx is a signed transaction over a raw payload.
type payloadTx struct {
	weavetest.Tx
	payload []byte
	sigs    []*StdSignature
}

var _ SignedTx = (*payloadTx)(nil)

func newPayloadTx(payload string) *payloadTx {
	return &payloadTx{
		Tx:      weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/payload"}},
		payload: []byte(payload),
	}
}

func (tx *payloadTx) GetSignatures() []*StdSignature { return tx.sigs }
func (tx *payloadTx) GetSignBytes() ([]byte, error)  { return tx.payload, nil }

// signersHandler remembers the signers it was called with.
type signersHandler struct {
	signers []lockbox.Address
}

func (h *signersHandler) Check(ctx lockbox.Context, _ lockbox.KVStore, _ lockbox.Tx) (*lockbox.CheckResult, error) {
	h.signers = Authenticate{}.GetSigners(ctx)
	return &lockbox.CheckResult{}, nil
}

func (h *signersHandler) Deliver(ctx lockbox.Context, _ lockbox.KVStore, _ lockbox.Tx) (*lockbox.DeliverResult, error) {
	h.signers = Authenticate{}.GetSigners(ctx)
	return &lockbox.DeliverResult{}, nil
}
