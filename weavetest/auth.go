package weavetest

import (
	"context"

	"github.com/iov-one/lockbox"
)

func contains(signers []lockbox.Address, addr lockbox.Address) bool {
	for _, s := range signers {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}

// Auth authenticates a fixed set of addresses: Signers plus Signer when
// it is set.
type Auth struct {
	Signer  lockbox.Address
	Signers []lockbox.Address
}

func (a *Auth) GetSigners(lockbox.Context) []lockbox.Address {
	if a.Signer == nil {
		return a.Signers
	}
	return append(append([]lockbox.Address(nil), a.Signers...), a.Signer)
}

func (a *Auth) HasAddress(ctx lockbox.Context, addr lockbox.Address) bool {
	return contains(a.GetSigners(ctx), addr)
}

// CtxAuth authenticates the addresses stored in the context under Key.
type CtxAuth struct {
	Key string
}

type ctxAuthKey string

func (a *CtxAuth) SetSigners(ctx lockbox.Context, signers ...lockbox.Address) lockbox.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), signers)
}

func (a *CtxAuth) GetSigners(ctx lockbox.Context) []lockbox.Address {
	signers, _ := ctx.Value(ctxAuthKey(a.Key)).([]lockbox.Address)
	return signers
}

func (a *CtxAuth) HasAddress(ctx lockbox.Context, addr lockbox.Address) bool {
	return contains(a.GetSigners(ctx), addr)
}
