package x

import (
	"github.com/iov-one/lockbox"
)

// Authenticator tells handlers who authorized the current transaction.
// Handlers receive it at construction, so they never depend on how the
// signatures were checked.
type Authenticator interface {
	// GetSigners lists the authorizing addresses in signing order.
	GetSigners(lockbox.Context) []lockbox.Address
	HasAddress(lockbox.Context, lockbox.Address) bool
}

// MainSigner is the first signer of the transaction, nil when unsigned.
func MainSigner(ctx lockbox.Context, auth Authenticator) lockbox.Address {
	if signers := auth.GetSigners(ctx); len(signers) > 0 {
		return signers[0]
	}
	return nil
}
