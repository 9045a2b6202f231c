package weavetest

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/crypto"
)

// NewKey returns a fresh random private key.
func NewKey() crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewAddress returns the identity of a fresh random key.
func NewAddress() lockbox.Address {
	return NewKey().PublicKey().Address()
}

// SeededKey returns a deterministic private key. The same n always yields
// the same key.
func SeededKey(n byte) crypto.PrivateKey {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = n
	}
	return crypto.PrivKeyEd25519FromSeed(seed)
}
