package escrow

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/agl/ed25519/edwards25519"
	"github.com/btcsuite/btcutil/base58"
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
)

// SeedPrefix is the first seed of every escrow address.
const SeedPrefix = "escrow"

// derivationMarker is appended to the seeds before hashing so that derived
// addresses live in their own hash domain.
const derivationMarker = "ProgramDerivedAddress"

// ProgramID identifies this extension in the address derivation. Addresses
// derived with a different program ID never collide with ours.
var ProgramID = mustDecodeBase58("F1szfQ7EL2AZFiuoPB3TF81vdsbJyZoBLE6zaCuWMwL4")

func mustDecodeBase58(s string) []byte {
	raw := base58.Decode(s)
	if len(raw) != lockbox.AddressLength {
		panic("invalid program id: " + s)
	}
	return raw
}

// DeriveAddress returns the custody address of the escrow created by the
// depositor with the given ID, together with the salt that moved it off the
// ed25519 curve. Anyone knowing the inputs can compute it.
func DeriveAddress(depositor lockbox.Address, escrowID uint64) (lockbox.Address, uint8, error) {
	if err := depositor.Validate(); err != nil {
		return nil, 0, errors.Wrap(err, "depositor")
	}
	seeds := escrowSeeds(depositor, escrowID)
	for salt := 255; salt >= 0; salt-- {
		candidate := candidateAddress(seeds, uint8(salt))
		if !onCurve(candidate) {
			return candidate, uint8(salt), nil
		}
	}
	return nil, 0, errors.Wrap(errors.ErrState, "no off curve address for the seeds")
}

// CreateDerivedAddress recomputes the escrow address for a known salt. It
// fails when the resulting candidate is a valid curve point, because such an
// address could be controlled by a private key.
func CreateDerivedAddress(depositor lockbox.Address, escrowID uint64, salt uint8) (lockbox.Address, error) {
	if err := depositor.Validate(); err != nil {
		return nil, errors.Wrap(err, "depositor")
	}
	candidate := candidateAddress(escrowSeeds(depositor, escrowID), salt)
	if onCurve(candidate) {
		return nil, errors.Wrapf(ErrSeedsMismatch, "salt %d gives an on curve address", salt)
	}
	return candidate, nil
}

// escrowSeeds serializes "escrow" | depositor | escrowID (little endian).
func escrowSeeds(depositor lockbox.Address, escrowID uint64) []byte {
	seeds := make([]byte, 0, len(SeedPrefix)+len(depositor)+8)
	seeds = append(seeds, SeedPrefix...)
	seeds = append(seeds, depositor...)
	var id [8]byte
	binary.LittleEndian.PutUint64(id[:], escrowID)
	return append(seeds, id[:]...)
}

func candidateAddress(seeds []byte, salt uint8) lockbox.Address {
	h := sha256.New()
	_, _ = h.Write(seeds)
	_, _ = h.Write([]byte{salt})
	_, _ = h.Write(ProgramID)
	_, _ = h.Write([]byte(derivationMarker))
	return h.Sum(nil)
}

// onCurve returns true if the bytes decode as an ed25519 point.
func onCurve(addr lockbox.Address) bool {
	var raw [32]byte
	copy(raw[:], addr)
	var p edwards25519.ExtendedGroupElement
	return p.FromBytes(&raw)
}
