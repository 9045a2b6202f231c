package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/crypto"
	"github.com/iov-one/lockbox/errors"
)

// signVersion prefixes every signed message.
var signVersion = []byte{0, 0xCA, 0xFE, 0}

// SignBytes returns the digest a signer signs for payload, the bytes of a
// transaction without its signatures. It is the sha512 of
//
//	version (4 bytes) | len(chainID) (1 byte) | chainID | seq (8 bytes, big endian) | payload
//
// so a signature only holds on one chain and for one sequence.
func SignBytes(payload []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !lockbox.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(seq))

	h := sha512.New()
	h.Write(signVersion)
	h.Write([]byte{byte(len(chainID))})
	h.Write([]byte(chainID))
	h.Write(nonce[:])
	h.Write(payload)
	return h.Sum(nil), nil
}

// SignTx signs tx for the given signer sequence.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	digest, err := SignBytes(payload, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	return &StdSignature{Pubkey: signer.PublicKey(), Signature: sig, Sequence: seq}, nil
}

// verifyTx checks every signature of tx in order and returns the signer
// addresses. Each valid signature consumes the sequence of its signer.
func verifyTx(db lockbox.KVStore, tx SignedTx, chainID string) ([]lockbox.Address, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	sigs := tx.GetSignatures()
	signers := make([]lockbox.Address, len(sigs))
	for i, sig := range sigs {
		if signers[i], err = verify(db, sig, payload, chainID); err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
	}
	return signers, nil
}

func verify(db lockbox.KVStore, sig *StdSignature, payload []byte, chainID string) (lockbox.Address, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	digest, err := SignBytes(payload, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !sig.Pubkey.Verify(digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}

	b := NewBucket()
	user, err := b.GetOrCreate(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	signer := sig.Pubkey.Address()
	if err := b.Put(db, signer, user); err != nil {
		return nil, err
	}
	return signer, nil
}
