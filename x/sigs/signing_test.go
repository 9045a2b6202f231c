package sigs

import (
	"bytes"
	"crypto/sha512"
	"testing"

	"github.com/iov-one/lockbox/crypto"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/store"
	"github.com/iov-one/lockbox/weavetest"
	"github.com/iov-one/lockbox/weavetest/assert"
)

func TestSignBytes(t *testing.T) {
	base, err := SignBytes([]byte("escrow"), "test-chain", 3)
	assert.Nil(t, err)

	// Layout: version, chain id length, chain id, sequence, payload.
	raw := append([]byte{0, 0xCA, 0xFE, 0, 10}, "test-chain"...)
	raw = append(raw, 0, 0, 0, 0, 0, 0, 0, 3)
	raw = append(raw, "escrow"...)
	want := sha512.Sum512(raw)
	assert.Equal(t, want[:], base)

	others := map[string]struct {
		payload string
		chainID string
		seq     int64
	}{
		"payload":  {payload: "escrow2", chainID: "test-chain", seq: 3},
		"chain id": {payload: "escrow", chainID: "test-chain-2", seq: 3},
		"sequence": {payload: "escrow", chainID: "test-chain", seq: 4},
	}
	for testName, tc := range others {
		t.Run(testName, func(t *testing.T) {
			got, err := SignBytes([]byte(tc.payload), tc.chainID, tc.seq)
			assert.Nil(t, err)
			if bytes.Equal(base, got) {
				t.Fatal("digest does not depend on the " + testName)
			}
		})
	}

	_, err = SignBytes(nil, "test-chain", -1)
	assert.IsErr(t, ErrInvalidSequence, err)
	_, err = SignBytes(nil, "no", 1)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestVerifyTx(t *testing.T) {
	const chainID = "verify-chain"
	db := store.MemStore()
	alice, bob := weavetest.NewKey(), weavetest.NewKey()
	tx := newPayloadTx("escrow")
	other := newPayloadTx("another escrow")

	sign := func(tx *payloadTx, key crypto.Signer, seq int64) *StdSignature {
		t.Helper()
		sig, err := SignTx(key, tx, chainID, seq)
		assert.Nil(t, err)
		return sig
	}

	tamperedSig := *sign(tx, alice, 0)
	tamperedSig.Signature = append([]byte{^tamperedSig.Signature[0]}, tamperedSig.Signature[1:]...)

	steps := []struct {
		name    string
		sigs    []*StdSignature
		chainID string
		want    []*StdSignature
		wantErr *errors.Error
	}{
		{name: "sequence must start at zero", sigs: []*StdSignature{sign(tx, alice, 1)}, wantErr: ErrInvalidSequence},
		{name: "empty signature", sigs: []*StdSignature{{}}, wantErr: errors.ErrUnauthorized},
		{name: "signed another payload", sigs: []*StdSignature{sign(other, alice, 0)}, wantErr: errors.ErrUnauthorized},
		{name: "tampered", sigs: []*StdSignature{&tamperedSig}, wantErr: errors.ErrUnauthorized},
		{name: "other chain", sigs: []*StdSignature{sign(tx, alice, 0)}, chainID: "other-chain", wantErr: errors.ErrUnauthorized},
		{name: "first use", sigs: []*StdSignature{sign(tx, alice, 0)}},
		{name: "replay", sigs: []*StdSignature{sign(tx, alice, 0)}, wantErr: ErrInvalidSequence},
		{name: "skipping a sequence", sigs: []*StdSignature{sign(tx, alice, 2)}, wantErr: ErrInvalidSequence},
		{name: "two signers", sigs: []*StdSignature{sign(tx, alice, 1), sign(tx, bob, 0)}},
	}

	for _, step := range steps {
		tx.sigs = step.sigs
		chain := chainID
		if step.chainID != "" {
			chain = step.chainID
		}
		// Failed steps run on a discarded cache, like a failed transaction.
		cache := db.CacheWrap()
		signers, err := verifyTx(cache, tx, chain)
		if !step.wantErr.Is(err) {
			t.Fatalf("%s: want %v, got %v", step.name, step.wantErr, err)
		}
		if err != nil {
			cache.Discard()
			continue
		}
		assert.Nil(t, cache.Write())
		assert.Equal(t, len(step.sigs), len(signers))
		for i, sig := range step.sigs {
			assert.Equal(t, sig.Pubkey.Address(), signers[i])
		}
	}

	var user UserData
	assert.Nil(t, NewBucket().One(db, alice.PublicKey().Address(), &user))
	assert.Equal(t, int64(2), user.Sequence)
	assert.Nil(t, NewBucket().One(db, bob.PublicKey().Address(), &user))
	assert.Equal(t, int64(1), user.Sequence)
}
