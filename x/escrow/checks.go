package escrow

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/x"
)

// loadEscrow returns the record stored under given address.
func loadEscrow(db lockbox.ReadOnlyKVStore, bucket Bucket, addr lockbox.Address) (*Escrow, error) {
	var e Escrow
	if err := bucket.One(db, addr, &e); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(ErrAccountNotFound, "escrow %s", addr)
		}
		return nil, errors.Wrap(err, "load escrow")
	}
	return &e, nil
}

// checkRelationship ensures the record belongs to the address it was
// loaded from. The address is recomputed only from the record's own seeds.
func checkRelationship(e *Escrow, addr lockbox.Address) error {
	derived, err := e.Address()
	if err != nil {
		return err
	}
	if !derived.Equals(addr) {
		return errors.Wrapf(ErrSeedsMismatch, "seeds derive %s", derived)
	}
	return nil
}

// checkDepositorSeed ensures the depositor given by the caller is the one
// whose seeds created the record.
func checkDepositorSeed(e *Escrow, depositor lockbox.Address) error {
	if !e.Depositor.Equals(depositor) {
		return errors.Wrapf(ErrSeedsMismatch, "escrow depositor is %s", e.Depositor)
	}
	return nil
}

// checkClaimer requires the stored recipient to be the named and
// signing party.
func checkClaimer(ctx lockbox.Context, auth x.Authenticator, e *Escrow, recipient lockbox.Address) error {
	if !e.Recipient.Equals(recipient) {
		return errors.Wrap(ErrUnauthorizedClaim, "not the escrow recipient")
	}
	if !auth.HasAddress(ctx, e.Recipient) {
		return errors.Wrap(ErrUnauthorizedClaim, "recipient signature missing")
	}
	return nil
}

// checkCanceller requires the stored depositor to be the named and
// signing party.
func checkCanceller(ctx lockbox.Context, auth x.Authenticator, e *Escrow, depositor lockbox.Address) error {
	if !e.Depositor.Equals(depositor) {
		return errors.Wrap(ErrUnauthorizedCancel, "not the escrow depositor")
	}
	if !auth.HasAddress(ctx, e.Depositor) {
		return errors.Wrap(ErrUnauthorizedCancel, "depositor signature missing")
	}
	return nil
}
