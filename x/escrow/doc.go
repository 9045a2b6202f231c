/*
Package escrow locks native value earmarked for a recipient.

A depositor creates an escrow with InitializeMsg. The value, together with a
storage reservation deposit, moves into the custody of an address derived
from the depositor and a depositor chosen escrow ID. The derived address is
not a valid ed25519 public key, so no key can sign for it and only this
extension moves value out of it.

The escrow ends in one of two ways:

  - the recipient claims it (ClaimMsg) and receives the principal, while the
    reservation deposit returns to the depositor
  - the depositor cancels it (CancelMsg) and receives everything back

In both cases the record is deleted and its address may be reused by an
unrelated escrow later.
*/
package escrow
