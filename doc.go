/*
Package lockbox defines interfaces used throughout the escrow ledger, such as:
storage, transactions, handlers and queries.
It also contains helpers to work with addresses, context and abci results.

The extensions living under x/ are the building blocks of the application:
cash keeps balances, sigs authenticates signers and escrow holds value on
behalf of a recipient until it is claimed or cancelled.
*/
package lockbox
