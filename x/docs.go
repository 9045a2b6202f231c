/*
Package x contains the helpers shared by all extensions: the
Authenticator abstraction handlers use to learn who signed a
transaction, and a few functions built on top of it.

Concrete extensions live in the subpackages (sigs, cash, escrow, utils).
*/
package x
