package escrow

import (
	"github.com/iov-one/lockbox/errors"
)

// Escrow errors reuse the generic errors where the meaning is the same, so
// that clients can match them with the usual helpers.
var (
	ErrInvalidAmount      = errors.ErrAmount
	ErrDuplicateEscrow    = errors.ErrDuplicate
	ErrInsufficientFunds  = errors.ErrInsufficientAmount
	ErrAccountNotFound    = errors.ErrNotFound
	ErrUnauthorizedClaim  = errors.Register(1010, "only the recipient can claim")
	ErrUnauthorizedCancel = errors.Register(1011, "only the depositor can cancel")
	ErrSeedsMismatch      = errors.Register(1012, "escrow address seeds mismatch")
)
