package orm

import (
	"github.com/iov-one/lockbox/errors"
)

// Orm reserves 100~109 error codes

var (
	// ErrCorrupted is returned when stored bytes cannot be loaded into
	// the bucket model.
	ErrCorrupted = errors.Register(100, "corrupted data")

	// ErrQueryMod is returned for a query modifier a bucket cannot serve.
	ErrQueryMod = errors.Register(101, "unsupported query mod")
)
