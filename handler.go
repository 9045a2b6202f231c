package lockbox

import (
	"encoding/json"
)

// Handler executes the messages of one or more routes.
type Handler interface {
	Checker
	Deliverer
}

// Checker validates a transaction against the check state, without
// executing it.
type Checker interface {
	Check(ctx Context, db KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction.
type Deliverer interface {
	Deliver(ctx Context, db KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs before and after the next handler of a stack. It is
// used for concerns shared by all routes: signatures, fees, logging.
type Decorator interface {
	Check(ctx Context, db KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, db KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds the route of a message to its handler.
type Registry interface {
	Handle(Msg, Handler)
}

// Options is the app_state of a genesis file, one entry per extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the entry under key into obj. A missing entry is
// not an error and leaves obj unchanged.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, obj)
}

// Initializer writes the genesis state of an extension.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
