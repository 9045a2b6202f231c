package lockbox

import (
	"reflect"

	"github.com/iov-one/lockbox/errors"
)

// Msg is the state transition a transaction requests. Handlers validate
// it, the transaction around it carries the authentication.
type Msg interface {
	// Path is the route of the handler, made of [0-9A-Za-z_\-/].
	// Several message types may share one route.
	Path() string
	// Validate checks the message content without reading the state.
	Validate() error
}

// Marshaller has a binary form.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent can be written to and restored from the store.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx is what a client submits. Each application defines its own type,
// implementing the interfaces its decorators expect, such as
// sigs.SignedTx and cash.FeeTx.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// TxDecoder parses the raw bytes of a transaction.
type TxDecoder func(raw []byte) (Tx, error)

// GetPath returns the route of the message of tx, for logging.
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg copies the message of tx into dest, a pointer to the expected
// message type, and validates it.
func LoadMsg(tx Tx, dest interface{}) error {
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return errors.Wrap(err, "cannot get msg")
	case msg == nil:
		return errors.Wrap(errors.ErrMsg, "missing msg")
	}

	out := reflect.ValueOf(dest)
	if out.Kind() != reflect.Ptr || out.IsNil() {
		return errors.Wrapf(errors.ErrType, "destination must be a non nil pointer, got %T", dest)
	}
	in := reflect.Indirect(reflect.ValueOf(msg))
	if !in.Type().AssignableTo(out.Elem().Type()) {
		return errors.Wrapf(errors.ErrType, "cannot load %T into %T", msg, dest)
	}
	out.Elem().Set(in)
	return errors.Wrap(msg.Validate(), "invalid msg")
}
