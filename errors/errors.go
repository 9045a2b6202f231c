package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Root errors shared by all extensions. Extensions register their own
// codes with Register.
var (
	ErrUnauthorized       = Register(2, "unauthorized")
	ErrNotFound           = Register(3, "not found")
	ErrMsg                = Register(4, "invalid message")
	ErrModel              = Register(5, "invalid model")
	ErrDuplicate          = Register(6, "already in use")
	ErrHuman              = Register(7, "coding error")
	ErrImmutable          = Register(8, "cannot be modified")
	ErrEmpty              = Register(9, "value is empty")
	ErrState              = Register(10, "invalid state")
	ErrType               = Register(11, "invalid type")
	ErrInsufficientAmount = Register(12, "insufficient amount")
	ErrAmount             = Register(13, "invalid amount")
	ErrInput              = Register(14, "invalid input")
	ErrOverflow           = Register(15, "an operation cannot be completed due to value overflow")
	// ErrNetwork and ErrTimeout never leave the client.
	ErrNetwork = Register(16, "network")
	ErrTimeout = Register(17, "timeout")

	// ErrPanic marks a recovered panic.
	ErrPanic = Register(111222, "panic")
)

// registry maps every ABCI code to its root error. Code 1 belongs to the
// errors that have no code of their own.
var registry = map[uint32]*Error{
	internalABCICode: {code: internalABCICode, desc: internalABCILog},
}

// Register declares a root error for code. It panics when the code is
// taken, so call it only from package level variable declarations.
func Register(code uint32, description string) *Error {
	if e, ok := registry[code]; ok {
		panic(fmt.Sprintf("code %d is taken by %q", code, e.desc))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// Error is a root error. Errors returned at runtime wrap one of them, so
// that clients can tell them apart by their ABCI code.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string { return e.desc }

// ABCICode is the code clients receive for this error.
func (e Error) ABCICode() uint32 { return e.code }

// New is a shortcut for Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is New with formatting.
func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrapf(e, format, args...)
}

// Is reports whether err is e, wraps e or holds e in a multi error.
// A nil *Error only matches nil errors.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNil(err)
	}
	found := false
	visit(err, func(err error) bool {
		if err == e {
			found = true
		}
		return !found
	})
	return found
}

// visit calls fn for err and every error it wraps, depth first, entering
// multi errors member by member. When fn returns false the errors wrapped
// by the current one are skipped.
func visit(err error, fn func(error) bool) {
	for err != nil && fn(err) {
		switch e := err.(type) {
		case unpacker:
			for _, member := range e.Unpack() {
				visit(member, fn)
			}
			return
		case causer:
			err = e.Cause()
		default:
			return
		}
	}
}

type causer interface {
	Cause() error
}

// Wrap adds description to err and returns nil for a nil err. The innermost
// wrap records the stack trace.
func Wrap(err error, description string) error {
	if isNil(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{msg: description, parent: err}
}

// Wrapf is Wrap with formatting.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Recover turns a panic into an ErrPanic stored in err. Use it with defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// isNil also catches typed nil pointers stored in an error interface.
func isNil(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
