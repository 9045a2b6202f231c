package errors

import (
	"fmt"
)

const (
	// SuccessABCICode is the code of a successful response.
	SuccessABCICode = 0

	// Errors without a code of their own are reported with code 1. Outside
	// of debug mode their message is replaced, as it may expose internals.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log of an ABCI response reporting err.
// In debug mode the log carries the stack trace.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNil(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

// ABCIError rebuilds an error from the code and log of a response, so that
// clients can test it with Is. Unknown codes never match a root error.
func ABCIError(code uint32, log string) error {
	root, ok := registry[code]
	if !ok {
		root = &Error{code: code, desc: "unknown error code"}
	}
	return Wrap(root, log)
}

type coder interface {
	ABCICode() uint32
}

// abciCode returns the code of the outermost error that has one.
func abciCode(err error) uint32 {
	code := internalABCICode
	visit(err, func(err error) bool {
		c, ok := err.(coder)
		if ok {
			code = c.ABCICode()
		}
		return !ok
	})
	return code
}
