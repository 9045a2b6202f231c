package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If none or all of the provided errors are nil, Append returns nil.
// A multi error is flattened, so that appending two multi errors results in
// a single list of all their members.
//
// The ABCI code of the result is the code of the first error. Use
// Is to test if any of the members is of a given kind.
func Append(errs ...error) error {
	var res multiError
	for _, err := range errs {
		if isNil(err) {
			continue
		}
		if m, ok := err.(multiError); ok {
			res = append(res, m...)
			continue
		}
		res = append(res, err)
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// unpacker is implemented by errors that represent a collection of errors.
type unpacker interface {
	Unpack() []error
}

type multiError []error

func (m multiError) Unpack() []error {
	return m
}

func (m multiError) Error() string {
	points := make([]string, len(m))
	for i, err := range m {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(m), strings.Join(points, "\n\t"))
}

// ABCICode returns the code of the first error, consistent with the fail
// fast approach of the handlers.
func (m multiError) ABCICode() uint32 {
	if len(m) == 0 {
		return SuccessABCICode
	}
	return abciCode(m[0])
}

var _ unpacker = (multiError)(nil)
var _ coder = (multiError)(nil)
