package errors

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// Field attaches err to the named field of a validated value and returns
// nil for a nil err. Names follow Go naming, with dots for nested fields
// and indexes for list elements: Amount, Escrow.Recipient, Signatures.0.
// A non empty description is formatted with args.
func Field(name string, err error, description string, args ...interface{}) error {
	if isNil(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{field: name, desc: description, parent: err}
}

// AppendField appends the field error of fieldErr, if any, to errs.
func AppendField(errs error, name string, fieldErr error) error {
	return Append(errs, Field(name, fieldErr, ""))
}

type fieldError struct {
	field  string
	desc   string
	parent error
}

func (e *fieldError) Error() string {
	msg := "field " + strconv.Quote(e.field) + ": "
	if e.desc != "" {
		msg += e.desc + ": "
	}
	return msg + e.parent.Error()
}

func (e *fieldError) Cause() error { return e.parent }

// FieldErrors returns the errors attached to the named field within err.
// The search does not descend into a matching field error.
func FieldErrors(err error, name string) []error {
	var found []error
	visit(err, func(err error) bool {
		if f, ok := err.(*fieldError); ok && f.field == name {
			found = append(found, err)
			return false
		}
		return true
	})
	return found
}
