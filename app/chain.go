package app

import (
	"reflect"

	"github.com/iov-one/lockbox"
)

// Decorators is an ordered stack of decorators waiting for the handler
// at its bottom. The first decorator sees a transaction first.
//
// A typical stack, with the router at the bottom:
//
//	app.ChainDecorators(
//		utils.NewLogging(),
//		utils.NewRecovery(),
//		utils.NewSavepoint().OnCheck(),
//		sigs.NewDecorator(),
//		cash.NewFeeDecorator(auth, ctrl),
//		utils.NewSavepoint().OnDeliver(),
//	).WithHandler(router)
type Decorators struct {
	stack []lockbox.Decorator
}

// ChainDecorators starts a stack. Nil decorators are skipped.
func ChainDecorators(ds ...lockbox.Decorator) Decorators {
	return Decorators{}.Chain(ds...)
}

// Chain returns a copy of the stack with ds appended below it. Nil
// decorators are skipped.
func (d Decorators) Chain(ds ...lockbox.Decorator) Decorators {
	stack := append([]lockbox.Decorator(nil), d.stack...)
	for _, dc := range ds {
		if !isNil(dc) {
			stack = append(stack, dc)
		}
	}
	return Decorators{stack: stack}
}

// isNil also catches a nil pointer stored in the interface.
func isNil(dc lockbox.Decorator) bool {
	if dc == nil {
		return true
	}
	v := reflect.ValueOf(dc)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack with h.
func (d Decorators) WithHandler(h lockbox.Handler) lockbox.Handler {
	for i := len(d.stack) - 1; i >= 0; i-- {
		h = layer{dc: d.stack[i], next: h}
	}
	return h
}

// layer runs one decorator in front of the rest of the stack.
type layer struct {
	dc   lockbox.Decorator
	next lockbox.Handler
}

func (l layer) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	return l.dc.Check(ctx, db, tx, l.next)
}

func (l layer) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	return l.dc.Deliver(ctx, db, tx, l.next)
}
